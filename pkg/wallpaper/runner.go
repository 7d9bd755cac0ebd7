package wallpaper

import (
	"context"
	"fmt"
	"time"

	"github.com/dixieflatline76/Backdrop/config"
	"github.com/dixieflatline76/Backdrop/util/log"
)

// NewPipelineFromConfig wires the production collaborators for cfg.
func NewPipelineFromConfig(cfg *config.Config) (*Pipeline, error) {
	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	client, err := NewHTTPClient(ProxySettings{URL: cfg.Proxy, User: cfg.ProxyUser})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrConfiguration, err)
	}

	paths, err := NewFileManager(cfg.OutputDir, ParseFileNaming(cfg.FileNaming))
	if err != nil {
		return nil, err
	}

	return NewPipeline(opts,
		NewBingFeed(cfg.FeedURL, client),
		NewHTTPProber(client),
		NewHTTPImageStore(client),
		paths,
		NewOS(),
		NewComposer(),
		NewSmartImageProcessor(),
	), nil
}

// OptionsFromConfig translates settings into pipeline options.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	markets := make([]Market, 0, len(cfg.Markets))
	for _, m := range cfg.Markets {
		markets = append(markets, Market{ID: m.ID, DisplayName: m.Name})
	}
	catalog, err := NewMarketCatalog(markets)
	if err != nil {
		return Options{}, fmt.Errorf("%w: %v", config.ErrConfiguration, err)
	}

	opts := Options{
		Catalog:         catalog,
		FirstMarketOnly: cfg.FirstMarketOnly,
		DisplayMode:     ParseDisplayMode(cfg.DisplayMode),
		SmartFit:        cfg.SmartFit,
	}

	if cfg.Resolution != "" {
		res, err := ParseResolution(cfg.Resolution)
		if err != nil {
			return Options{}, fmt.Errorf("%w: %v", config.ErrConfiguration, err)
		}
		opts.Resolution = res
	}

	if cfg.OverlayEnabled() {
		opts.Overlay = OverlaySpec{
			FontFamily: cfg.Overlay.FontFamily,
			FontSizePx: cfg.Overlay.FontSize,
			Anchor:     ParseAnchor(cfg.Overlay.Position),
		}
	}
	return opts, nil
}

// RunOnce builds a pipeline for cfg and performs a single pass.
func RunOnce(ctx context.Context, cfg *config.Config) error {
	if cfg.HideWindow {
		HideConsoleWindow()
	}

	p, err := NewPipelineFromConfig(cfg)
	if err != nil {
		return err
	}

	report, err := p.Run(ctx)
	if err != nil {
		return err
	}

	log.Printf("Run %s finished in %s: %d market(s), %d acquired, %d failed",
		report.RunID, report.Finished.Sub(report.Started).Round(time.Millisecond),
		len(report.Outcomes), report.Acquisitions(), report.Failures())
	return nil
}
