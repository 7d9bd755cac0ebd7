package wallpaper

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/disintegration/imaging"
	"github.com/dixieflatline76/Backdrop/util/log"
	"github.com/google/uuid"
)

// OverlayComposer draws the title onto an image. It returns the original image and false when
// nothing was drawn.
type OverlayComposer interface {
	Compose(img image.Image, spec OverlaySpec, geo Geometry) (image.Image, bool)
}

// Options is the run configuration consumed by the pipeline.
type Options struct {
	Catalog         *MarketCatalog
	FirstMarketOnly bool
	Overlay         OverlaySpec // Text is filled in per image
	DisplayMode     DisplayMode
	Resolution      Resolution // zero means use the detected screen size
	SmartFit        bool
}

// Pipeline runs one acquisition pass over the configured markets:
// resolve, deduplicate, acquire, then compose, persist and install.
type Pipeline struct {
	opts Options

	feed     Feed
	resolver *VariantResolver
	store    ImageStore
	paths    PathProvider
	os       OS
	composer OverlayComposer
	fitter   ImageFitter

	now func() time.Time
}

// NewPipeline wires a pipeline. composer and fitter may be nil when the overlay and smart fit
// are never used.
func NewPipeline(opts Options, feed Feed, prober Prober, store ImageStore, paths PathProvider, osImpl OS, composer OverlayComposer, fitter ImageFitter) *Pipeline {
	return &Pipeline{
		opts:     opts,
		feed:     feed,
		resolver: NewVariantResolver(prober),
		store:    store,
		paths:    paths,
		os:       osImpl,
		composer: composer,
		fitter:   fitter,
		now:      time.Now,
	}
}

// MarketStatus is what happened to one market during a run.
type MarketStatus int

const (
	MarketAcquired MarketStatus = iota
	MarketDuplicate
	MarketFailed
)

func (s MarketStatus) String() string {
	switch s {
	case MarketAcquired:
		return "acquired"
	case MarketDuplicate:
		return "duplicate"
	default:
		return "failed"
	}
}

// MarketOutcome records the result for one market.
type MarketOutcome struct {
	Market   Market
	Status   MarketStatus
	BaseName string
	URL      string
	Err      error
}

// Report summarizes a run.
type Report struct {
	RunID     string
	Started   time.Time
	Finished  time.Time
	Outcomes  []MarketOutcome
	Saved     []string
	Installed string // path of the installed background, empty if none
}

// Acquisitions counts markets whose image was downloaded.
func (r *Report) Acquisitions() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == MarketAcquired {
			n++
		}
	}
	return n
}

// Failures counts markets that were skipped because of an error.
func (r *Report) Failures() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == MarketFailed {
			n++
		}
	}
	return n
}

// acquired is an image downloaded in this run, waiting to be composed and persisted.
type acquired struct {
	market Market
	meta   FeedMetadata
	asset  ResolvedAsset
	img    image.Image
}

// Run performs one pass. Per-market metadata and acquisition failures are logged and counted;
// only ErrPersistence (or a cancelled context) is returned.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	report := &Report{RunID: uuid.NewString(), Started: p.now()}
	defer func() { report.Finished = p.now() }()
	logf := func(format string, args ...interface{}) {
		log.Printf("Pipeline[%s]: "+format, append([]interface{}{report.RunID[:8]}, args...)...)
	}

	geo, target := p.readGeometry(logf)
	logf("starting with %d market(s), target %s, first market only: %t", p.opts.Catalog.Len(), target, p.opts.FirstMarketOnly)

	dedup := NewAcquisitionDeduplicator()
	var images []acquired

	for _, market := range p.opts.Catalog.Markets() {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		outcome, img := p.acquireMarket(ctx, market, target, dedup)
		report.Outcomes = append(report.Outcomes, outcome)
		switch outcome.Status {
		case MarketAcquired:
			images = append(images, *img)
			logf("%s: acquired %s", market, outcome.BaseName)
		case MarketDuplicate:
			logf("%s: %s already acquired this run, skipping", market, outcome.BaseName)
		case MarketFailed:
			logf("%s: skipped: %v", market, outcome.Err)
		}

		if p.opts.FirstMarketOnly {
			break
		}
	}

	if len(images) == 0 {
		logf("no image acquired")
		return report, nil
	}

	for i, a := range images {
		path, err := p.persist(ctx, a, geo, target)
		if err != nil {
			return report, err
		}
		report.Saved = append(report.Saved, path)

		if p.opts.FirstMarketOnly && i == 0 {
			if err := p.os.SetWallpaper(path, p.opts.DisplayMode); err != nil {
				return report, fmt.Errorf("%w: installing %s: %v", ErrPersistence, path, err)
			}
			report.Installed = path
			logf("installed %s (%s)", path, p.opts.DisplayMode)
		}
	}

	logf("done: %d acquired, %d failed, %d saved", report.Acquisitions(), report.Failures(), len(report.Saved))
	return report, nil
}

// readGeometry reads the display layout once. When the screen cannot be queried the fallback
// resolution is used and the working area stays empty, which disables the overlay.
func (p *Pipeline) readGeometry(logf func(string, ...interface{})) (Geometry, Resolution) {
	var geo Geometry

	w, h, err := p.os.GetDesktopDimension()
	if err != nil {
		logf("cannot read screen size: %v", err)
	} else {
		geo.ScreenBounds = image.Rect(0, 0, w, h)
	}

	if area, err := p.os.GetWorkingArea(); err != nil {
		logf("cannot read working area: %v", err)
	} else {
		geo.WorkingArea = area
	}

	target := p.opts.Resolution
	if !target.Valid() {
		target = Resolution{Width: geo.ScreenBounds.Dx(), Height: geo.ScreenBounds.Dy()}
	}
	if !target.Valid() {
		target = FallbackResolution
	}
	return geo, target
}

func (p *Pipeline) acquireMarket(ctx context.Context, market Market, target Resolution, dedup *AcquisitionDeduplicator) (MarketOutcome, *acquired) {
	outcome := MarketOutcome{Market: market, Status: MarketFailed}

	meta, err := p.feed.FetchDailyImageMetadata(ctx, market.ID)
	if err != nil {
		outcome.Err = err
		return outcome, nil
	}

	desc, err := NewAssetDescriptor(meta.URLBase)
	if err != nil {
		outcome.Err = err
		return outcome, nil
	}
	outcome.BaseName = desc.BaseName

	if !dedup.ShouldAcquire(desc.BaseName) {
		outcome.Status = MarketDuplicate
		return outcome, nil
	}

	asset := p.resolver.Resolve(ctx, desc, target)
	outcome.URL = asset.FullURL

	img, err := p.store.Download(ctx, asset.FullURL)
	if err != nil {
		if !errors.Is(err, ErrAcquisition) {
			err = fmt.Errorf("%w: %v", ErrAcquisition, err)
		}
		outcome.Err = err
		return outcome, nil
	}

	outcome.Status = MarketAcquired
	return outcome, &acquired{market: market, meta: meta, asset: asset, img: img}
}

// persist fits and composes the image, then encodes and saves it.
func (p *Pipeline) persist(ctx context.Context, a acquired, geo Geometry, target Resolution) (string, error) {
	img := a.img

	if p.opts.SmartFit && p.fitter != nil {
		fitted, err := p.fitter.FitImage(ctx, img, target)
		if err != nil {
			log.Printf("Pipeline: smart fit skipped for %s: %v", a.asset.Descriptor.BaseName, err)
		} else {
			img = fitted
		}
	}

	if p.opts.Overlay.Enabled() && p.composer != nil {
		spec := p.opts.Overlay
		spec.Text = a.meta.OverlayTitle()
		img, _ = p.composer.Compose(img, spec, geo)
	}

	path, err := p.paths.PathFor(a.asset.Descriptor.BaseName, imageDay(a.meta, p.now()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	data, err := p.store.Encode(img, imaging.PNG)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := p.store.Save(path, data); err != nil {
		if !errors.Is(err, ErrPersistence) {
			err = fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		return "", err
	}
	return path, nil
}

// imageDay is the feed's publication date, or now when the feed left it out.
func imageDay(meta FeedMetadata, now time.Time) time.Time {
	if day, err := time.ParseInLocation("20060102", meta.StartDate, now.Location()); err == nil {
		return day
	}
	return now
}
