package wallpaper

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeFeed serves canned metadata per market.
type fakeFeed struct {
	mu      sync.Mutex
	meta    map[string]FeedMetadata
	errs    map[string]error
	fetched []string
}

func (f *fakeFeed) FetchDailyImageMetadata(ctx context.Context, marketID string) (FeedMetadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, marketID)
	if err, ok := f.errs[marketID]; ok {
		return FeedMetadata{}, err
	}
	md, ok := f.meta[marketID]
	if !ok {
		return FeedMetadata{}, fmt.Errorf("%w: unknown market %s", ErrMetadata, marketID)
	}
	return md, nil
}

// fakeStore downloads from memory and records what it saved.
type fakeStore struct {
	mu          sync.Mutex
	downloadErr map[string]error
	saveErr     error
	downloads   []string
	saved       map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{downloadErr: map[string]error{}, saved: map[string][]byte{}}
}

func (s *fakeStore) Download(ctx context.Context, url string) (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.downloads = append(s.downloads, url)
	if err, ok := s.downloadErr[url]; ok {
		return nil, err
	}
	return uniformImage(64, 36, color.RGBA{90, 120, 200, 255}), nil
}

func (s *fakeStore) Encode(img image.Image, format imaging.Format) ([]byte, error) {
	return []byte(format.String()), nil
}

func (s *fakeStore) Save(path string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved[path] = data
	return nil
}

// recordingComposer remembers the specs it was asked to draw.
type recordingComposer struct {
	specs []OverlaySpec
	geos  []Geometry
}

func (c *recordingComposer) Compose(img image.Image, spec OverlaySpec, geo Geometry) (image.Image, bool) {
	c.specs = append(c.specs, spec)
	c.geos = append(c.geos, geo)
	return img, true
}

func metaFor(name, market string) FeedMetadata {
	return FeedMetadata{
		URLBase:   "https://www.bing.com/th?id=OHR." + name + "_" + strings.ToUpper(market) + "123",
		Copyright: name + " at dawn (© Photographer/Agency)",
		StartDate: "20261019",
	}
}

type pipelineFixture struct {
	feed     *fakeFeed
	prober   *fakeProber
	store    *fakeStore
	os       *MockOS
	composer *recordingComposer
	root     string
}

func newFixture(t *testing.T) *pipelineFixture {
	t.Helper()
	fx := &pipelineFixture{
		feed: &fakeFeed{
			meta: map[string]FeedMetadata{
				"en-US": metaFor("LarchValley", "en-US"),
				"en-CA": metaFor("LarchValley", "en-CA"), // same image as en-US
				"ja-JP": metaFor("Kyoto", "ja-JP"),
			},
			errs: map[string]error{},
		},
		prober:   &fakeProber{existing: map[string]bool{}},
		store:    newFakeStore(),
		os:       new(MockOS),
		composer: &recordingComposer{},
		root:     t.TempDir(),
	}
	fx.os.On("GetDesktopDimension").Return(1920, 1080, nil).Maybe()
	fx.os.On("GetWorkingArea").Return(image.Rect(0, 0, 1920, 1040), nil).Maybe()
	return fx
}

func (fx *pipelineFixture) pipeline(t *testing.T, opts Options) *Pipeline {
	t.Helper()
	fm, err := NewFileManager(fx.root, NameByContent)
	require.NoError(t, err)
	p := NewPipeline(opts, fx.feed, fx.prober, fx.store, fm, fx.os, fx.composer, NewSmartImageProcessor())
	p.now = func() time.Time { return time.Date(2026, time.October, 19, 8, 0, 0, 0, time.UTC) }
	return p
}

func catalog(t *testing.T, ids ...string) *MarketCatalog {
	t.Helper()
	markets := make([]Market, 0, len(ids))
	for _, id := range ids {
		markets = append(markets, Market{ID: id, DisplayName: id})
	}
	c, err := NewMarketCatalog(markets)
	require.NoError(t, err)
	return c
}

func TestPipeline_SharedImageDownloadedOnce(t *testing.T) {
	fx := newFixture(t)
	p := fx.pipeline(t, Options{Catalog: catalog(t, "en-US", "en-CA", "ja-JP"), DisplayMode: DisplayFill})

	report, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Outcomes, 3)
	assert.Equal(t, MarketAcquired, report.Outcomes[0].Status)
	assert.Equal(t, "en-US", report.Outcomes[0].Market.ID, "first market in order wins")
	assert.Equal(t, MarketDuplicate, report.Outcomes[1].Status)
	assert.Equal(t, MarketAcquired, report.Outcomes[2].Status)

	require.Len(t, fx.store.downloads, 2)
	assert.Contains(t, fx.store.downloads[0], "OHR.LarchValley_EN-US123")
	assert.Contains(t, fx.store.downloads[1], "OHR.Kyoto_JA-JP123")

	assert.Len(t, report.Saved, 2, "archive mode persists every acquired image")
	assert.Empty(t, report.Installed, "archive mode installs nothing")
	fx.os.AssertNotCalled(t, "SetWallpaper", mock.Anything, mock.Anything)
	assert.Equal(t, 2, report.Acquisitions())
	assert.NotEmpty(t, report.RunID)
}

func TestPipeline_FirstMarketOnlyInstalls(t *testing.T) {
	fx := newFixture(t)
	expected := filepath.Join(fx.root, "2026", "OHR.LarchValley.png")
	fx.os.On("SetWallpaper", expected, DisplayFit).Return(nil).Once()

	p := fx.pipeline(t, Options{Catalog: catalog(t, "en-US", "ja-JP"), FirstMarketOnly: true, DisplayMode: DisplayFit})
	report, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"en-US"}, fx.feed.fetched, "loop stops after the first market")
	assert.Equal(t, expected, report.Installed)
	assert.Equal(t, []string{expected}, report.Saved)
	assert.Equal(t, []byte("PNG"), fx.store.saved[expected])
	fx.os.AssertExpectations(t)
}

func TestPipeline_FirstMarketOnlyFailureInstallsNothing(t *testing.T) {
	fx := newFixture(t)
	fx.feed.errs["en-US"] = fmt.Errorf("%w: feed down", ErrMetadata)

	p := fx.pipeline(t, Options{Catalog: catalog(t, "en-US", "ja-JP"), FirstMarketOnly: true})
	report, err := p.Run(context.Background())
	require.NoError(t, err, "per-market failures never fail the run")

	assert.Equal(t, []string{"en-US"}, fx.feed.fetched)
	assert.Equal(t, 1, report.Failures())
	assert.Empty(t, report.Saved)
	assert.Empty(t, report.Installed)
	fx.os.AssertNotCalled(t, "SetWallpaper", mock.Anything, mock.Anything)
}

func TestPipeline_FailuresSkipToNextMarket(t *testing.T) {
	fx := newFixture(t)
	fx.feed.meta["de-DE"] = metaFor("Zugspitze", "de-DE")
	fx.feed.errs["en-US"] = fmt.Errorf("%w: timeout", ErrMetadata)
	fx.store.downloadErr["https://www.bing.com/th?id=OHR.Zugspitze_DE-DE123_1920x1080.jpg"] = fmt.Errorf("%w: 404", ErrAcquisition)
	fx.feed.meta["xx-XX"] = FeedMetadata{URLBase: "https://www.bing.com/", Copyright: "nameless"}

	p := fx.pipeline(t, Options{Catalog: catalog(t, "en-US", "de-DE", "xx-XX", "ja-JP")})
	report, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Outcomes, 4)
	assert.ErrorIs(t, report.Outcomes[0].Err, ErrMetadata)
	assert.ErrorIs(t, report.Outcomes[1].Err, ErrAcquisition)
	assert.ErrorIs(t, report.Outcomes[2].Err, ErrMetadata, "a url base without a name is a metadata failure")
	assert.Equal(t, MarketAcquired, report.Outcomes[3].Status)
	assert.Equal(t, 3, report.Failures())
	assert.Len(t, report.Saved, 1)
}

func TestPipeline_ProbeFallback(t *testing.T) {
	fx := newFixture(t)
	fx.prober.err = errors.New("HEAD refused")

	p := fx.pipeline(t, Options{Catalog: catalog(t, "ja-JP"), Resolution: Resolution{2560, 1440}})
	report, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"https://www.bing.com/th?id=OHR.Kyoto_JA-JP123_2560x1440.jpg"}, fx.prober.Probed())
	require.Len(t, fx.store.downloads, 1)
	assert.True(t, strings.HasSuffix(fx.store.downloads[0], "_1920x1080.jpg"))
	assert.True(t, strings.HasSuffix(report.Outcomes[0].URL, "_1920x1080.jpg"))
}

func TestPipeline_ExactVariantFromScreenSize(t *testing.T) {
	fx := newFixture(t)
	fx.os = new(MockOS)
	fx.os.On("GetDesktopDimension").Return(3840, 2160, nil)
	fx.os.On("GetWorkingArea").Return(image.Rect(0, 0, 3840, 2100), nil)
	exact := "https://www.bing.com/th?id=OHR.Kyoto_JA-JP123_3840x2160.jpg"
	fx.prober.existing[exact] = true

	p := fx.pipeline(t, Options{Catalog: catalog(t, "ja-JP")})
	_, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{exact}, fx.store.downloads)
}

func TestPipeline_GeometryUnavailable(t *testing.T) {
	fx := newFixture(t)
	fx.os = new(MockOS)
	fx.os.On("GetDesktopDimension").Return(0, 0, errors.New("no display"))
	fx.os.On("GetWorkingArea").Return(image.Rectangle{}, errors.New("no display"))

	p := fx.pipeline(t, Options{Catalog: catalog(t, "ja-JP")})
	_, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"https://www.bing.com/th?id=OHR.Kyoto_JA-JP123_1920x1080.jpg"}, fx.prober.Probed())
}

func TestPipeline_Overlay(t *testing.T) {
	t.Run("Composed With Title", func(t *testing.T) {
		fx := newFixture(t)
		overlay := OverlaySpec{FontFamily: "Go", FontSizePx: 24, Anchor: BottomRight}

		p := fx.pipeline(t, Options{Catalog: catalog(t, "ja-JP"), Overlay: overlay})
		_, err := p.Run(context.Background())
		require.NoError(t, err)

		require.Len(t, fx.composer.specs, 1)
		assert.Equal(t, "Kyoto at dawn", fx.composer.specs[0].Text)
		assert.Equal(t, BottomRight, fx.composer.specs[0].Anchor)
		assert.Equal(t, image.Rect(0, 0, 1920, 1040), fx.composer.geos[0].WorkingArea)
	})

	t.Run("Skipped Without Anchor", func(t *testing.T) {
		fx := newFixture(t)

		p := fx.pipeline(t, Options{Catalog: catalog(t, "ja-JP"), Overlay: OverlaySpec{FontFamily: "Go", FontSizePx: 24}})
		_, err := p.Run(context.Background())
		require.NoError(t, err)

		assert.Empty(t, fx.composer.specs)
	})
}

func TestPipeline_PersistenceFailures(t *testing.T) {
	t.Run("Save", func(t *testing.T) {
		fx := newFixture(t)
		fx.store.saveErr = errors.New("disk full")

		p := fx.pipeline(t, Options{Catalog: catalog(t, "en-US"), FirstMarketOnly: true})
		report, err := p.Run(context.Background())
		assert.ErrorIs(t, err, ErrPersistence)
		assert.Empty(t, report.Installed)
		fx.os.AssertNotCalled(t, "SetWallpaper", mock.Anything, mock.Anything)
	})

	t.Run("Install", func(t *testing.T) {
		fx := newFixture(t)
		fx.os.On("SetWallpaper", mock.Anything, DisplayStretch).Return(errors.New("access denied"))

		p := fx.pipeline(t, Options{Catalog: catalog(t, "en-US"), FirstMarketOnly: true, DisplayMode: DisplayStretch})
		report, err := p.Run(context.Background())
		assert.ErrorIs(t, err, ErrPersistence)
		assert.Empty(t, report.Installed, "a failed install is never reported as installed")
	})
}

func TestPipeline_DateNaming(t *testing.T) {
	fx := newFixture(t)
	fm, err := NewFileManager(fx.root, NameByDate)
	require.NoError(t, err)

	p := NewPipeline(Options{Catalog: catalog(t, "ja-JP")}, fx.feed, fx.prober, fx.store, fm, fx.os, nil, nil)
	report, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(fx.root, "2026", "2026-10-19_OHR.Kyoto.png")}, report.Saved)
}

func TestPipeline_Cancelled(t *testing.T) {
	fx := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := fx.pipeline(t, Options{Catalog: catalog(t, "en-US", "ja-JP")})
	_, err := p.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fx.feed.fetched)
}

func TestImageDay(t *testing.T) {
	now := time.Date(2026, time.October, 19, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), imageDay(FeedMetadata{StartDate: "20251231"}, now))
	assert.Equal(t, now, imageDay(FeedMetadata{}, now))
	assert.Equal(t, now, imageDay(FeedMetadata{StartDate: "garbage"}, now))
}
