package wallpaper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dixieflatline76/Backdrop/util/log"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// FeedMetadata is what the feed publishes for one market and day.
type FeedMetadata struct {
	URLBase       string // absolute
	Copyright     string
	Title         string
	StartDate     string
	CopyrightLink string
}

// OverlayTitle is the copyright text without the trailing photographer credit.
func (m FeedMetadata) OverlayTitle() string {
	return titleFromCopyright(m.Copyright)
}

// Feed fetches daily image metadata for a market.
type Feed interface {
	FetchDailyImageMetadata(ctx context.Context, marketID string) (FeedMetadata, error)
}

// archiveResponse is the JSON shape of HPImageArchive.aspx?format=js.
type archiveResponse struct {
	Images []archiveImage `json:"images"`
}

type archiveImage struct {
	StartDate     string  `json:"startdate"`
	URLBase       *string `json:"urlbase"`
	Copyright     *string `json:"copyright"`
	CopyrightLink string  `json:"copyrightlink"`
	Title         string  `json:"title"`
}

// BingFeed talks to the Bing image archive endpoint. Results are cached per market for the
// lifetime of the feed so the URL base and the title come from a single request.
type BingFeed struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter

	group singleflight.Group
	mu    sync.Mutex
	cache map[string]FeedMetadata
}

// NewBingFeed creates a feed client for baseURL (e.g. "https://www.bing.com").
func NewBingFeed(baseURL string, client *http.Client) *BingFeed {
	return &BingFeed{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Every(FeedRequestInterval), 1),
		cache:      make(map[string]FeedMetadata),
	}
}

// FetchDailyImageMetadata returns today's image metadata for marketID.
func (f *BingFeed) FetchDailyImageMetadata(ctx context.Context, marketID string) (FeedMetadata, error) {
	f.mu.Lock()
	if md, ok := f.cache[marketID]; ok {
		f.mu.Unlock()
		return md, nil
	}
	f.mu.Unlock()

	v, err, _ := f.group.Do(marketID, func() (interface{}, error) {
		// A flight that finished since the check above has filled the cache.
		f.mu.Lock()
		md, ok := f.cache[marketID]
		f.mu.Unlock()
		if ok {
			return md, nil
		}

		md, err := f.fetch(ctx, marketID)
		if err != nil {
			return FeedMetadata{}, err
		}
		f.mu.Lock()
		f.cache[marketID] = md
		f.mu.Unlock()
		return md, nil
	})
	if err != nil {
		return FeedMetadata{}, err
	}
	return v.(FeedMetadata), nil
}

func (f *BingFeed) fetch(ctx context.Context, marketID string) (FeedMetadata, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return FeedMetadata{}, fmt.Errorf("%w: %v", ErrMetadata, err)
	}

	q := url.Values{}
	q.Set("format", "js")
	q.Set("idx", "0")
	q.Set("n", "1")
	q.Set("mkt", marketID)
	apiURL := f.baseURL + FeedArchivePath + "?" + q.Encode()

	log.Printf("Feed: downloading JSON for %s...", marketID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return FeedMetadata{}, fmt.Errorf("%w: creating request: %v", ErrMetadata, err)
	}

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return FeedMetadata{}, fmt.Errorf("%w: %v", ErrMetadata, err)
	}
	defer resp.Body.Close()
	log.Debugf("Feed: %s answered %d in %v", marketID, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return FeedMetadata{}, fmt.Errorf("%w: feed returned status %d for market %s", ErrMetadata, resp.StatusCode, marketID)
	}

	var archive archiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&archive); err != nil {
		return FeedMetadata{}, fmt.Errorf("%w: decoding feed for market %s: %v", ErrMetadata, marketID, err)
	}

	return f.toMetadata(archive, marketID)
}

func (f *BingFeed) toMetadata(archive archiveResponse, marketID string) (FeedMetadata, error) {
	if len(archive.Images) == 0 {
		return FeedMetadata{}, fmt.Errorf("%w: no images for market %s", ErrMetadata, marketID)
	}
	img := archive.Images[0]
	if img.URLBase == nil || strings.TrimSpace(*img.URLBase) == "" {
		return FeedMetadata{}, fmt.Errorf("%w: images[0].urlbase missing for market %s", ErrMetadata, marketID)
	}
	if img.Copyright == nil {
		return FeedMetadata{}, fmt.Errorf("%w: images[0].copyright missing for market %s", ErrMetadata, marketID)
	}

	urlBase := *img.URLBase
	if !strings.HasPrefix(urlBase, "http://") && !strings.HasPrefix(urlBase, "https://") {
		urlBase = f.baseURL + urlBase
	}

	return FeedMetadata{
		URLBase:       urlBase,
		Copyright:     *img.Copyright,
		Title:         img.Title,
		StartDate:     img.StartDate,
		CopyrightLink: img.CopyrightLink,
	}, nil
}
