package wallpaper

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dixieflatline76/Backdrop/util/log"
)

// Prober checks whether a remote asset exists without downloading it.
type Prober interface {
	Exists(ctx context.Context, url string) (bool, error)
}

// HTTPProber probes with a HEAD request; only 200 OK counts as present.
type HTTPProber struct {
	client *http.Client
}

// NewHTTPProber creates a prober using the given client.
func NewHTTPProber(client *http.Client) *HTTPProber {
	return &HTTPProber{client: client}
}

// Exists issues a HEAD request against url.
func (p *HTTPProber) Exists(ctx context.Context, url string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false, fmt.Errorf("creating probe request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("probe %s: status %d", url, resp.StatusCode)
	}
	return true, nil
}

// VariantResolver picks the resolution-specific asset URL for a descriptor.
type VariantResolver struct {
	prober Prober
}

// NewVariantResolver creates a resolver backed by prober.
func NewVariantResolver(prober Prober) *VariantResolver {
	return &VariantResolver{prober: prober}
}

// Resolve probes the exact target variant once. If it is missing for any reason the
// 1920x1080 variant is used without probing anything else. Resolve never fails; a missing
// fallback surfaces later as an acquisition error.
func (r *VariantResolver) Resolve(ctx context.Context, desc AssetDescriptor, target Resolution) ResolvedAsset {
	if target.Valid() {
		suffix := target.Suffix()
		candidate := desc.URLBase + suffix

		ok, err := r.prober.Exists(ctx, candidate)
		if ok && err == nil {
			log.Printf("Resolver: background for %s found.", target)
			return ResolvedAsset{Descriptor: desc, ResolutionSuffix: suffix, FullURL: candidate}
		}
		if err != nil {
			log.Debugf("Resolver: probe for %s failed: %v", candidate, err)
		}
		log.Printf("Resolver: no background for %s, using %s instead.", target, FallbackResolution)
	}

	suffix := FallbackResolution.Suffix()
	return ResolvedAsset{Descriptor: desc, ResolutionSuffix: suffix, FullURL: desc.URLBase + suffix}
}
