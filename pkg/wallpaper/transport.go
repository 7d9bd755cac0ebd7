package wallpaper

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"github.com/dixieflatline76/Backdrop/config"
	"github.com/dixieflatline76/Backdrop/util/log"
	"github.com/zalando/go-keyring"
	"golang.org/x/net/http/httpproxy"
)

// UserAgentTransport wraps an http.RoundTripper and adds a User-Agent header.
type UserAgentTransport struct {
	http.RoundTripper
	UserAgent string
}

// RoundTrip executes a single HTTP transaction, adding the User-Agent header.
func (t *UserAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	clonedReq := req.Clone(req.Context())
	clonedReq.Header.Set("User-Agent", t.UserAgent)
	return t.RoundTripper.RoundTrip(clonedReq)
}

// ProxySettings selects the outbound proxy. An empty URL falls back to the HTTP(S)_PROXY environment.
type ProxySettings struct {
	URL  string
	User string
}

// NewHTTPClient builds the client shared by the feed, the prober and the image store.
func NewHTTPClient(proxy ProxySettings) (*http.Client, error) {
	proxyFunc, err := proxyFuncFor(proxy)
	if err != nil {
		return nil, err
	}

	return &http.Client{
		Timeout: config.HTTPClientRequestTimeout,
		Transport: &UserAgentTransport{
			RoundTripper: &http.Transport{
				Proxy: proxyFunc,
				DialContext: (&net.Dialer{
					Timeout:   config.HTTPClientDialerTimeout,
					KeepAlive: config.HTTPClientKeepAlive,
				}).DialContext,
				ResponseHeaderTimeout: config.HTTPClientResponseHeaderTimeout,
				TLSHandshakeTimeout:   config.HTTPClientTLSHandshakeTimeout,
			},
			UserAgent: UserAgent,
		},
	}, nil
}

func proxyFuncFor(proxy ProxySettings) (func(*http.Request) (*url.URL, error), error) {
	cfg := httpproxy.FromEnvironment()
	if proxy.URL != "" {
		proxyURL, err := url.Parse(proxy.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing proxy url: %w", err)
		}
		if proxy.User != "" {
			proxyURL.User = proxyCredentials(proxy.User)
		}
		cfg = &httpproxy.Config{
			HTTPProxy:  proxyURL.String(),
			HTTPSProxy: proxyURL.String(),
			NoProxy:    cfg.NoProxy,
		}
		log.Printf("Transport: using proxy %s", proxyURL.Redacted())
	}

	fn := cfg.ProxyFunc()
	return func(req *http.Request) (*url.URL, error) {
		return fn(req.URL)
	}, nil
}

// proxyCredentials looks the proxy password up in the OS keyring.
func proxyCredentials(user string) *url.Userinfo {
	password, err := keyring.Get(config.KeyringService, user)
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			log.Printf("Transport: failed to retrieve proxy password from keyring: %v", err)
		}
		return url.User(user)
	}
	return url.UserPassword(user, password)
}

// SetProxyPassword stores the proxy password for user in the OS keyring.
func SetProxyPassword(user, password string) error {
	if err := keyring.Set(config.KeyringService, user, password); err != nil {
		return fmt.Errorf("saving proxy password to keyring: %w", err)
	}
	return nil
}
