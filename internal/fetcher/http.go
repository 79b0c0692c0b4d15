package fetcher

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// HTTPOptions configures the HTTP fetcher.
type HTTPOptions struct {
	UserAgent string
	Timeout   time.Duration
	RateLimit rate.Limit // requests per second; 0 means 10
	Burst     int
}

// HTTPFetcher implements Fetcher against a published site. Each file is
// requested once; a failed request is reported to the caller, never retried.
type HTTPFetcher struct {
	client  *http.Client
	base    *url.URL
	opts    HTTPOptions
	limiter *rate.Limiter
}

// NewHTTPFetcher creates an HTTPFetcher that resolves names against baseURL.
func NewHTTPFetcher(baseURL string, opts HTTPOptions) (*HTTPFetcher, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, eris.Wrapf(err, "http fetch: parse base url %q", baseURL)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, eris.Errorf("http fetch: unsupported scheme %q", base.Scheme)
	}

	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "millionaires/1.0"
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = 10
	}
	if opts.Burst == 0 {
		opts.Burst = 10
	}

	return &HTTPFetcher{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		base:    base,
		opts:    opts,
		limiter: rate.NewLimiter(opts.RateLimit, opts.Burst),
	}, nil
}

// URL returns the absolute URL for a records file name.
func (f *HTTPFetcher) URL(name string) string {
	return f.base.JoinPath(name).String()
}

// Fetch downloads the named file and returns the response body.
func (f *HTTPFetcher) Fetch(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	rawURL := f.URL(name)

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "http fetch: rate limiter wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "http fetch: create request")
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "http fetch: get %s", rawURL)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, eris.Errorf("http fetch: unexpected status %d from %s", resp.StatusCode, rawURL)
	}

	zap.L().Debug("fetched records file",
		zap.String("url", rawURL),
		zap.Duration("elapsed", time.Since(start)),
	)
	return resp.Body, nil
}
