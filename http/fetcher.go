// Package http provides the network retrieval primitive for discovered
// sub-resources, plus a robots.txt-respecting decorator.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/lighterceptor"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBodyBytes caps how much of a response body is read.
const DefaultMaxBodyBytes = 10 << 20

// DefaultUserAgent identifies requests made by the fetcher.
const DefaultUserAgent = "lighterceptor/1.0"

// Ensure Fetcher implements lighterceptor.Fetcher at compile time.
var _ lighterceptor.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves sub-resources over HTTP. Bodies are decoded to UTF-8
// using the declared or sniffed character set.
type Fetcher struct {
	client       *http.Client
	timeout      time.Duration
	maxBodyBytes int64
	userAgent    string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxBodyBytes limits how many body bytes are read per response.
// Longer bodies are truncated. Non-positive values keep the default.
func WithMaxBodyBytes(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBodyBytes = n
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		maxBodyBytes: DefaultMaxBodyBytes,
		userAgent:    DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the resource at url. Any status other than 200 is an error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*lighterceptor.Resource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	contentType := resp.Header.Get("Content-Type")
	body := io.LimitReader(resp.Body, f.maxBodyBytes)

	r, err := charset.NewReader(body, contentType)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return &lighterceptor.Resource{
		URL:         resp.Request.URL.String(),
		Text:        string(text),
		ContentType: contentType,
	}, nil
}

// Close releases idle connections.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
