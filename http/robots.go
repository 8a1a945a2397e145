package http

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/fwojciec/lighterceptor"
	"github.com/temoto/robotstxt"
)

var _ lighterceptor.Fetcher = (*RobotsFetcher)(nil)

// RobotsFetcher wraps a Fetcher and refuses URLs disallowed by the host's
// robots.txt. A refused URL is an error, so the engine treats it as absent.
// Rules are fetched once per host and kept for the fetcher's lifetime.
// Missing or unreadable robots.txt files allow everything.
type RobotsFetcher struct {
	fetcher   lighterceptor.Fetcher
	client    *http.Client
	userAgent string

	mu    sync.Mutex
	rules map[string]*robotstxt.Group
}

// NewRobotsFetcher wraps fetcher. If client is nil, a client with
// DefaultFetchTimeout is used for robots.txt requests.
func NewRobotsFetcher(fetcher lighterceptor.Fetcher, client *http.Client, userAgent string) *RobotsFetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &RobotsFetcher{
		fetcher:   fetcher,
		client:    client,
		userAgent: userAgent,
		rules:     make(map[string]*robotstxt.Group),
	}
}

// Fetch retrieves rawURL if robots.txt allows it.
func (f *RobotsFetcher) Fetch(ctx context.Context, rawURL string) (*lighterceptor.Resource, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "http" || u.Scheme == "https" {
		if !f.Allowed(ctx, u) {
			return nil, fmt.Errorf("disallowed by robots.txt: %s", rawURL)
		}
	}
	return f.fetcher.Fetch(ctx, rawURL)
}

// Allowed reports whether robots.txt permits fetching u.
func (f *RobotsFetcher) Allowed(ctx context.Context, u *url.URL) bool {
	group := f.group(ctx, u)
	if group == nil {
		return true
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return group.Test(path)
}

// group returns the cached rule group for u's host, loading it on first use.
// A nil group allows everything.
func (f *RobotsFetcher) group(ctx context.Context, u *url.URL) *robotstxt.Group {
	host := strings.ToLower(u.Host)

	f.mu.Lock()
	g, ok := f.rules[host]
	f.mu.Unlock()
	if ok {
		return g
	}

	g = f.load(ctx, u)

	f.mu.Lock()
	f.rules[host] = g
	f.mu.Unlock()
	return g
}

func (f *RobotsFetcher) load(ctx context.Context, u *url.URL) *robotstxt.Group {
	robotsURL := u.Scheme + "://" + u.Host + "/robots.txt"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil
	}
	return data.FindGroup(f.userAgent)
}

// Close closes the wrapped fetcher.
func (f *RobotsFetcher) Close() error {
	return f.fetcher.Close()
}
