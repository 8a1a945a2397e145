package discover

import (
	"context"
	"net"
	"net/url"
	"strings"
	"sync"

	"github.com/fwojciec/lighterceptor"
	"golang.org/x/time/rate"
)

var _ lighterceptor.RateLimiter = (*HostLimiter)(nil)

// HostLimiter spaces out retrievals that target the same origin host using
// one token bucket per host. The bucket is chosen from the URL being
// retrieved: the lowercased host name plus any non-default port, so
// "HTTPS://CDN.example.com:443/a.css" and "https://cdn.example.com/b.js"
// share a bucket while "http://cdn.example.com:8080/" does not.
// URLs without a network host, such as data: or file: references, are
// never delayed.
type HostLimiter struct {
	limit rate.Limit

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// NewHostLimiter creates a HostLimiter allowing rps retrievals per second
// per host with a burst of 1. A non-positive rps disables limiting.
func NewHostLimiter(rps float64) *HostLimiter {
	return &HostLimiter{
		limit:   rate.Limit(rps),
		buckets: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until a retrieval of rawURL may start.
// Returns an error if the context is canceled before the wait completes.
func (l *HostLimiter) Wait(ctx context.Context, rawURL string) error {
	key := hostKey(rawURL)
	if l.limit <= 0 || key == "" {
		return ctx.Err()
	}
	return l.bucket(key).Wait(ctx)
}

func (l *HostLimiter) bucket(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = rate.NewLimiter(l.limit, 1)
		l.buckets[key] = b
	}
	return b
}

// hostKey returns the bucket key for an http(s) URL, or "" when the URL
// has no network host.
func hostKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	switch port := u.Port(); {
	case port == "",
		scheme == "http" && port == "80",
		scheme == "https" && port == "443":
		return host
	default:
		return net.JoinHostPort(host, port)
	}
}
