package mock

import (
	"context"

	"github.com/fwojciec/lighterceptor"
)

var _ lighterceptor.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of lighterceptor.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*lighterceptor.Resource, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*lighterceptor.Resource, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ lighterceptor.RateLimiter = (*RateLimiter)(nil)

// RateLimiter is a mock implementation of lighterceptor.RateLimiter.
type RateLimiter struct {
	WaitFn func(ctx context.Context, rawURL string) error
}

func (l *RateLimiter) Wait(ctx context.Context, rawURL string) error {
	return l.WaitFn(ctx, rawURL)
}
