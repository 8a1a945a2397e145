package lighterceptor

import "context"

// Resource is the content of a retrieved sub-resource.
type Resource struct {
	URL         string
	Text        string
	ContentType string
}

// Fetcher retrieves sub-resources discovered during a run.
// It is the injected retrieval primitive: the engine decides what to
// retrieve and when, the Fetcher decides how bytes arrive.
type Fetcher interface {
	// Fetch retrieves the resource at url.
	// Any error, including a non-success status, means the content is absent.
	Fetch(ctx context.Context, url string) (*Resource, error)

	// Close releases resources held by the fetcher.
	Close() error
}

// RateLimiter throttles retrievals. Implementations choose how URLs are
// grouped into shared budgets.
type RateLimiter interface {
	// Wait blocks until a retrieval of rawURL may start.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, rawURL string) error
}
