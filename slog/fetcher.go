// Package slog provides logging decorators for the lighterceptor service
// interfaces.
package slog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/lighterceptor"
)

// Ensure LoggingFetcher implements lighterceptor.Fetcher.
var _ lighterceptor.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   lighterceptor.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next lighterceptor.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the retrieval.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (res *lighterceptor.Resource, err error) {
	defer func(begin time.Time) {
		var bytes int
		var contentType, hash string
		if res != nil {
			bytes = len(res.Text)
			contentType = res.ContentType
			hash = fmt.Sprintf("%016x", xxhash.Sum64String(res.Text))
		}
		f.logger.Info("fetch",
			"url", url,
			"bytes", bytes,
			"content_type", contentType,
			"hash", hash,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
