package slog

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/fwojciec/lighterceptor"
)

// Ensure LoggingRenderer implements lighterceptor.Renderer.
var _ lighterceptor.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with logging. It counts the requests
// reported through the interception callback during each pass.
type LoggingRenderer struct {
	next   lighterceptor.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next lighterceptor.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// Render delegates to the wrapped renderer and logs the pass.
func (r *LoggingRenderer) Render(ctx context.Context, req *lighterceptor.RenderRequest) (doc *lighterceptor.Document, err error) {
	var intercepted atomic.Int64
	wrapped := *req
	if req.Intercept != nil {
		wrapped.Intercept = func(ctx context.Context, ir *lighterceptor.InterceptedRequest) []byte {
			intercepted.Add(1)
			return req.Intercept(ctx, ir)
		}
	}

	defer func(begin time.Time) {
		r.logger.Info("render",
			"base_url", req.BaseURL,
			"bytes", len(req.HTML),
			"intercepted", intercepted.Load(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Render(ctx, &wrapped)
}

// Close delegates to the wrapped renderer.
func (r *LoggingRenderer) Close() error {
	return r.next.Close()
}
