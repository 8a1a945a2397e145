package mock

import (
	"context"

	"github.com/fwojciec/lighterceptor"
)

var _ lighterceptor.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of lighterceptor.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, req *lighterceptor.RenderRequest) (*lighterceptor.Document, error)
	CloseFn  func() error
}

func (r *Renderer) Render(ctx context.Context, req *lighterceptor.RenderRequest) (*lighterceptor.Document, error) {
	return r.RenderFn(ctx, req)
}

func (r *Renderer) Close() error {
	return r.CloseFn()
}
