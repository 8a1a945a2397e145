package mock

import (
	"context"

	"github.com/fwojciec/lighterceptor"
)

var _ lighterceptor.CaptureService = (*CaptureService)(nil)

// CaptureService is a mock implementation of lighterceptor.CaptureService.
type CaptureService struct {
	CreateCaptureFn   func(ctx context.Context, capture *lighterceptor.Capture) error
	FindCaptureByIDFn func(ctx context.Context, id string) (*lighterceptor.Capture, error)
	FindCapturesFn    func(ctx context.Context, filter lighterceptor.CaptureFilter) ([]*lighterceptor.Capture, error)
	DeleteCaptureFn   func(ctx context.Context, id string) error
}

func (s *CaptureService) CreateCapture(ctx context.Context, capture *lighterceptor.Capture) error {
	return s.CreateCaptureFn(ctx, capture)
}

func (s *CaptureService) FindCaptureByID(ctx context.Context, id string) (*lighterceptor.Capture, error) {
	return s.FindCaptureByIDFn(ctx, id)
}

func (s *CaptureService) FindCaptures(ctx context.Context, filter lighterceptor.CaptureFilter) ([]*lighterceptor.Capture, error) {
	return s.FindCapturesFn(ctx, filter)
}

func (s *CaptureService) DeleteCapture(ctx context.Context, id string) error {
	return s.DeleteCaptureFn(ctx, id)
}
