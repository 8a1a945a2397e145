package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/lighterceptor"
)

// Ensure LoggingCaptureService implements lighterceptor.CaptureService.
var _ lighterceptor.CaptureService = (*LoggingCaptureService)(nil)

// LoggingCaptureService wraps a CaptureService with logging.
type LoggingCaptureService struct {
	next   lighterceptor.CaptureService
	logger *slog.Logger
}

// NewLoggingCaptureService creates a new LoggingCaptureService.
func NewLoggingCaptureService(next lighterceptor.CaptureService, logger *slog.Logger) *LoggingCaptureService {
	return &LoggingCaptureService{next: next, logger: logger}
}

func (s *LoggingCaptureService) CreateCapture(ctx context.Context, capture *lighterceptor.Capture) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create capture",
			"id", capture.ID,
			"requests", len(capture.Requests),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateCapture(ctx, capture)
}

func (s *LoggingCaptureService) FindCaptureByID(ctx context.Context, id string) (capture *lighterceptor.Capture, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find capture",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindCaptureByID(ctx, id)
}

func (s *LoggingCaptureService) FindCaptures(ctx context.Context, filter lighterceptor.CaptureFilter) (captures []*lighterceptor.Capture, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find captures",
			"count", len(captures),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindCaptures(ctx, filter)
}

func (s *LoggingCaptureService) DeleteCapture(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete capture",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteCapture(ctx, id)
}
