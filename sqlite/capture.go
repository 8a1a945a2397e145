package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/fwojciec/lighterceptor"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ lighterceptor.CaptureService = (*CaptureService)(nil)

// CaptureService implements lighterceptor.CaptureService using SQLite.
type CaptureService struct {
	db *DB
}

// NewCaptureService creates a new CaptureService.
func NewCaptureService(db *DB) *CaptureService {
	return &CaptureService{db: db}
}

// CreateCapture stores a capture with its requests and resources in one
// transaction and assigns a new ID.
func (s *CaptureService) CreateCapture(ctx context.Context, capture *lighterceptor.Capture) error {
	if err := capture.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	id := uuid.New().String()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO captures (id, input, input_type, title, captured_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, capture.Input, string(capture.InputType), capture.Title, formatTime(capture.CapturedAt)); err != nil {
		return err
	}

	for i, r := range capture.Requests {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO requests (capture_id, position, url, source, referrer, requested_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, id, i, r.URL, string(r.Source), r.Referrer, formatTime(r.Timestamp)); err != nil {
			return err
		}
	}

	for i, r := range capture.Resources {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO resources (capture_id, position, url, kind, content_type, bytes, hash)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, id, i, r.URL, string(r.Kind), r.ContentType, r.Bytes, r.Hash); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	capture.ID = id
	return nil
}

// FindCaptureByID retrieves a capture with its requests and resources.
func (s *CaptureService) FindCaptureByID(ctx context.Context, id string) (*lighterceptor.Capture, error) {
	var capture lighterceptor.Capture
	var inputType, capturedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, input, input_type, title, captured_at
		FROM captures
		WHERE id = ?
	`, id).Scan(&capture.ID, &capture.Input, &inputType, &capture.Title, &capturedAt)

	if err == sql.ErrNoRows {
		return nil, lighterceptor.Errorf(lighterceptor.ENOTFOUND, "capture not found")
	}
	if err != nil {
		return nil, err
	}

	capture.InputType = lighterceptor.ResourceKind(inputType)
	if capture.CapturedAt, err = parseTime(capturedAt, "captured_at"); err != nil {
		return nil, err
	}
	if capture.Requests, err = s.findRequests(ctx, id); err != nil {
		return nil, err
	}
	if capture.Resources, err = s.findResources(ctx, id); err != nil {
		return nil, err
	}

	return &capture, nil
}

func (s *CaptureService) findRequests(ctx context.Context, captureID string) ([]lighterceptor.RequestRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT url, source, referrer, requested_at
		FROM requests
		WHERE capture_id = ?
		ORDER BY position
	`, captureID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := []lighterceptor.RequestRecord{}
	for rows.Next() {
		var r lighterceptor.RequestRecord
		var source, requestedAt string
		if err := rows.Scan(&r.URL, &source, &r.Referrer, &requestedAt); err != nil {
			return nil, err
		}
		r.Source = lighterceptor.Source(source)
		if r.Timestamp, err = parseTime(requestedAt, "requested_at"); err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}
	return requests, rows.Err()
}

func (s *CaptureService) findResources(ctx context.Context, captureID string) ([]lighterceptor.ResourceInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT url, kind, content_type, bytes, hash
		FROM resources
		WHERE capture_id = ?
		ORDER BY position
	`, captureID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resources []lighterceptor.ResourceInfo
	for rows.Next() {
		var r lighterceptor.ResourceInfo
		var kind string
		if err := rows.Scan(&r.URL, &kind, &r.ContentType, &r.Bytes, &r.Hash); err != nil {
			return nil, err
		}
		r.Kind = lighterceptor.ResourceKind(kind)
		resources = append(resources, r)
	}
	return resources, rows.Err()
}

// FindCaptures retrieves captures matching the filter, newest first.
// Requests and resources are not loaded.
func (s *CaptureService) FindCaptures(ctx context.Context, filter lighterceptor.CaptureFilter) ([]*lighterceptor.Capture, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, input, input_type, title, captured_at FROM captures WHERE 1=1")

	if filter.Input != nil {
		query.WriteString(" AND input = ?")
		args = append(args, *filter.Input)
	}

	query.WriteString(" ORDER BY captured_at DESC, id")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var captures []*lighterceptor.Capture
	for rows.Next() {
		var capture lighterceptor.Capture
		var inputType, capturedAt string

		if err := rows.Scan(&capture.ID, &capture.Input, &inputType, &capture.Title, &capturedAt); err != nil {
			return nil, err
		}
		capture.InputType = lighterceptor.ResourceKind(inputType)
		if capture.CapturedAt, err = parseTime(capturedAt, "captured_at"); err != nil {
			return nil, err
		}
		captures = append(captures, &capture)
	}

	return captures, rows.Err()
}

// DeleteCapture permanently removes a capture and its records.
func (s *CaptureService) DeleteCapture(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM captures WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return lighterceptor.Errorf(lighterceptor.ENOTFOUND, "capture not found")
	}

	return nil
}
