package lighterceptor

import (
	"context"
	"time"
)

// Capture is the result of one discovery run.
type Capture struct {
	// ID is assigned when the capture is persisted.
	ID string `json:"id,omitempty"`

	// Input names where the analysed content came from (file path, URL or "-").
	Input string `json:"input,omitempty"`

	InputType  ResourceKind    `json:"inputType,omitempty"`
	Title      string          `json:"title,omitempty"`
	CapturedAt time.Time       `json:"capturedAt"`
	Requests   []RequestRecord `json:"requests"`

	// Resources lists retrieved sub-resources in retrieval order.
	// It is only populated when recursion is enabled.
	Resources []ResourceInfo `json:"resources,omitempty"`
}

// Validate returns an error if the capture contains invalid fields.
func (c *Capture) Validate() error {
	if c.CapturedAt.IsZero() {
		return Errorf(EINVALID, "capture timestamp required")
	}
	for _, r := range c.Requests {
		if r.URL == "" {
			return Errorf(EINVALID, "request URL required")
		}
	}
	return nil
}

// URLs returns the request URLs in log order.
func (c *Capture) URLs() []string {
	urls := make([]string, 0, len(c.Requests))
	for _, r := range c.Requests {
		urls = append(urls, r.URL)
	}
	return urls
}

// CaptureService persists captures.
type CaptureService interface {
	// CreateCapture stores a capture and assigns its ID.
	CreateCapture(ctx context.Context, capture *Capture) error

	// FindCaptureByID retrieves a capture including its requests and resources.
	// Returns ENOTFOUND if capture does not exist.
	FindCaptureByID(ctx context.Context, id string) (*Capture, error)

	// FindCaptures retrieves captures without their requests, newest first.
	FindCaptures(ctx context.Context, filter CaptureFilter) ([]*Capture, error)

	// DeleteCapture removes a capture and everything recorded with it.
	// Returns ENOTFOUND if capture does not exist.
	DeleteCapture(ctx context.Context, id string) error
}

// CaptureFilter represents a filter for FindCaptures.
type CaptureFilter struct {
	Input *string

	Limit  int
	Offset int
}
