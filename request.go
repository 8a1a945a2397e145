package lighterceptor

import "time"

// Source identifies the mechanism through which a request was discovered.
// It describes how a URL was found, not what kind of content it points to.
type Source string

// Discovery mechanisms.
const (
	SourceResource Source = "resource"
	SourceImg      Source = "img"
	SourceCSS      Source = "css"
	SourceFetch    Source = "fetch"
	SourceXHR      Source = "xhr"
)

// RequestRecord is a single entry of the request log.
// Records are immutable once appended. The same URL may appear several
// times when it is discovered through different mechanisms or elements.
type RequestRecord struct {
	URL    string `json:"url"`
	Source Source `json:"source"`

	// Referrer is the URL of the resource whose analysis produced this
	// record. It is empty for references found in the top-level input.
	Referrer string `json:"referrer,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// ResourceInfo describes a sub-resource retrieved during recursive discovery.
type ResourceInfo struct {
	URL         string       `json:"url"`
	Kind        ResourceKind `json:"kind,omitempty"`
	ContentType string       `json:"contentType,omitempty"`
	Bytes       int          `json:"bytes"`
	Hash        string       `json:"hash"`
}
