package lighterceptor

import (
	"context"
	"time"
)

// Element describes the element that initiated an intercepted request.
type Element struct {
	Tag   string
	Attrs map[string]string
}

// Attr returns the value of the named attribute, or "" when absent.
func (e *Element) Attr(name string) string {
	if e == nil {
		return ""
	}
	return e.Attrs[name]
}

// InterceptedRequest is a request the rendering environment would issue.
type InterceptedRequest struct {
	URL      string
	Referrer string

	// Source is the mechanism that produced the request.
	Source Source

	// Kind is the environment's own expectation of the content kind, when
	// it has one (e.g. the browser knows a request is for a stylesheet).
	Kind ResourceKind

	// Element is the initiating element, or nil when not resolvable.
	Element *Element
}

// InterceptFunc is invoked by a Renderer for every request it would issue.
// The returned content substitutes the network response; nil means absent
// and the environment should continue with an empty response.
type InterceptFunc func(ctx context.Context, req *InterceptedRequest) []byte

// RenderRequest is the input of a single rendering pass.
type RenderRequest struct {
	HTML    string
	BaseURL string

	// SettleTime bounds how long the environment waits for asynchronous
	// script side effects after the initial parse. Effects that happen
	// later are not observed.
	SettleTime time.Duration

	Intercept InterceptFunc
}

// Document is the element tree produced by a rendering pass, serialized.
type Document struct {
	HTML string
}

// Renderer is the document rendering environment. It builds an element
// tree from markup, executes scripts where it is able to, and reports every
// resource request through the interception callback.
type Renderer interface {
	// Render parses and executes the markup. An error means the tree could
	// not be built at all; implementations return ERENDER in that case.
	Render(ctx context.Context, req *RenderRequest) (*Document, error)

	// Close releases environment resources.
	Close() error
}
