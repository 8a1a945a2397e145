package lighterceptor

import "strings"

// ResourceKind identifies the content kind of a resource: markup, stylesheet
// or script. It is used both as a hint attached to queued URLs and as the
// result of classification.
type ResourceKind string

// Supported resource kinds.
const (
	KindUnknown ResourceKind = ""
	KindHTML    ResourceKind = "html"
	KindCSS     ResourceKind = "css"
	KindJS      ResourceKind = "js"
)

// ParseResourceKind converts a user-supplied kind name into a ResourceKind.
// An empty string yields KindUnknown, meaning "auto-detect".
func ParseResourceKind(s string) (ResourceKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return KindUnknown, nil
	case "html", "htm":
		return KindHTML, nil
	case "css":
		return KindCSS, nil
	case "js", "javascript", "script":
		return KindJS, nil
	}
	return KindUnknown, Errorf(EINVALID, "unknown input kind %q (want html, css or js)", s)
}

// Classifier infers the kind of a resource from its URL, content type and
// body. Implementations return KindUnknown when they have no opinion.
type Classifier interface {
	Classify(url, contentType, body string) ResourceKind
}
