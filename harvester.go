package lighterceptor

// Reference is a resource-bearing construct found in an element tree.
type Reference struct {
	// URL is the raw, unresolved reference as written in the document.
	URL string

	Source Source

	// Follow reports whether recursion should expand the reference.
	Follow bool

	// Kind is the structural kind hint. When Follow is set and Kind is
	// unknown, the kind is inferred from the URL.
	Kind ResourceKind
}

// Harvest is the result of scanning a rendered element tree.
type Harvest struct {
	Title string

	// BaseURL is the effective base for resolving References. It differs
	// from the document URL when the document declares <base href>.
	BaseURL string

	References []Reference
}

// Harvester scans a rendered element tree for resource references.
type Harvester interface {
	Harvest(html string, baseURL string) (*Harvest, error)
}

// Scope decides whether recursion may follow a URL.
// Out-of-scope URLs are still recorded, just never expanded.
type Scope interface {
	Allow(url string) bool
}
