// Package whatwg resolves resource references into absolute URLs using the
// WHATWG URL Standard parsing rules, the same rules a browser applies.
package whatwg

import (
	"strings"

	whatwgUrl "github.com/nlnwa/whatwg-url/url"
)

var urlParser = whatwgUrl.NewParser(whatwgUrl.WithPercentEncodeSinglePercentSign())

// Resolve resolves reference against baseURL and returns the canonical
// absolute URL. When baseURL is empty the reference must itself be absolute.
//
// The bool result is false only when the reference is empty. A reference
// that cannot be parsed is returned unchanged so that it is still reported.
func Resolve(baseURL, reference string) (string, bool) {
	if strings.TrimSpace(reference) == "" {
		return "", false
	}

	var (
		u   *whatwgUrl.Url
		err error
	)
	if baseURL != "" {
		u, err = urlParser.ParseRef(baseURL, reference)
	} else {
		u, err = urlParser.Parse(reference)
	}
	if err != nil {
		return reference, true
	}
	return u.Href(false), true
}

// skippableSchemes carry no fetchable network identity.
var skippableSchemes = []string{"data:", "javascript:", "about:"}

// IsSkippable reports whether rawURL must never be expanded recursively.
// Skippable URLs are still recorded; skipping applies to recursion only.
func IsSkippable(rawURL string) bool {
	s := strings.ToLower(strings.TrimSpace(rawURL))
	for _, scheme := range skippableSchemes {
		if strings.HasPrefix(s, scheme) {
			return true
		}
	}
	return false
}

// StripFragment returns rawURL without its fragment. Resources differing
// only by fragment are the same resource on the wire.
func StripFragment(rawURL string) string {
	if idx := strings.Index(rawURL, "#"); idx != -1 {
		return rawURL[:idx]
	}
	return rawURL
}
