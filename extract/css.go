package extract

import "regexp"

// CSSDependencies holds references found in stylesheet text.
type CSSDependencies struct {
	// Imports are @import targets.
	Imports []string

	// URLs are all other url(...) occurrences.
	URLs []string
}

var (
	cssCommentRegex = regexp.MustCompile(`/\*[\s\S]*?\*/`)

	// url("x"), url('x'), url(x); keyword is case-insensitive.
	cssURLRegex = regexp.MustCompile(`(?i)\burl\(\s*(?:"([^"]*)"|'([^']*)'|([^"'()\s]*))\s*\)`)

	// @import "x"; @import 'x'; @import url(x); @import url("x") screen;
	cssImportRegex = regexp.MustCompile(`(?i)@import\s+(?:url\(\s*(?:"([^"]*)"|'([^']*)'|([^"'()\s]*))\s*\)|"([^"]*)"|'([^']*)')`)
)

// CSS scans stylesheet text for @import targets and url() references.
// Comments are ignored. A url() that is the target of an @import is
// reported only as an import.
func CSS(text string) CSSDependencies {
	text = cssCommentRegex.ReplaceAllString(text, "")

	var imports, urls orderedSet

	importSpans := cssImportRegex.FindAllStringSubmatchIndex(text, -1)
	for _, span := range importSpans {
		imports.add(firstGroup(submatches(text, span)))
	}

	for _, span := range cssURLRegex.FindAllStringSubmatchIndex(text, -1) {
		if withinAny(span[0], importSpans) {
			continue
		}
		urls.add(firstGroup(submatches(text, span)))
	}

	return CSSDependencies{Imports: imports.items, URLs: urls.items}
}

// submatches converts a submatch index slice into the matched strings.
func submatches(text string, span []int) []string {
	out := make([]string, len(span)/2)
	for i := range out {
		if span[2*i] >= 0 {
			out[i] = text[span[2*i]:span[2*i+1]]
		}
	}
	return out
}

func withinAny(pos int, spans [][]int) bool {
	for _, s := range spans {
		if pos >= s[0] && pos < s[1] {
			return true
		}
	}
	return false
}
