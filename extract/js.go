package extract

import (
	"regexp"
	"strings"
)

// JSDependencies holds references found in script text, one set per call shape.
type JSDependencies struct {
	// Imports are static (import/export ... from) and dynamic import() targets.
	Imports       []string
	ImportScripts []string
	Fetches       []string
	XHRs          []string
}

// Bundlers drop optional whitespace, so an import clause may start
// directly with "{" or "*" and a module specifier may follow "import" or
// "from" without a space. A clause starting with an identifier still needs
// whitespace to separate it from the keyword.
const jsImportClause = `(?:\s*[{*]|\s+[\w$])[\w$*{}\s,]*?\s*from`

var (
	jsStaticImportRegex  = regexp.MustCompile(`\bimport(?:` + jsImportClause + `)?\s*["']([^"'\n]+)["']`)
	jsExportFromRegex    = regexp.MustCompile(`\bexport` + jsImportClause + `\s*["']([^"'\n]+)["']`)
	jsDynamicImportRegex = regexp.MustCompile("\\bimport\\s*\\(\\s*(?:\"([^\"\\n]+)\"|'([^'\\n]+)'|`([^`]+)`)")
	jsImportScriptsRegex = regexp.MustCompile(`\bimportScripts\s*\(([^)]*)\)`)
	jsFetchRegex         = regexp.MustCompile("\\bfetch\\s*\\(\\s*(?:\"([^\"\\n]+)\"|'([^'\\n]+)'|`([^`]+)`)")
	jsXHROpenRegex       = regexp.MustCompile("\\.open\\s*\\(\\s*[\"'`][A-Za-z]+[\"'`]\\s*,\\s*(?:\"([^\"\\n]+)\"|'([^'\\n]+)'|`([^`]+)`)")
	jsStringLiteralRegex = regexp.MustCompile(`"([^"\n]+)"|'([^'\n]+)'`)
)

// JS scans script text for import, importScripts, fetch and
// XMLHttpRequest.open call shapes. Template literals with interpolation
// are skipped because their value is only known at runtime.
func JS(text string) JSDependencies {
	var imports, importScripts, fetches, xhrs orderedSet

	for _, m := range jsStaticImportRegex.FindAllStringSubmatch(text, -1) {
		addStatic(&imports, firstGroup(m))
	}
	for _, m := range jsExportFromRegex.FindAllStringSubmatch(text, -1) {
		addStatic(&imports, firstGroup(m))
	}
	for _, m := range jsDynamicImportRegex.FindAllStringSubmatch(text, -1) {
		addStatic(&imports, firstGroup(m))
	}
	for _, m := range jsImportScriptsRegex.FindAllStringSubmatch(text, -1) {
		for _, arg := range jsStringLiteralRegex.FindAllStringSubmatch(m[1], -1) {
			addStatic(&importScripts, firstGroup(arg))
		}
	}
	for _, m := range jsFetchRegex.FindAllStringSubmatch(text, -1) {
		addStatic(&fetches, firstGroup(m))
	}
	for _, m := range jsXHROpenRegex.FindAllStringSubmatch(text, -1) {
		addStatic(&xhrs, firstGroup(m))
	}

	return JSDependencies{
		Imports:       imports.items,
		ImportScripts: importScripts.items,
		Fetches:       fetches.items,
		XHRs:          xhrs.items,
	}
}

func addStatic(set *orderedSet, v string) {
	if strings.Contains(v, "${") {
		return
	}
	set.add(v)
}
