// Package extract scans stylesheet and script text for resource references.
//
// The scanners are syntactic heuristics: they never execute anything and
// cannot see URLs built at runtime (concatenation, template interpolation,
// computed property access). Each pattern is applied in a single linear
// scan and results keep first-occurrence order.
package extract

import "strings"

// orderedSet collects strings in first-occurrence order without duplicates.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func (s *orderedSet) add(v string) {
	v = strings.TrimSpace(v)
	if v == "" {
		return
	}
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

// firstGroup returns the first non-empty capture group of a submatch.
func firstGroup(match []string) string {
	for _, g := range match[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}
