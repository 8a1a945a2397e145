// Package bloom provides URL sets backed by Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Set is an exact set of URLs with a Bloom filter in front of it.
// Negative filter answers are definitive, so most first-time URLs never
// touch the exact set; positives are confirmed against it, so no URL is
// ever wrongly reported as present. Every answer equals the answer of the
// exact set alone; the filter only saves lookups. Set is not safe for
// concurrent use.
type Set struct {
	f     *bloom.BloomFilter
	exact map[string]struct{}
}

// NewSet creates a new Set sized for n expected URLs with the given
// false positive rate for the prefilter.
func NewSet(n uint, fpRate float64) *Set {
	return &Set{
		f:     bloom.NewWithEstimates(n, fpRate),
		exact: make(map[string]struct{}),
	}
}

// Add inserts url and reports whether it was absent before.
func (s *Set) Add(url string) bool {
	if s.f.TestString(url) {
		if _, ok := s.exact[url]; ok {
			return false
		}
	} else {
		s.f.AddString(url)
	}
	s.exact[url] = struct{}{}
	return true
}

// Contains reports whether url is in the set.
func (s *Set) Contains(url string) bool {
	if !s.f.TestString(url) {
		return false
	}
	_, ok := s.exact[url]
	return ok
}
