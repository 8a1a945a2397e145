package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/lighterceptor/bloom"
	"github.com/stretchr/testify/assert"
)

func TestSet_Add(t *testing.T) {
	t.Parallel()

	s := bloom.NewSet(1000, 0.01)

	assert.True(t, s.Add("https://example.com/a.css"), "first add should report absent")
	assert.False(t, s.Add("https://example.com/a.css"), "second add should report present")
	assert.True(t, s.Add("https://example.com/b.css"))
	assert.False(t, s.Add("https://example.com/b.css"))
}

func TestSet_Contains(t *testing.T) {
	t.Parallel()

	s := bloom.NewSet(1000, 0.01)

	assert.False(t, s.Contains("https://example.com/a.js"))
	s.Add("https://example.com/a.js")
	assert.True(t, s.Contains("https://example.com/a.js"))
	assert.False(t, s.Contains("https://example.com/b.js"))
}

func TestSet_NoFalsePositivesWhenSaturated(t *testing.T) {
	t.Parallel()

	// A tiny filter saturates quickly, so the prefilter answers "maybe"
	// for almost everything. The exact set must still be authoritative.
	s := bloom.NewSet(10, 0.5)

	for i := 0; i < 500; i++ {
		assert.True(t, s.Add(fmt.Sprintf("https://example.com/%d", i)))
	}
	for i := 500; i < 1000; i++ {
		assert.False(t, s.Contains(fmt.Sprintf("https://example.com/%d", i)))
	}
}

func TestSet_AgreesWithPlainMap(t *testing.T) {
	t.Parallel()

	for _, fpRate := range []float64{0.001, 0.5} {
		t.Run(fmt.Sprintf("fp rate %v", fpRate), func(t *testing.T) {
			t.Parallel()

			s := bloom.NewSet(50, fpRate)
			want := make(map[string]struct{})
			for i := 0; i < 2000; i++ {
				url := fmt.Sprintf("https://example.com/%d.js", (i*7919)%600)
				_, seen := want[url]
				want[url] = struct{}{}
				assert.Equal(t, !seen, s.Add(url), url)
				lookup := fmt.Sprintf("https://example.com/%d.js", (i*104729)%900)
				_, has := want[lookup]
				assert.Equal(t, has, s.Contains(lookup), lookup)
			}
		})
	}
}
