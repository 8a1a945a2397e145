package whatwg_test

import (
	"testing"

	"github.com/fwojciec/lighterceptor/whatwg"
	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	t.Run("resolves relative path against base", func(t *testing.T) {
		t.Parallel()

		got, ok := whatwg.Resolve("https://example.com/docs/index.html", "img/a.png")
		assert.True(t, ok)
		assert.Equal(t, "https://example.com/docs/img/a.png", got)
	})

	t.Run("resolves parent directory references", func(t *testing.T) {
		t.Parallel()

		got, ok := whatwg.Resolve("https://example.com/css/site/main.css", "../../fonts/a.woff2")
		assert.True(t, ok)
		assert.Equal(t, "https://example.com/fonts/a.woff2", got)
	})

	t.Run("resolves protocol-relative reference", func(t *testing.T) {
		t.Parallel()

		got, ok := whatwg.Resolve("https://example.com/", "//cdn.example.net/lib.js")
		assert.True(t, ok)
		assert.Equal(t, "https://cdn.example.net/lib.js", got)
	})

	t.Run("preserves query and fragment", func(t *testing.T) {
		t.Parallel()

		got, ok := whatwg.Resolve("https://example.com/a/", "b?x=1#top")
		assert.True(t, ok)
		assert.Equal(t, "https://example.com/a/b?x=1#top", got)
	})

	t.Run("canonicalizes absolute reference without base", func(t *testing.T) {
		t.Parallel()

		got, ok := whatwg.Resolve("", "HTTPS://Example.COM")
		assert.True(t, ok)
		assert.Equal(t, "https://example.com/", got)
	})

	t.Run("returns relative reference verbatim without base", func(t *testing.T) {
		t.Parallel()

		got, ok := whatwg.Resolve("", "images/a.png")
		assert.True(t, ok)
		assert.Equal(t, "images/a.png", got)
	})

	t.Run("returns reference verbatim when base is malformed", func(t *testing.T) {
		t.Parallel()

		got, ok := whatwg.Resolve("not a url", "a.png")
		assert.True(t, ok)
		assert.Equal(t, "a.png", got)
	})

	t.Run("reports absence for empty reference", func(t *testing.T) {
		t.Parallel()

		_, ok := whatwg.Resolve("https://example.com/", "")
		assert.False(t, ok)

		_, ok = whatwg.Resolve("https://example.com/", "   ")
		assert.False(t, ok)
	})
}

func TestIsSkippable(t *testing.T) {
	t.Parallel()

	assert.True(t, whatwg.IsSkippable("data:image/png;base64,AAAA"))
	assert.True(t, whatwg.IsSkippable("JavaScript:void(0)"))
	assert.True(t, whatwg.IsSkippable("about:blank"))
	assert.False(t, whatwg.IsSkippable("https://example.com/a.png"))
	assert.False(t, whatwg.IsSkippable("/relative/path"))
}

func TestStripFragment(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://example.com/a", whatwg.StripFragment("https://example.com/a#b"))
	assert.Equal(t, "https://example.com/a", whatwg.StripFragment("https://example.com/a"))
}
