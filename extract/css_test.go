package extract_test

import (
	"testing"

	"github.com/fwojciec/lighterceptor/extract"
	"github.com/stretchr/testify/assert"
)

func TestCSS(t *testing.T) {
	t.Parallel()

	t.Run("finds url references with any quoting", func(t *testing.T) {
		t.Parallel()

		deps := extract.CSS(`
			.a { background: url("a.png"); }
			.b { background: URL('b.png'); }
			.c { background: url( c.png ); }
		`)

		assert.Equal(t, []string{"a.png", "b.png", "c.png"}, deps.URLs)
		assert.Empty(t, deps.Imports)
	})

	t.Run("classifies import targets separately", func(t *testing.T) {
		t.Parallel()

		deps := extract.CSS(`
			@import "base.css";
			@import url("theme.css") screen;
			@import 'print.css' print;
			body { background: url(bg.png); }
		`)

		assert.Equal(t, []string{"base.css", "theme.css", "print.css"}, deps.Imports)
		assert.Equal(t, []string{"bg.png"}, deps.URLs)
	})

	t.Run("deduplicates preserving first occurrence order", func(t *testing.T) {
		t.Parallel()

		deps := extract.CSS(`.a{background:url(z.png)} .b{background:url(a.png)} .c{background:url("z.png")}`)

		assert.Equal(t, []string{"z.png", "a.png"}, deps.URLs)
	})

	t.Run("discards empty and whitespace captures", func(t *testing.T) {
		t.Parallel()

		deps := extract.CSS(`.a{background:url()} .b{background:url("  ")}`)

		assert.Empty(t, deps.URLs)
	})

	t.Run("ignores commented-out references", func(t *testing.T) {
		t.Parallel()

		deps := extract.CSS(`/* .old { background: url(old.png); } */ .new { background: url(new.png); }`)

		assert.Equal(t, []string{"new.png"}, deps.URLs)
	})

	t.Run("returns nothing for empty input", func(t *testing.T) {
		t.Parallel()

		deps := extract.CSS("")

		assert.Empty(t, deps.URLs)
		assert.Empty(t, deps.Imports)
	})
}
