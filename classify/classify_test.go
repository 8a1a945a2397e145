package classify_test

import (
	"testing"

	"github.com/fwojciec/lighterceptor"
	"github.com/fwojciec/lighterceptor/classify"
	"github.com/stretchr/testify/assert"
)

func TestDefault_Classify(t *testing.T) {
	t.Parallel()

	c := classify.Default()

	t.Run("content type wins over extension and body", func(t *testing.T) {
		t.Parallel()

		kind := c.Classify("https://example.com/app.js", "text/css; charset=utf-8", "<html></html>")
		assert.Equal(t, lighterceptor.KindCSS, kind)
	})

	t.Run("recognizes javascript content types", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, lighterceptor.KindJS, c.Classify("", "application/javascript", ""))
		assert.Equal(t, lighterceptor.KindJS, c.Classify("", "text/javascript", ""))
		assert.Equal(t, lighterceptor.KindHTML, c.Classify("", "text/html", ""))
	})

	t.Run("extension wins over body when content type has no opinion", func(t *testing.T) {
		t.Parallel()

		kind := c.Classify("https://example.com/page.htm?v=2#top", "application/octet-stream", "var x = 1;")
		assert.Equal(t, lighterceptor.KindHTML, kind)
	})

	t.Run("recognizes module script extensions", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, lighterceptor.KindJS, c.Classify("https://example.com/a.mjs", "", ""))
		assert.Equal(t, lighterceptor.KindJS, c.Classify("https://example.com/a.cjs", "", ""))
	})

	t.Run("sniffs markup", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, lighterceptor.KindHTML, c.Classify("https://example.com/x", "", "  <!DOCTYPE html><html></html>"))
		assert.Equal(t, lighterceptor.KindHTML, c.Classify("https://example.com/x", "", "<div></div>"))
	})

	t.Run("sniffs stylesheets", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, lighterceptor.KindCSS, c.Classify("https://example.com/x", "", "@charset \"utf-8\";"))
		assert.Equal(t, lighterceptor.KindCSS, c.Classify("https://example.com/x", "", ".a { background: url(a.png) }"))
	})

	t.Run("sniffs scripts", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, lighterceptor.KindJS, c.Classify("https://example.com/x", "", "const a = 1;"))
		assert.Equal(t, lighterceptor.KindJS, c.Classify("https://example.com/x", "", "fetch('/api')"))
	})

	t.Run("returns unknown when nothing matches", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, lighterceptor.KindUnknown, c.Classify("https://example.com/a.png", "image/png", "\x89PNG\r\n\x1a\n\x00\x00"))
		assert.Equal(t, lighterceptor.KindUnknown, c.Classify("https://example.com/data", "", "plain words only"))
	})
}

func TestFromURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, lighterceptor.KindCSS, classify.FromURL("https://example.com/s.css?v=1"))
	assert.Equal(t, lighterceptor.KindUnknown, classify.FromURL("https://example.com/a.png"))
	assert.Equal(t, lighterceptor.KindUnknown, classify.FromURL("https://example.com/"))
	assert.Equal(t, lighterceptor.KindJS, classify.FromURL("lib/app.js#x"))
}

func TestInput(t *testing.T) {
	t.Parallel()

	assert.Equal(t, lighterceptor.KindHTML, classify.Input(`<img src="https://example.com/a.png">`))
	assert.Equal(t, lighterceptor.KindCSS, classify.Input(`@import "a.css";`))
	assert.Equal(t, lighterceptor.KindCSS, classify.Input(`.hero { background-image: url("https://example.com/bg.png"); }`))
	assert.Equal(t, lighterceptor.KindJS, classify.Input(`fetch("https://example.com/api");`))
	assert.Equal(t, lighterceptor.KindJS, classify.Input(""))
}
