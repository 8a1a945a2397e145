//go:build integration

package rod_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/lighterceptor"
	"github.com/fwojciec/lighterceptor/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu   sync.Mutex
	reqs []lighterceptor.InterceptedRequest
	body map[string][]byte
}

func (r *recorder) intercept(_ context.Context, req *lighterceptor.InterceptedRequest) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reqs = append(r.reqs, *req)
	return r.body[req.URL]
}

func (r *recorder) find(url string) (lighterceptor.InterceptedRequest, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.reqs {
		if req.URL == url {
			return req, true
		}
	}
	return lighterceptor.InterceptedRequest{}, false
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	renderer, err := rod.NewRenderer()
	require.NoError(t, err)
	defer renderer.Close()

	t.Run("reports element and script requests", func(t *testing.T) {
		rec := &recorder{}
		html := `<!DOCTYPE html><html><head>
<link rel="stylesheet" href="/s.css">
</head><body>
<img src="/a.png">
<script>
fetch("/api/items");
const img = new Image(); img.src = "/dynamic.png";
</script>
</body></html>`

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		doc, err := renderer.Render(ctx, &lighterceptor.RenderRequest{
			HTML:       html,
			BaseURL:    "https://example.test/index.html",
			SettleTime: 200 * time.Millisecond,
			Intercept:  rec.intercept,
		})
		require.NoError(t, err)
		assert.Contains(t, doc.HTML, "<img")

		css, ok := rec.find("https://example.test/s.css")
		require.True(t, ok)
		assert.Equal(t, lighterceptor.KindCSS, css.Kind)

		img, ok := rec.find("https://example.test/a.png")
		require.True(t, ok)
		assert.Equal(t, lighterceptor.SourceImg, img.Source)

		api, ok := rec.find("https://example.test/api/items")
		require.True(t, ok)
		assert.Equal(t, lighterceptor.SourceFetch, api.Source)

		_, ok = rec.find("https://example.test/dynamic.png")
		assert.True(t, ok)
	})

	t.Run("serves intercepted content to scripts", func(t *testing.T) {
		rec := &recorder{body: map[string][]byte{
			"https://example.test/app.js": []byte(`document.body.setAttribute("data-ran", "yes")`),
		}}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		doc, err := renderer.Render(ctx, &lighterceptor.RenderRequest{
			HTML:       `<html><body><script src="/app.js"></script></body></html>`,
			BaseURL:    "https://example.test/",
			SettleTime: 100 * time.Millisecond,
			Intercept:  rec.intercept,
		})

		require.NoError(t, err)
		assert.Contains(t, doc.HTML, `data-ran="yes"`)
	})

	t.Run("renders markup without base URL", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		doc, err := renderer.Render(ctx, &lighterceptor.RenderRequest{
			HTML: `<p id="x">hello</p><script>document.getElementById("x").textContent = "changed"</script>`,
		})

		require.NoError(t, err)
		assert.Contains(t, doc.HTML, "changed")
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := renderer.Render(ctx, &lighterceptor.RenderRequest{HTML: `<p></p>`})

		assert.ErrorIs(t, err, context.Canceled)
	})
}
