package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/lighterceptor"
	lchttp "github.com/fwojciec/lighterceptor/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns body and content type", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/css")
			_, _ = w.Write([]byte(`body { background: url(bg.png) }`))
		}))
		defer server.Close()

		fetcher := lchttp.NewFetcher()
		defer fetcher.Close()

		res, err := fetcher.Fetch(context.Background(), server.URL+"/s.css")
		require.NoError(t, err)
		assert.Equal(t, `body { background: url(bg.png) }`, res.Text)
		assert.Equal(t, "text/css", res.ContentType)
		assert.Equal(t, server.URL+"/s.css", res.URL)
	})

	t.Run("decodes declared charset to UTF-8", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
			_, _ = w.Write([]byte("<p>caf\xe9</p>"))
		}))
		defer server.Close()

		fetcher := lchttp.NewFetcher()
		defer fetcher.Close()

		res, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<p>café</p>", res.Text)
	})

	t.Run("reports final URL after redirect", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/old.js", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/new.js", http.StatusFound)
		})
		mux.HandleFunc("/new.js", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/javascript")
			_, _ = w.Write([]byte(`fetch("/api")`))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		fetcher := lchttp.NewFetcher()
		defer fetcher.Close()

		res, err := fetcher.Fetch(context.Background(), server.URL+"/old.js")
		require.NoError(t, err)
		assert.Equal(t, server.URL+"/new.js", res.URL)
	})

	t.Run("truncates bodies over the limit", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte(strings.Repeat("a", 100)))
		}))
		defer server.Close()

		fetcher := lchttp.NewFetcher(lchttp.WithMaxBodyBytes(10))
		defer fetcher.Close()

		res, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Len(t, res.Text, 10)
	})

	t.Run("sends user agent", func(t *testing.T) {
		t.Parallel()

		var got string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.UserAgent()
		}))
		defer server.Close()

		fetcher := lchttp.NewFetcher(lchttp.WithUserAgent("tester/2"))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "tester/2", got)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := lchttp.NewFetcher(lchttp.WithTimeout(10 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
		}))
		defer server.Close()

		fetcher := lchttp.NewFetcher()
		defer fetcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.Fetch(ctx, server.URL)
		require.Error(t, err)
	})

	t.Run("returns error for non-200 status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		fetcher := lchttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})
}

var _ lighterceptor.Fetcher = (*lchttp.Fetcher)(nil)
