package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/lighterceptor"
	"github.com/fwojciec/lighterceptor/mock"
	lcslog "github.com/fwojciec/lighterceptor/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes, content type and hash", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*lighterceptor.Resource, error) {
				return &lighterceptor.Resource{URL: url, Text: "a { color: red }", ContentType: "text/css"}, nil
			},
		}

		fetcher := lcslog.NewLoggingFetcher(inner, logger)
		res, err := fetcher.Fetch(context.Background(), "https://example.com/s.css")

		require.NoError(t, err)
		assert.Equal(t, "a { color: red }", res.Text)
		output := buf.String()
		assert.Contains(t, output, "msg=fetch")
		assert.Contains(t, output, "url=https://example.com/s.css")
		assert.Contains(t, output, "bytes=16")
		assert.Contains(t, output, "content_type=text/css")
		assert.Regexp(t, `hash=[0-9a-f]{16}`, output)
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*lighterceptor.Resource, error) {
				return nil, errors.New("network error")
			},
		}

		fetcher := lcslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://example.com/s.css")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "bytes=0")
		assert.Contains(t, output, "err=\"network error\"")
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	closeCalled := false
	inner := &mock.Fetcher{
		CloseFn: func() error {
			closeCalled = true
			return nil
		},
	}

	fetcher := lcslog.NewLoggingFetcher(inner, slog.New(slog.DiscardHandler))
	err := fetcher.Close()

	require.NoError(t, err)
	assert.True(t, closeCalled)
}
