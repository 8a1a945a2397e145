package discover_test

import (
	"testing"
	"time"

	"github.com/fwojciec/lighterceptor"
	"github.com/fwojciec/lighterceptor/discover"
	"github.com/stretchr/testify/assert"
)

func TestRequestLog(t *testing.T) {
	t.Parallel()

	t.Run("keeps duplicates in append order", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		l := discover.NewRequestLog(func() time.Time { return now })

		l.Append("https://example.com/a.png", lighterceptor.SourceImg, "")
		l.Append("https://example.com/a.png", lighterceptor.SourceCSS, "https://example.com/s.css")

		got := l.Records()
		assert.Equal(t, []lighterceptor.RequestRecord{
			{URL: "https://example.com/a.png", Source: lighterceptor.SourceImg, Timestamp: now},
			{URL: "https://example.com/a.png", Source: lighterceptor.SourceCSS, Referrer: "https://example.com/s.css", Timestamp: now},
		}, got)
	})

	t.Run("records returns a copy", func(t *testing.T) {
		t.Parallel()

		l := discover.NewRequestLog(nil)
		l.Append("https://example.com/a", lighterceptor.SourceResource, "")

		got := l.Records()
		got[0].URL = "changed"

		assert.Equal(t, "https://example.com/a", l.Records()[0].URL)
		assert.False(t, got[0].Timestamp.IsZero())
	})
}
