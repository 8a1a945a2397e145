package discover

import (
	"sync"
	"time"

	"github.com/fwojciec/lighterceptor"
)

// RequestLog is the ordered, append-only record of discovered URLs.
// It is a trace, not a set: duplicates are kept.
// It is safe for concurrent use by multiple goroutines.
type RequestLog struct {
	mu      sync.Mutex
	records []lighterceptor.RequestRecord
	now     func() time.Time
}

// NewRequestLog creates an empty log stamping records with now.
func NewRequestLog(now func() time.Time) *RequestLog {
	if now == nil {
		now = time.Now
	}
	return &RequestLog{now: now}
}

// Append records a discovery.
func (l *RequestLog) Append(url string, source lighterceptor.Source, referrer string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, lighterceptor.RequestRecord{
		URL:       url,
		Source:    source,
		Referrer:  referrer,
		Timestamp: l.now(),
	})
}

// Records returns a copy of the log in append order.
func (l *RequestLog) Records() []lighterceptor.RequestRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]lighterceptor.RequestRecord, len(l.records))
	copy(out, l.records)
	return out
}
