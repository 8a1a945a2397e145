package discover

import (
	"sync"

	"github.com/fwojciec/lighterceptor"
	"github.com/fwojciec/lighterceptor/bloom"
	"github.com/fwojciec/lighterceptor/whatwg"
)

// Processed-set sizing.
const (
	// processedExpectedURLs is the expected number of URLs for Bloom filter sizing.
	processedExpectedURLs = 10000
	// processedFalsePositiveRate is the prefilter false positive rate.
	processedFalsePositiveRate = 0.01
)

// WorkItem is a URL awaiting retrieval and analysis.
type WorkItem struct {
	URL  string
	Kind lighterceptor.ResourceKind
}

// Queue is a deduplicating FIFO work list. A URL is admitted at most once
// for the lifetime of the queue, even after it has been popped.
// It is safe for concurrent use by multiple goroutines.
type Queue struct {
	mu        sync.Mutex
	processed *bloom.Set
	items     []WorkItem
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{
		processed: bloom.NewSet(processedExpectedURLs, processedFalsePositiveRate),
	}
}

// Push appends an item unless its URL was admitted before.
// URL fragments are stripped before deduplication.
// The membership check and the append happen under one lock.
func (q *Queue) Push(item WorkItem) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	item.URL = whatwg.StripFragment(item.URL)
	if !q.processed.Add(item.URL) {
		return false
	}
	q.items = append(q.items, item)
	return true
}

// PopAll removes and returns every queued item in FIFO order.
func (q *Queue) PopAll() []WorkItem {
	q.mu.Lock()
	defer q.mu.Unlock()

	items := q.items
	q.items = nil
	return items
}

// Seen reports whether url was ever admitted.
func (q *Queue) Seen(url string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.processed.Contains(whatwg.StripFragment(url))
}
