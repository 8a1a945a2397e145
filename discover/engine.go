// Package discover implements the recursive resource-discovery engine.
//
// A discovery run classifies the top-level input, analyzes it, and, when
// recursion is enabled, drains a deduplicating FIFO queue of discovered
// sub-resources through a per-run retrieval cache until no new URLs appear.
package discover

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/lighterceptor"
	"github.com/fwojciec/lighterceptor/classify"
	"github.com/fwojciec/lighterceptor/extract"
	"github.com/fwojciec/lighterceptor/whatwg"
	"golang.org/x/sync/errgroup"
)

// DefaultSettleTime is the wait after each rendering pass when
// Options.SettleTime is zero.
const DefaultSettleTime = 50 * time.Millisecond

// NoSettle disables the wait after each rendering pass.
const NoSettle time.Duration = -1

// Options configures a single discovery run.
type Options struct {
	// SettleTime bounds the wait for asynchronous script side effects in
	// each rendering pass. Zero means DefaultSettleTime and any negative
	// value, such as NoSettle, means no wait.
	SettleTime time.Duration

	// Recursive enables the discovery queue. When false only the
	// top-level input is analyzed and nothing is retrieved.
	Recursive bool

	// Kind overrides top-level input classification when set.
	Kind lighterceptor.ResourceKind

	// BaseURL resolves relative references in the top-level input.
	BaseURL string

	// Concurrency is the number of retrievals prefetched in parallel per
	// queue wave. Values below 2 retrieve strictly sequentially.
	// Analysis is always sequential in FIFO order.
	Concurrency int

	// Scope, if set, restricts which URLs recursion may expand.
	Scope lighterceptor.Scope
}

// Validate returns an EINVALID error when the options are unusable.
func (o Options) Validate() error {
	if o.Concurrency < 0 {
		return lighterceptor.Errorf(lighterceptor.EINVALID, "concurrency must not be negative")
	}
	switch o.Kind {
	case lighterceptor.KindUnknown, lighterceptor.KindHTML, lighterceptor.KindCSS, lighterceptor.KindJS:
	default:
		return lighterceptor.Errorf(lighterceptor.EINVALID, "unknown input kind %q", o.Kind)
	}
	return nil
}

// Engine discovers every resource a piece of markup, stylesheet or script
// would request. An Engine holds no per-run state and may be shared.
type Engine struct {
	// Fetcher retrieves sub-resources. Nil makes every retrieval absent.
	Fetcher lighterceptor.Fetcher

	Renderer   lighterceptor.Renderer
	Harvester  lighterceptor.Harvester
	Classifier lighterceptor.Classifier

	// RateLimiter, if set, admits every retrieval attempt, retries included.
	RateLimiter lighterceptor.RateLimiter

	// RetryDelays are the backoff delays between retrieval attempts.
	// Nil means a single attempt per URL.
	RetryDelays []time.Duration

	Logger *slog.Logger
	Now    func() time.Time
}

// Discover analyzes input and returns the resulting capture.
// Only rendering environment failures (ERENDER) and invalid options
// (EINVALID) are returned as errors; an empty request list is a valid result.
func (e *Engine) Discover(ctx context.Context, input string, opts Options) (*lighterceptor.Capture, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	switch {
	case opts.SettleTime == 0:
		opts.SettleTime = DefaultSettleTime
	case opts.SettleTime < 0:
		opts.SettleTime = 0
	}

	now := e.Now
	if now == nil {
		now = time.Now
	}
	logger := e.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	classifier := e.Classifier
	if classifier == nil {
		classifier = classify.Default()
	}

	r := &run{
		engine:     e,
		opts:       opts,
		logger:     logger,
		classifier: classifier,
		queue:      NewQueue(),
		log:        NewRequestLog(now),
	}
	r.cache = NewCache(r.load)

	capturedAt := now()

	kind := opts.Kind
	if kind == lighterceptor.KindUnknown {
		kind = classify.Input(input)
	}

	var title string
	switch kind {
	case lighterceptor.KindHTML:
		t, err := r.analyzeMarkup(ctx, input, opts.BaseURL, "")
		if err != nil {
			return nil, err
		}
		title = t
	case lighterceptor.KindCSS:
		r.analyzeCSS(input, opts.BaseURL, "")
	case lighterceptor.KindJS:
		r.analyzeJS(input, opts.BaseURL, "")
	}

	if err := r.drain(ctx); err != nil {
		return nil, err
	}

	return &lighterceptor.Capture{
		InputType:  kind,
		Title:      title,
		CapturedAt: capturedAt,
		Requests:   r.log.Records(),
		Resources:  r.resources,
	}, nil
}

// run holds the state owned by a single discovery run.
type run struct {
	engine     *Engine
	opts       Options
	logger     *slog.Logger
	classifier lighterceptor.Classifier

	queue *Queue
	cache *Cache
	log   *RequestLog

	// resources is only touched by the sequential analysis loop.
	resources []lighterceptor.ResourceInfo
}

// load is the cache's retrieval primitive: fetch with retry, each attempt
// admitted by the rate limiter.
func (r *run) load(ctx context.Context, rawURL string) (*lighterceptor.Resource, error) {
	e := r.engine
	if e.Fetcher == nil {
		return nil, lighterceptor.Errorf(lighterceptor.ENOTFOUND, "no fetcher configured")
	}
	fetch := e.Fetcher.Fetch
	if e.RateLimiter != nil {
		fetch = func(ctx context.Context, rawURL string) (*lighterceptor.Resource, error) {
			if err := e.RateLimiter.Wait(ctx, rawURL); err != nil {
				return nil, err
			}
			return e.Fetcher.Fetch(ctx, rawURL)
		}
	}
	return FetchWithRetryDelays(ctx, rawURL, fetch, r.logger, e.RetryDelays)
}

// enqueue admits a discovered URL into the recursion queue.
func (r *run) enqueue(rawURL string, kind lighterceptor.ResourceKind) {
	if !r.opts.Recursive || whatwg.IsSkippable(rawURL) {
		return
	}
	if r.opts.Scope != nil && !r.opts.Scope.Allow(rawURL) {
		r.logger.Debug("out of scope", "url", rawURL)
		return
	}
	if r.queue.Push(WorkItem{URL: rawURL, Kind: kind}) {
		r.logger.Debug("enqueue", "url", rawURL, "kind", kind)
	}
}

// follow enqueues a URL, inferring its kind from the URL when no hint is
// given. URLs of unknown kind are not expanded.
func (r *run) follow(rawURL string, kind lighterceptor.ResourceKind) {
	if kind == lighterceptor.KindUnknown {
		kind = classify.FromURL(rawURL)
	}
	if kind == lighterceptor.KindUnknown {
		return
	}
	r.enqueue(rawURL, kind)
}

// drain processes the queue until it is empty. Each wave is everything
// queued when the wave starts; items discovered during the wave form the
// next one, so analysis order is plain FIFO.
func (r *run) drain(ctx context.Context) error {
	for {
		wave := r.queue.PopAll()
		if len(wave) == 0 {
			return nil
		}
		r.prefetch(ctx, wave)
		for _, item := range wave {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := r.process(ctx, item); err != nil {
				return err
			}
		}
	}
}

// prefetch warms the cache for a wave using bounded parallelism.
func (r *run) prefetch(ctx context.Context, wave []WorkItem) {
	if r.opts.Concurrency < 2 || len(wave) < 2 {
		return
	}
	var g errgroup.Group
	g.SetLimit(r.opts.Concurrency)
	for _, item := range wave {
		g.Go(func() error {
			r.cache.Load(ctx, item.URL)
			return nil
		})
	}
	_ = g.Wait()
}

// process retrieves, classifies and analyzes one queued item.
func (r *run) process(ctx context.Context, item WorkItem) error {
	r.logger.Debug("dequeue", "url", item.URL, "kind", item.Kind)

	res, ok := r.cache.Load(ctx, item.URL)
	if !ok {
		r.logger.Debug("absent", "url", item.URL)
		return nil
	}

	kind := item.Kind
	inferred := r.classifier.Classify(res.URL, res.ContentType, res.Text)
	switch {
	case kind == lighterceptor.KindUnknown:
		kind = inferred
	case inferred != lighterceptor.KindUnknown && inferred != kind:
		r.logger.Debug("kind hint overrides inference", "url", item.URL, "hint", kind, "inferred", inferred)
	}
	if kind == lighterceptor.KindUnknown {
		r.logger.Debug("drop unknown kind", "url", item.URL)
		return nil
	}

	r.resources = append(r.resources, lighterceptor.ResourceInfo{
		URL:         item.URL,
		Kind:        kind,
		ContentType: res.ContentType,
		Bytes:       len(res.Text),
		Hash:        fmt.Sprintf("%016x", xxhash.Sum64String(res.Text)),
	})

	// References resolve against the final URL; the requested URL stays
	// the referrer.
	switch kind {
	case lighterceptor.KindHTML:
		_, err := r.analyzeMarkup(ctx, res.Text, res.URL, item.URL)
		return err
	case lighterceptor.KindCSS:
		r.analyzeCSS(res.Text, res.URL, item.URL)
	case lighterceptor.KindJS:
		r.analyzeJS(res.Text, res.URL, item.URL)
	}
	return nil
}

// analyzeCSS records stylesheet dependencies. Imports recurse as
// stylesheets; other url() targets recurse only when their URL names a
// known kind.
func (r *run) analyzeCSS(text, baseURL, referrer string) {
	deps := extract.CSS(text)
	for _, ref := range deps.Imports {
		if u, ok := whatwg.Resolve(baseURL, ref); ok {
			r.log.Append(u, lighterceptor.SourceCSS, referrer)
			r.enqueue(u, lighterceptor.KindCSS)
		}
	}
	for _, ref := range deps.URLs {
		if u, ok := whatwg.Resolve(baseURL, ref); ok {
			r.log.Append(u, lighterceptor.SourceCSS, referrer)
			r.follow(u, lighterceptor.KindUnknown)
		}
	}
}

// analyzeJS records script dependencies. Module imports and
// importScripts recurse as scripts; fetch and XHR targets recurse only
// when their URL names a known kind.
func (r *run) analyzeJS(text, baseURL, referrer string) {
	deps := extract.JS(text)
	for _, refs := range [][]string{deps.Imports, deps.ImportScripts} {
		for _, ref := range refs {
			if u, ok := whatwg.Resolve(baseURL, ref); ok {
				r.log.Append(u, lighterceptor.SourceResource, referrer)
				r.enqueue(u, lighterceptor.KindJS)
			}
		}
	}
	for _, ref := range deps.Fetches {
		if u, ok := whatwg.Resolve(baseURL, ref); ok {
			r.log.Append(u, lighterceptor.SourceFetch, referrer)
			r.follow(u, lighterceptor.KindUnknown)
		}
	}
	for _, ref := range deps.XHRs {
		if u, ok := whatwg.Resolve(baseURL, ref); ok {
			r.log.Append(u, lighterceptor.SourceXHR, referrer)
			r.follow(u, lighterceptor.KindUnknown)
		}
	}
}
