package discover

import (
	"context"
	"strings"

	"github.com/fwojciec/lighterceptor"
	"github.com/fwojciec/lighterceptor/classify"
	"github.com/fwojciec/lighterceptor/whatwg"
)

// analyzeMarkup renders markup, records every request the environment
// reports, then harvests the resulting tree. It returns the document
// title. Failures to build the tree are ERENDER and end the run.
func (r *run) analyzeMarkup(ctx context.Context, html, baseURL, referrer string) (string, error) {
	e := r.engine
	if e.Renderer == nil || e.Harvester == nil {
		return "", lighterceptor.Errorf(lighterceptor.EINVALID, "markup analysis requires a renderer and a harvester")
	}

	doc, err := e.Renderer.Render(ctx, &lighterceptor.RenderRequest{
		HTML:       html,
		BaseURL:    baseURL,
		SettleTime: r.opts.SettleTime,
		Intercept:  r.intercept(referrer),
	})
	if err != nil {
		return "", renderError(err)
	}

	h, err := e.Harvester.Harvest(doc.HTML, baseURL)
	if err != nil {
		return "", renderError(err)
	}

	for _, ref := range h.References {
		u, ok := whatwg.Resolve(h.BaseURL, ref.URL)
		if !ok {
			continue
		}
		r.log.Append(u, ref.Source, referrer)
		if ref.Follow {
			r.follow(u, ref.Kind)
		}
	}
	return h.Title, nil
}

// intercept returns the callback handed to the rendering environment.
// Each reported request is recorded. With recursion enabled, the request is
// also enqueued, with a kind hint when one can be derived, and answered
// from the run's cache. Content of unknown kind is classified when dequeued.
func (r *run) intercept(referrer string) lighterceptor.InterceptFunc {
	return func(ctx context.Context, req *lighterceptor.InterceptedRequest) []byte {
		u, ok := whatwg.Resolve(req.Referrer, req.URL)
		if !ok {
			return nil
		}
		source := req.Source
		if source == "" {
			source = lighterceptor.SourceResource
		}
		r.log.Append(u, source, referrer)

		if !r.opts.Recursive || whatwg.IsSkippable(u) {
			return nil
		}
		r.enqueue(u, interceptKind(req, u))
		if !r.queue.Seen(u) {
			return nil
		}

		res, ok := r.cache.Load(ctx, u)
		if !ok {
			return nil
		}
		return []byte(res.Text)
	}
}

// interceptKind derives the kind hint for an intercepted request: the
// initiating element first, then the environment's expectation, then the
// URL itself. It returns KindUnknown when none of them tell.
func interceptKind(req *lighterceptor.InterceptedRequest, u string) lighterceptor.ResourceKind {
	if req.Element != nil && req.Source == lighterceptor.SourceResource {
		switch strings.ToLower(req.Element.Tag) {
		case "link":
			if hasToken(req.Element.Attr("rel"), "stylesheet") {
				return lighterceptor.KindCSS
			}
		case "iframe", "frame":
			return lighterceptor.KindHTML
		case "script":
			return lighterceptor.KindJS
		}
	}
	if req.Kind != lighterceptor.KindUnknown {
		return req.Kind
	}
	return classify.FromURL(u)
}

// hasToken reports whether a space-separated attribute contains token.
func hasToken(list, token string) bool {
	for _, f := range strings.Fields(list) {
		if strings.EqualFold(f, token) {
			return true
		}
	}
	return false
}

// renderError marks err as an environment failure unless it already is.
func renderError(err error) error {
	if lighterceptor.ErrorCode(err) == lighterceptor.ERENDER {
		return err
	}
	return lighterceptor.Errorf(lighterceptor.ERENDER, "rendering environment: %v", err)
}
