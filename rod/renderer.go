// Package rod provides a script-executing rendering environment backed by
// headless Chrome.
package rod

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/lighterceptor"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Renderer implements lighterceptor.Renderer at compile time.
var _ lighterceptor.Renderer = (*Renderer)(nil)

// Renderer loads markup into a browser page and reports every request the
// page issues. No request reaches the network: each one is fulfilled
// immediately with the interception callback's content, or an empty body.
// Renderer is safe for concurrent use by multiple goroutines.
type Renderer struct {
	manager *BrowserManager
}

// NewRenderer creates a Renderer with its own browser.
// Close must be called when the Renderer is no longer needed.
func NewRenderer(opts ...ManagerOption) (*Renderer, error) {
	manager, err := NewBrowserManager(opts...)
	if err != nil {
		return nil, lighterceptor.Errorf(lighterceptor.ERENDER, "%v", err)
	}
	return &Renderer{manager: manager}, nil
}

// Render loads the markup, lets scripts run for the settle interval, and
// returns the resulting DOM. When BaseURL is an http(s) URL the markup is
// served as that URL so relative references resolve against it.
func (r *Renderer) Render(ctx context.Context, req *lighterceptor.RenderRequest) (*lighterceptor.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := r.manager.Page()
	if err != nil {
		return nil, lighterceptor.Errorf(lighterceptor.ERENDER, "open page: %v", err)
	}
	defer page.Close()
	page = page.Context(ctx)

	docURL := ""
	if isHTTP(req.BaseURL) {
		docURL = req.BaseURL
	}

	router := page.HijackRequests()
	var served atomic.Bool
	router.MustAdd("*", func(h *rod.Hijack) {
		u := h.Request.URL().String()
		typ := h.Request.Type()

		if docURL != "" && typ == proto.NetworkResourceTypeDocument && u == docURL && served.CompareAndSwap(false, true) {
			h.Response.SetHeader("Content-Type", "text/html; charset=utf-8")
			h.Response.SetBody(req.HTML)
			return
		}

		var body []byte
		if req.Intercept != nil {
			body = req.Intercept(ctx, &lighterceptor.InterceptedRequest{
				URL:      u,
				Referrer: docURL,
				Source:   ResourceSource(typ),
				Kind:     ResourceKindOf(typ),
			})
		}
		h.Response.SetBody(body)
	})
	go router.Run()
	defer func() { _ = router.Stop() }()

	if docURL != "" {
		err = page.Navigate(docURL)
	} else {
		err = page.Navigate("about:blank")
		if err == nil {
			err = page.SetDocumentContent(req.HTML)
		}
	}
	if err != nil {
		return nil, lighterceptor.Errorf(lighterceptor.ERENDER, "load markup: %v", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, lighterceptor.Errorf(lighterceptor.ERENDER, "wait load: %v", err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(req.SettleTime):
	}

	html, err := page.HTML()
	if err != nil {
		return nil, lighterceptor.Errorf(lighterceptor.ERENDER, "serialize document: %v", err)
	}
	return &lighterceptor.Document{HTML: html}, nil
}

// Close releases browser resources.
func (r *Renderer) Close() error {
	return r.manager.Close()
}

// ResourceSource maps a browser resource type to the discovery mechanism.
func ResourceSource(typ proto.NetworkResourceType) lighterceptor.Source {
	switch typ {
	case proto.NetworkResourceTypeImage:
		return lighterceptor.SourceImg
	case proto.NetworkResourceTypeFetch:
		return lighterceptor.SourceFetch
	case proto.NetworkResourceTypeXHR:
		return lighterceptor.SourceXHR
	}
	return lighterceptor.SourceResource
}

// ResourceKindOf maps a browser resource type to the expected content kind.
func ResourceKindOf(typ proto.NetworkResourceType) lighterceptor.ResourceKind {
	switch typ {
	case proto.NetworkResourceTypeStylesheet:
		return lighterceptor.KindCSS
	case proto.NetworkResourceTypeScript:
		return lighterceptor.KindJS
	case proto.NetworkResourceTypeDocument:
		return lighterceptor.KindHTML
	}
	return lighterceptor.KindUnknown
}

func isHTTP(u string) bool {
	u = strings.ToLower(u)
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}
