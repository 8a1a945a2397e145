package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/lighterceptor"
	"github.com/fwojciec/lighterceptor/extract"
	"github.com/fwojciec/lighterceptor/whatwg"
)

var _ lighterceptor.Renderer = (*Renderer)(nil)

// Renderer is a static rendering environment. It builds the element tree
// without executing scripts. Inline scripts are scanned instead and every
// import, importScripts, fetch and XHR call they contain is reported
// through the interception callback, as if the script had issued it.
//
// There is no asynchronous work, so the settle interval is not waited.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render parses the markup and reports script-initiated requests.
func (r *Renderer) Render(ctx context.Context, req *lighterceptor.RenderRequest) (*lighterceptor.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(req.HTML))
	if err != nil {
		return nil, lighterceptor.Errorf(lighterceptor.ERENDER, "failed to parse HTML: %v", err)
	}

	if req.Intercept != nil {
		base := effectiveBase(doc, req.BaseURL)
		doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
			if ctx.Err() != nil {
				return
			}
			if _, external := sel.Attr("src"); external || !isJavaScript(sel.AttrOr("type", "")) {
				return
			}
			emulate(ctx, req, base, sel)
		})
	}

	out, err := goquery.OuterHtml(doc.Selection)
	if err != nil {
		return nil, lighterceptor.Errorf(lighterceptor.ERENDER, "failed to serialize document: %v", err)
	}
	return &lighterceptor.Document{HTML: out}, nil
}

// Close is a no-op.
func (r *Renderer) Close() error {
	return nil
}

// emulate reports the requests an inline script would issue.
func emulate(ctx context.Context, req *lighterceptor.RenderRequest, base string, sel *goquery.Selection) {
	deps := extract.JS(sel.Text())
	el := elementOf(sel.Nodes[0])

	report := func(refs []string, source lighterceptor.Source, kind lighterceptor.ResourceKind) {
		for _, ref := range refs {
			u, ok := whatwg.Resolve(base, ref)
			if !ok {
				continue
			}
			req.Intercept(ctx, &lighterceptor.InterceptedRequest{
				URL:      u,
				Referrer: req.BaseURL,
				Source:   source,
				Kind:     kind,
				Element:  el,
			})
		}
	}
	report(deps.Imports, lighterceptor.SourceResource, lighterceptor.KindJS)
	report(deps.ImportScripts, lighterceptor.SourceResource, lighterceptor.KindJS)
	report(deps.Fetches, lighterceptor.SourceFetch, lighterceptor.KindUnknown)
	report(deps.XHRs, lighterceptor.SourceXHR, lighterceptor.KindUnknown)
}

// isJavaScript reports whether a script type attribute denotes executable
// script. Data blocks such as application/json are not.
func isJavaScript(typ string) bool {
	typ = strings.ToLower(strings.TrimSpace(typ))
	if i := strings.IndexByte(typ, ';'); i >= 0 {
		typ = strings.TrimSpace(typ[:i])
	}
	switch typ {
	case "", "module", "text/javascript", "application/javascript",
		"text/ecmascript", "application/ecmascript", "text/jsx":
		return true
	}
	return false
}
