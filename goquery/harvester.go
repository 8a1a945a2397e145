// Package goquery provides the static rendering environment and the
// element-tree harvester, both built on goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/lighterceptor"
	"github.com/fwojciec/lighterceptor/extract"
	"github.com/fwojciec/lighterceptor/whatwg"
	"golang.org/x/net/html"
)

var _ lighterceptor.Harvester = (*Harvester)(nil)

// Harvester scans an element tree for every resource-bearing construct.
type Harvester struct{}

// NewHarvester creates a new Harvester.
func NewHarvester() *Harvester {
	return &Harvester{}
}

// Harvest parses html and returns its references in document order.
// The returned BaseURL honours the first <base href> in the document.
func (h *Harvester) Harvest(htmlText string, baseURL string) (*lighterceptor.Harvest, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return nil, lighterceptor.Errorf(lighterceptor.ERENDER, "failed to parse HTML: %v", err)
	}

	result := &lighterceptor.Harvest{
		Title:   strings.TrimSpace(doc.Find("title").First().Text()),
		BaseURL: effectiveBase(doc, baseURL),
	}

	c := &collector{}
	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		c.element(sel)
	})
	result.References = c.refs
	return result, nil
}

// effectiveBase resolves the first <base href> against the document URL.
func effectiveBase(doc *goquery.Document, baseURL string) string {
	href, ok := doc.Find("base[href]").First().Attr("href")
	if !ok {
		return baseURL
	}
	if u, ok := whatwg.Resolve(baseURL, href); ok {
		return u
	}
	return baseURL
}

// collector accumulates references from a document-order walk.
type collector struct {
	refs []lighterceptor.Reference
}

func (c *collector) add(raw string, source lighterceptor.Source, follow bool, kind lighterceptor.ResourceKind) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return
	}
	c.refs = append(c.refs, lighterceptor.Reference{
		URL:    raw,
		Source: source,
		Follow: follow,
		Kind:   kind,
	})
}

// attr records an attribute value when present.
func (c *collector) attr(sel *goquery.Selection, name string, source lighterceptor.Source, follow bool, kind lighterceptor.ResourceKind) {
	if v, ok := sel.Attr(name); ok {
		c.add(v, source, follow, kind)
	}
}

// srcset records every candidate URL of a srcset-style attribute.
func (c *collector) srcset(sel *goquery.Selection, name string, source lighterceptor.Source) {
	v, ok := sel.Attr(name)
	if !ok {
		return
	}
	for _, u := range SrcsetURLs(v) {
		c.add(u, source, false, lighterceptor.KindUnknown)
	}
}

// css records the dependencies of a stylesheet fragment.
func (c *collector) css(text string) {
	deps := extract.CSS(text)
	for _, u := range deps.Imports {
		c.add(u, lighterceptor.SourceCSS, true, lighterceptor.KindCSS)
	}
	for _, u := range deps.URLs {
		c.add(u, lighterceptor.SourceCSS, true, lighterceptor.KindUnknown)
	}
}

func (c *collector) element(sel *goquery.Selection) {
	switch goquery.NodeName(sel) {
	case "img":
		c.attr(sel, "src", lighterceptor.SourceImg, false, lighterceptor.KindUnknown)
		c.srcset(sel, "srcset", lighterceptor.SourceImg)
	case "input":
		if strings.EqualFold(sel.AttrOr("type", ""), "image") {
			c.attr(sel, "src", lighterceptor.SourceImg, false, lighterceptor.KindUnknown)
		}
	case "source":
		c.attr(sel, "src", lighterceptor.SourceResource, false, lighterceptor.KindUnknown)
		c.srcset(sel, "srcset", lighterceptor.SourceImg)
	case "script":
		c.attr(sel, "src", lighterceptor.SourceResource, true, lighterceptor.KindJS)
	case "iframe", "frame":
		c.attr(sel, "src", lighterceptor.SourceResource, true, lighterceptor.KindHTML)
	case "video":
		c.attr(sel, "src", lighterceptor.SourceResource, false, lighterceptor.KindUnknown)
		c.attr(sel, "poster", lighterceptor.SourceResource, false, lighterceptor.KindUnknown)
	case "audio", "track", "embed":
		c.attr(sel, "src", lighterceptor.SourceResource, false, lighterceptor.KindUnknown)
	case "object":
		c.attr(sel, "data", lighterceptor.SourceResource, false, lighterceptor.KindUnknown)
	case "link":
		c.link(sel)
	case "style":
		c.css(sel.Text())
	}

	if style, ok := sel.Attr("style"); ok {
		c.css(style)
	}
}

// link records a <link href>, choosing how recursion treats it from rel.
func (c *collector) link(sel *goquery.Selection) {
	rel := strings.Fields(strings.ToLower(sel.AttrOr("rel", "")))
	switch {
	case hasRel(rel, "stylesheet"):
		c.attr(sel, "href", lighterceptor.SourceResource, true, lighterceptor.KindCSS)
	case hasRel(rel, "modulepreload"):
		c.attr(sel, "href", lighterceptor.SourceResource, true, lighterceptor.KindJS)
	case hasRel(rel, "preload"), hasRel(rel, "prefetch"):
		c.attr(sel, "href", lighterceptor.SourceResource, true, lighterceptor.KindUnknown)
	default:
		c.attr(sel, "href", lighterceptor.SourceResource, false, lighterceptor.KindUnknown)
	}
	if hasRel(rel, "preload") {
		c.srcset(sel, "imagesrcset", lighterceptor.SourceImg)
	}
}

func hasRel(rel []string, want string) bool {
	for _, r := range rel {
		if r == want {
			return true
		}
	}
	return false
}

// SrcsetURLs returns the URL of each candidate in a srcset value. The list
// is split on commas, then each candidate on whitespace, and the first
// token is the URL.
func SrcsetURLs(srcset string) []string {
	var urls []string
	for _, candidate := range strings.Split(srcset, ",") {
		fields := strings.Fields(candidate)
		if len(fields) == 0 {
			continue
		}
		urls = append(urls, fields[0])
	}
	return urls
}

// elementOf describes a node for interception callbacks.
func elementOf(n *html.Node) *lighterceptor.Element {
	el := &lighterceptor.Element{
		Tag:   n.Data,
		Attrs: make(map[string]string, len(n.Attr)),
	}
	for _, a := range n.Attr {
		el.Attrs[a.Key] = a.Val
	}
	return el
}
