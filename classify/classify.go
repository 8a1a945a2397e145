// Package classify infers whether a resource is markup, stylesheet or
// script. Classification is an ordered chain of strategies, each returning
// a definite kind or no opinion; the first definite answer wins.
package classify

import (
	"net/url"
	"path"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/lighterceptor"
)

// Compile-time interface verification.
var (
	_ lighterceptor.Classifier = Chain(nil)
	_ lighterceptor.Classifier = ContentType{}
	_ lighterceptor.Classifier = Extension{}
	_ lighterceptor.Classifier = Sniff{}
)

// Chain composes classifiers; the first one with an opinion wins.
type Chain []lighterceptor.Classifier

// Classify returns the first definite kind produced by the chain.
func (c Chain) Classify(rawURL, contentType, body string) lighterceptor.ResourceKind {
	for _, s := range c {
		if kind := s.Classify(rawURL, contentType, body); kind != lighterceptor.KindUnknown {
			return kind
		}
	}
	return lighterceptor.KindUnknown
}

// Default returns the standard chain: content type, then file extension,
// then content sniffing.
func Default() Chain {
	return Chain{ContentType{}, Extension{}, Sniff{}}
}

// ContentType classifies by Content-Type header.
type ContentType struct{}

// Classify implements lighterceptor.Classifier.
func (ContentType) Classify(_, contentType, _ string) lighterceptor.ResourceKind {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "text/html"):
		return lighterceptor.KindHTML
	case strings.Contains(ct, "text/css"):
		return lighterceptor.KindCSS
	case strings.Contains(ct, "javascript"):
		return lighterceptor.KindJS
	}
	return lighterceptor.KindUnknown
}

// Extension classifies by the file extension of the URL path.
type Extension struct{}

// Classify implements lighterceptor.Classifier.
func (Extension) Classify(rawURL, _, _ string) lighterceptor.ResourceKind {
	return FromURL(rawURL)
}

// FromURL infers the kind from the URL path extension, ignoring query and fragment.
func FromURL(rawURL string) lighterceptor.ResourceKind {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	} else if idx := strings.IndexAny(p, "?#"); idx != -1 {
		p = p[:idx]
	}

	switch strings.ToLower(path.Ext(p)) {
	case ".html", ".htm":
		return lighterceptor.KindHTML
	case ".css":
		return lighterceptor.KindCSS
	case ".js", ".mjs", ".cjs":
		return lighterceptor.KindJS
	}
	return lighterceptor.KindUnknown
}

// jsLikelihoodRegex matches keywords and calls that are typical of scripts.
var jsLikelihoodRegex = regexp.MustCompile(`\b(?:import|export|const|let|var|function)\b|\b(?:fetch|XMLHttpRequest|importScripts)\s*\(`)

// Sniff classifies by the shape of the body text.
type Sniff struct{}

// Classify implements lighterceptor.Classifier.
// Binary bodies get no opinion.
func (Sniff) Classify(_, _, body string) lighterceptor.ResourceKind {
	if !isText(body) {
		return lighterceptor.KindUnknown
	}
	text := trimLeading(body)
	if text == "" {
		return lighterceptor.KindUnknown
	}

	switch {
	case strings.HasPrefix(strings.ToLower(text), "<!doctype"), text[0] == '<':
		return lighterceptor.KindHTML
	case text[0] == '@', strings.Contains(text, "url("):
		return lighterceptor.KindCSS
	case jsLikelihoodRegex.MatchString(text):
		return lighterceptor.KindJS
	}
	return lighterceptor.KindUnknown
}

// Input classifies top-level input for which no content type or URL is
// known. Script is the fallback kind.
func Input(text string) lighterceptor.ResourceKind {
	text = trimLeading(text)
	switch {
	case strings.HasPrefix(text, "<"):
		return lighterceptor.KindHTML
	case strings.HasPrefix(text, "@"), strings.Contains(text, "url("):
		return lighterceptor.KindCSS
	}
	return lighterceptor.KindJS
}

func trimLeading(s string) string {
	return strings.TrimLeft(strings.TrimPrefix(s, "\ufeff"), " \t\r\n\f")
}

func isText(body string) bool {
	return utf8.ValidString(body) && !strings.ContainsRune(body, 0)
}
