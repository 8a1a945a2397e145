// Package glob implements recursion scope filters using glob patterns.
package glob

import (
	"net/url"
	"strings"

	"github.com/fwojciec/lighterceptor"
	"github.com/gobwas/glob"
)

var _ lighterceptor.Scope = (*Scope)(nil)

// Scope allows URLs matching any include pattern and no exclude pattern.
//
// A pattern containing "://" is matched against the whole URL, with "*"
// stopping at "/". Any other pattern is matched against the host, with "*"
// stopping at ".", so "*.example.com" covers one level of subdomains and
// "**.example.com" covers all of them. Patterns prefixed with "!" exclude.
// With no include patterns every URL not excluded is allowed.
type Scope struct {
	include []matcher
	exclude []matcher
}

type matcher struct {
	g     glob.Glob
	whole  bool
}

// NewScope compiles patterns into a Scope.
// Returns EINVALID if a pattern does not compile.
func NewScope(patterns ...string) (*Scope, error) {
	s := &Scope{}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		exclude := strings.HasPrefix(p, "!")
		p = strings.TrimPrefix(p, "!")

		m, err := compile(p)
		if err != nil {
			return nil, lighterceptor.Errorf(lighterceptor.EINVALID, "invalid scope pattern %q: %v", p, err)
		}
		if exclude {
			s.exclude = append(s.exclude, m)
		} else {
			s.include = append(s.include, m)
		}
	}
	return s, nil
}

func compile(p string) (matcher, error) {
	if strings.Contains(p, "://") {
		g, err := glob.Compile(p, '/')
		return matcher{g: g, whole: true}, err
	}
	g, err := glob.Compile(strings.ToLower(p), '.')
	return matcher{g: g}, err
}

// Allow reports whether recursion may follow rawURL.
func (s *Scope) Allow(rawURL string) bool {
	host := ""
	if u, err := url.Parse(rawURL); err == nil {
		host = strings.ToLower(u.Hostname())
	}

	for _, m := range s.exclude {
		if m.match(rawURL, host) {
			return false
		}
	}
	if len(s.include) == 0 {
		return true
	}
	for _, m := range s.include {
		if m.match(rawURL, host) {
			return true
		}
	}
	return false
}

func (m matcher) match(rawURL, host string) bool {
	if m.whole {
		return m.g.Match(rawURL)
	}
	return host != "" && m.g.Match(host)
}
