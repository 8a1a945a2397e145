package mock

import "github.com/fwojciec/lighterceptor"

var _ lighterceptor.Harvester = (*Harvester)(nil)

// Harvester is a mock implementation of lighterceptor.Harvester.
type Harvester struct {
	HarvestFn func(html string, baseURL string) (*lighterceptor.Harvest, error)
}

func (h *Harvester) Harvest(html string, baseURL string) (*lighterceptor.Harvest, error) {
	return h.HarvestFn(html, baseURL)
}

var _ lighterceptor.Scope = (*Scope)(nil)

// Scope is a mock implementation of lighterceptor.Scope.
type Scope struct {
	AllowFn func(url string) bool
}

func (s *Scope) Allow(url string) bool {
	return s.AllowFn(url)
}
