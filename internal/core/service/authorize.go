package service

import (
	"github.com/constellation/social-api/internal/core/domain"
	"github.com/constellation/social-api/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// authorize runs the access decision, reports it to m and returns its denial
// as a domain error.
func authorize(m ports.Metrics, req domain.AccessRequest) error {
	d := domain.Decide(req)
	m.AccessDecided(req.Action, d)
	return d.Err()
}

// nopMetrics is used when a service is built without metrics.
type nopMetrics struct{}

func (nopMetrics) AccessDecided(domain.Action, domain.Decision) {}
func (nopMetrics) LoginAttempted(string) {}
func (nopMetrics) TokensRevoked(int) {}
func (nopMetrics) ModerationApplied(domain.ModerationKind) {}
func (nopMetrics) ModerationConflict() {}

func orNop(m ports.Metrics) ports.Metrics {
	if m == nil {
		return nopMetrics{}
	}
	return m
}

// normalizePage applies defaults and caps the page size.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
