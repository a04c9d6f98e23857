// Package metrics implements ports.Metrics with Prometheus collectors. It is
// the single source of truth for the service metric names, labels and help
// strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/constellation/social-api/internal/core/domain"
)

const namespace = "social"

// Prometheus records service metrics on the registerer given to New.
type Prometheus struct {
	accessDecisions     *prometheus.CounterVec
	logins              *prometheus.CounterVec
	tokensRevoked       prometheus.Counter
	moderationActions   *prometheus.CounterVec
	moderationConflicts prometheus.Counter
}

// New registers the collectors on reg. A nil reg means the default registry.
func New(reg prometheus.Registerer) *Prometheus {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Prometheus{
		// ── Authorization ─────────────────────────────────────────────────
		accessDecisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "access_decisions_total",
				Help:      "Total number of access decisions, by action and outcome.",
			},
			[]string{"action", "result", "reason"},
		),

		// ── Sessions ──────────────────────────────────────────────────────
		logins: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "logins_total",
				Help:      "Total number of login attempts, by result.",
			},
			[]string{"result"},
		),
		tokensRevoked: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tokens_revoked_total",
				Help:      "Total number of session tokens revoked.",
			},
		),

		// ── Moderation ────────────────────────────────────────────────────
		moderationActions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "moderation_actions_total",
				Help:      "Total number of moderation actions applied, by kind.",
			},
			[]string{"kind"},
		),
		moderationConflicts: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "moderation_conflicts_total",
				Help:      "Total number of guarded user updates retried after a concurrent change.",
			},
		),
	}
}

// AccessDecided counts one decision. The reason label is empty when allowed.
func (p *Prometheus) AccessDecided(action domain.Action, d domain.Decision) {
	result := "allow"
	if !d.Allowed {
		result = "deny"
	}
	p.accessDecisions.WithLabelValues(string(action), result, string(d.Reason)).Inc()
}

// LoginAttempted counts a login by outcome.
func (p *Prometheus) LoginAttempted(result string) {
	p.logins.WithLabelValues(result).Inc()
}

// TokensRevoked adds n revoked tokens.
func (p *Prometheus) TokensRevoked(n int) {
	if n > 0 {
		p.tokensRevoked.Add(float64(n))
	}
}

func (p *Prometheus) ModerationApplied(kind domain.ModerationKind) {
	p.moderationActions.WithLabelValues(string(kind)).Inc()
}

func (p *Prometheus) ModerationConflict() {
	p.moderationConflicts.Inc()
}
