package ports

import "github.com/constellation/social-api/internal/core/domain"

// Login outcomes reported to Metrics.LoginAttempted.
const (
	LoginSucceeded          = "success"
	LoginInvalidCredentials = "invalid_credentials"
	LoginBanned             = "banned"
	LoginFailed             = "error"
)

// Metrics receives the counters the services emit. Implementations must be
// safe for concurrent use.
type Metrics interface {
	AccessDecided(action domain.Action, d domain.Decision)
	LoginAttempted(result string)
	TokensRevoked(n int)
	ModerationApplied(kind domain.ModerationKind)
	ModerationConflict()
}
