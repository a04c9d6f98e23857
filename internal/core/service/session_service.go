package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/constellation/social-api/internal/core/domain"
	"github.com/constellation/social-api/internal/core/ports"
)

// SessionService implements login, logout and token authentication.
type SessionService struct {
	users   ports.UserRepository
	hasher  ports.PasswordHasher
	tokens  ports.TokenService
	metrics ports.Metrics
	log     zerolog.Logger
}

func NewSessionService(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService, m ports.Metrics, log zerolog.Logger) *SessionService {
	return &SessionService{users: users, hasher: hasher, tokens: tokens, metrics: orNop(m), log: log}
}

// Login verifies credentials and issues a new token. Unknown emails and wrong
// passwords fail identically. Banned accounts never receive a token.
func (s *SessionService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		s.metrics.LoginAttempted(ports.LoginInvalidCredentials)
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.metrics.LoginAttempted(ports.LoginInvalidCredentials)
			return "", nil, domain.ErrInvalidCredentials
		}
		s.metrics.LoginAttempted(ports.LoginFailed)
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		s.metrics.LoginAttempted(ports.LoginInvalidCredentials)
		s.log.Warn().Str("user_id", user.ID).Msg("login rejected: bad password")
		return "", nil, domain.ErrInvalidCredentials
	}

	if user.IsBanned {
		s.metrics.LoginAttempted(ports.LoginBanned)
		s.log.Warn().Str("user_id", user.ID).Msg("login rejected: account banned")
		return "", nil, domain.ErrAccountBanned
	}

	token, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		s.metrics.LoginAttempted(ports.LoginFailed)
		return "", nil, fmt.Errorf("login: issue token: %w", err)
	}

	s.metrics.LoginAttempted(ports.LoginSucceeded)
	s.log.Info().Str("user_id", user.ID).Msg("login succeeded")
	return token, user, nil
}

// Logout revokes every token of the actor at once.
func (s *SessionService) Logout(ctx context.Context, actor *domain.User) error {
	if err := authorize(s.metrics, domain.AccessRequest{Actor: actor, Action: domain.ActionLogout}); err != nil {
		// A banned actor still gets its sessions cleared.
		if !errors.Is(err, domain.ErrAccountBanned) {
			return err
		}
	}

	n, err := s.tokens.RevokeAll(ctx, actor.ID)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if n == 0 {
		return domain.ErrNoActiveSession
	}

	s.metrics.TokensRevoked(n)
	s.log.Info().Str("user_id", actor.ID).Int("tokens", n).Msg("logged out")
	return nil
}

// Authenticate resolves token to its user. Tokens of banned accounts are
// revoked on sight and rejected.
func (s *SessionService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	userID, err := s.tokens.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if user.IsBanned {
		if n, err := s.tokens.RevokeAll(ctx, user.ID); err != nil {
			s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to revoke tokens of banned user")
		} else {
			s.metrics.TokensRevoked(n)
		}
		return nil, domain.ErrAccountBanned
	}

	return user, nil
}
