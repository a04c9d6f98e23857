package ports

import (
	"context"

	"github.com/constellation/social-api/internal/core/domain"
)

// SessionService authenticates credentials and manages bearer tokens.
type SessionService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context, actor *domain.User) error
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}
