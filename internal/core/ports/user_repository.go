package ports

import (
	"context"

	"github.com/constellation/social-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrUserExists when the email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns a page of users, newest first, and the total count.
	List(ctx context.Context, page, limit int) ([]*domain.User, int64, error)
	// Apply atomically applies m to the user identified by id, provided its
	// role is still expectedRole. Returns domain.ErrStaleRecord when the guard
	// does not match and the updated user otherwise.
	Apply(ctx context.Context, id string, expectedRole domain.Role, m domain.UserMutation) (*domain.User, error)
}
