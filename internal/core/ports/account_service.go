package ports

import (
	"context"

	"github.com/constellation/social-api/internal/core/domain"
)

// RegisterInput carries the fields needed to open an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Page describes a requested page; Page is 1-based.
type Page struct {
	Page  int
	Limit int
}

// UserList is one page of users.
type UserList struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// AccountService manages accounts and their moderation state. Every method
// except Register takes the authenticated actor explicitly.
type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	ListUsers(ctx context.Context, actor *domain.User, page Page) (*UserList, error)
	AssignRole(ctx context.Context, actor *domain.User, targetID string, role string) (*domain.User, error)
	BanUser(ctx context.Context, actor *domain.User, targetID string) (*domain.User, error)
	UnbanUser(ctx context.Context, actor *domain.User, targetID string) (*domain.User, error)
	RewardUser(ctx context.Context, actor *domain.User, targetID, description string) (*domain.User, error)
	// ModerationLog returns the target's moderation events, oldest first.
	ModerationLog(ctx context.Context, actor *domain.User, targetID string) ([]domain.ModerationEvent, error)
}
