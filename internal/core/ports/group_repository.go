package ports

import (
	"context"

	"github.com/constellation/social-api/internal/core/domain"
)

// GroupRepository defines persistence operations for discussion groups.
type GroupRepository interface {
	// Create inserts a group. Returns domain.ErrGroupExists when the name is taken.
	Create(ctx context.Context, group *domain.Group) (*domain.Group, error)
	FindByID(ctx context.Context, id string) (*domain.Group, error)
	// AddMember adds userID to the group's member set. Adding an existing
	// member is a no-op.
	AddMember(ctx context.Context, groupID, userID string) (*domain.Group, error)
}
