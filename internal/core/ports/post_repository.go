package ports

import (
	"context"

	"github.com/constellation/social-api/internal/core/domain"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	// List returns a page of posts, newest first, and the total count.
	List(ctx context.Context, page, limit int) ([]*domain.Post, int64, error)
	// Like records userID in the post's like set. Liking twice is a no-op.
	Like(ctx context.Context, postID, userID string) error
	AddComment(ctx context.Context, postID string, comment *domain.Comment) (*domain.Comment, error)
}
