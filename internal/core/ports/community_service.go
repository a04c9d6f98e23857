package ports

import (
	"context"

	"github.com/constellation/social-api/internal/core/domain"
)

// PostList is one page of posts.
type PostList struct {
	Items      []*domain.Post
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// PostService publishes posts and records reactions to them.
type PostService interface {
	CreatePost(ctx context.Context, actor *domain.User, content string) (*domain.Post, error)
	ListPosts(ctx context.Context, actor *domain.User, page Page) (*PostList, error)
	LikePost(ctx context.Context, actor *domain.User, postID string) error
	CommentPost(ctx context.Context, actor *domain.User, postID, content string) (*domain.Comment, error)
}

// GroupService manages discussion groups.
type GroupService interface {
	CreateGroup(ctx context.Context, actor *domain.User, name string) (*domain.Group, error)
	AddMember(ctx context.Context, actor *domain.User, groupID, userID string) (*domain.Group, error)
}
