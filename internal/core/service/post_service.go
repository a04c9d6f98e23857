package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/constellation/social-api/internal/core/domain"
	"github.com/constellation/social-api/internal/core/ports"
)

type PostService struct {
	posts   ports.PostRepository
	metrics ports.Metrics
	log     zerolog.Logger
}

func NewPostService(posts ports.PostRepository, m ports.Metrics, log zerolog.Logger) *PostService {
	return &PostService{posts: posts, metrics: orNop(m), log: log}
}

// CreatePost publishes a post authored by actor. Restricted to privileged roles.
func (s *PostService) CreatePost(ctx context.Context, actor *domain.User, content string) (*domain.Post, error) {
	if err := authorize(s.metrics, domain.AccessRequest{Actor: actor, Action: domain.ActionCreatePost}); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrEmptyContent
	}

	post, err := s.posts.Create(ctx, &domain.Post{
		AuthorID:  actor.ID,
		Content:   content,
		Likes:     []string{},
		Comments:  []domain.Comment{},
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.log.Info().Str("post_id", post.ID).Str("author_id", actor.ID).Msg("post created")
	return post, nil
}

// ListPosts returns a page of posts, newest first.
func (s *PostService) ListPosts(ctx context.Context, actor *domain.User, page ports.Page) (*ports.PostList, error) {
	if err := authorize(s.metrics, domain.AccessRequest{Actor: actor, Action: domain.ActionReadPosts}); err != nil {
		return nil, err
	}

	p, limit := normalizePage(page.Page, page.Limit)
	posts, total, err := s.posts.List(ctx, p, limit)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return &ports.PostList{
		Items:      posts,
		Total:      total,
		Page:       p,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// LikePost records the actor's like. Liking the same post twice is harmless.
func (s *PostService) LikePost(ctx context.Context, actor *domain.User, postID string) error {
	if err := authorize(s.metrics, domain.AccessRequest{Actor: actor, Action: domain.ActionLikePost}); err != nil {
		return err
	}
	if err := s.posts.Like(ctx, postID, actor.ID); err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return err
		}
		return fmt.Errorf("like post: %w", err)
	}
	return nil
}

func (s *PostService) CommentPost(ctx context.Context, actor *domain.User, postID, content string) (*domain.Comment, error) {
	if err := authorize(s.metrics, domain.AccessRequest{Actor: actor, Action: domain.ActionCommentPost}); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrEmptyContent
	}

	comment, err := s.posts.AddComment(ctx, postID, &domain.Comment{
		ID:        uuid.NewString(),
		AuthorID:  actor.ID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("comment post: %w", err)
	}
	return comment, nil
}
