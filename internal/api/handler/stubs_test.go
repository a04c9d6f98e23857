package handler

import (
	"context"

	"github.com/constellation/social-api/internal/core/domain"
	"github.com/constellation/social-api/internal/core/ports"
)

type stubAccounts struct {
	registerFn   func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	listFn       func(ctx context.Context, actor *domain.User, page ports.Page) (*ports.UserList, error)
	assignRoleFn func(ctx context.Context, actor *domain.User, targetID, role string) (*domain.User, error)
	banFn        func(ctx context.Context, actor *domain.User, targetID string) (*domain.User, error)
	unbanFn      func(ctx context.Context, actor *domain.User, targetID string) (*domain.User, error)
	rewardFn     func(ctx context.Context, actor *domain.User, targetID, description string) (*domain.User, error)
	logFn        func(ctx context.Context, actor *domain.User, targetID string) ([]domain.ModerationEvent, error)
}

func (s *stubAccounts) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAccounts) ListUsers(ctx context.Context, actor *domain.User, page ports.Page) (*ports.UserList, error) {
	return s.listFn(ctx, actor, page)
}

func (s *stubAccounts) AssignRole(ctx context.Context, actor *domain.User, targetID, role string) (*domain.User, error) {
	return s.assignRoleFn(ctx, actor, targetID, role)
}

func (s *stubAccounts) BanUser(ctx context.Context, actor *domain.User, targetID string) (*domain.User, error) {
	return s.banFn(ctx, actor, targetID)
}

func (s *stubAccounts) UnbanUser(ctx context.Context, actor *domain.User, targetID string) (*domain.User, error) {
	return s.unbanFn(ctx, actor, targetID)
}

func (s *stubAccounts) RewardUser(ctx context.Context, actor *domain.User, targetID, description string) (*domain.User, error) {
	return s.rewardFn(ctx, actor, targetID, description)
}

func (s *stubAccounts) ModerationLog(ctx context.Context, actor *domain.User, targetID string) ([]domain.ModerationEvent, error) {
	return s.logFn(ctx, actor, targetID)
}

type stubSessions struct {
	loginFn  func(ctx context.Context, email, password string) (string, *domain.User, error)
	logoutFn func(ctx context.Context, actor *domain.User) error
}

func (s *stubSessions) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubSessions) Logout(ctx context.Context, actor *domain.User) error {
	return s.logoutFn(ctx, actor)
}

func (s *stubSessions) Authenticate(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUnauthenticated
}

type stubPosts struct {
	createFn  func(ctx context.Context, actor *domain.User, content string) (*domain.Post, error)
	listFn    func(ctx context.Context, actor *domain.User, page ports.Page) (*ports.PostList, error)
	likeFn    func(ctx context.Context, actor *domain.User, postID string) error
	commentFn func(ctx context.Context, actor *domain.User, postID, content string) (*domain.Comment, error)
}

func (s *stubPosts) CreatePost(ctx context.Context, actor *domain.User, content string) (*domain.Post, error) {
	return s.createFn(ctx, actor, content)
}

func (s *stubPosts) ListPosts(ctx context.Context, actor *domain.User, page ports.Page) (*ports.PostList, error) {
	return s.listFn(ctx, actor, page)
}

func (s *stubPosts) LikePost(ctx context.Context, actor *domain.User, postID string) error {
	return s.likeFn(ctx, actor, postID)
}

func (s *stubPosts) CommentPost(ctx context.Context, actor *domain.User, postID, content string) (*domain.Comment, error) {
	return s.commentFn(ctx, actor, postID, content)
}

type stubGroups struct {
	createFn    func(ctx context.Context, actor *domain.User, name string) (*domain.Group, error)
	addMemberFn func(ctx context.Context, actor *domain.User, groupID, userID string) (*domain.Group, error)
}

func (s *stubGroups) CreateGroup(ctx context.Context, actor *domain.User, name string) (*domain.Group, error) {
	return s.createFn(ctx, actor, name)
}

func (s *stubGroups) AddMember(ctx context.Context, actor *domain.User, groupID, userID string) (*domain.Group, error) {
	return s.addMemberFn(ctx, actor, groupID, userID)
}
