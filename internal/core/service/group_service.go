package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/constellation/social-api/internal/core/domain"
	"github.com/constellation/social-api/internal/core/ports"
)

type GroupService struct {
	groups  ports.GroupRepository
	users   ports.UserRepository
	metrics ports.Metrics
	log     zerolog.Logger
}

func NewGroupService(groups ports.GroupRepository, users ports.UserRepository, m ports.Metrics, log zerolog.Logger) *GroupService {
	return &GroupService{groups: groups, users: users, metrics: orNop(m), log: log}
}

// CreateGroup creates a group with the actor as its first member.
func (s *GroupService) CreateGroup(ctx context.Context, actor *domain.User, name string) (*domain.Group, error) {
	if err := authorize(s.metrics, domain.AccessRequest{Actor: actor, Action: domain.ActionCreateGroup}); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidGroupName
	}

	group, err := s.groups.Create(ctx, &domain.Group{
		Name:      name,
		CreatedBy: actor.ID,
		Members:   []string{actor.ID},
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrGroupExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create group: %w", err)
	}

	s.log.Info().Str("group_id", group.ID).Str("created_by", actor.ID).Msg("group created")
	return group, nil
}

// AddMember adds an existing user to the group.
func (s *GroupService) AddMember(ctx context.Context, actor *domain.User, groupID, userID string) (*domain.Group, error) {
	if err := authorize(s.metrics, domain.AccessRequest{Actor: actor, Action: domain.ActionAddGroupMember}); err != nil {
		return nil, err
	}

	member, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("add member: load user: %w", err)
	}

	group, err := s.groups.AddMember(ctx, groupID, member.ID)
	if err != nil {
		if errors.Is(err, domain.ErrGroupNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("add member: %w", err)
	}

	s.log.Info().Str("group_id", group.ID).Str("user_id", member.ID).Msg("member added")
	return group, nil
}
