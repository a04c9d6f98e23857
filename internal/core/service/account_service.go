package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/constellation/social-api/internal/core/domain"
	"github.com/constellation/social-api/internal/core/ports"
)

const (
	minNameLength     = 4
	minPasswordLength = 8
	// bcrypt ignores input past 72 bytes.
	maxPasswordBytes = 72

	// maxApplyAttempts bounds re-reads when a target changes between the
	// access decision and the guarded update.
	maxApplyAttempts = 3

	// systemActor signs moderation events issued by operator tooling.
	systemActor = "system"
)

// AccountService implements registration and the moderation mutations.
type AccountService struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenService
	metrics  ports.Metrics
	validate *validator.Validate
	log      zerolog.Logger
	now      func() time.Time
}

// NewAccountService wires the account service. A nil m disables metrics.
func NewAccountService(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService, m ports.Metrics, log zerolog.Logger) *AccountService {
	return &AccountService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		metrics:  orNop(m),
		validate: validator.New(),
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a peuple account.
func (s *AccountService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if err := authorize(s.metrics, domain.AccessRequest{Action: domain.ActionRegister}); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if utf8.RuneCountInString(name) < minNameLength {
		return nil, domain.ErrInvalidName
	}
	if s.validate.Var(email, "required,email,max=255") != nil {
		return nil, domain.ErrInvalidEmail
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, domain.ErrPasswordTooLong
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := s.now()
	created, err := s.users.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.DefaultRole,
		Status:       domain.DefaultStatus,
		IsBanned:     false,
		Rewards:      []domain.Reward{},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// ListUsers returns a page of users, newest first.
func (s *AccountService) ListUsers(ctx context.Context, actor *domain.User, page ports.Page) (*ports.UserList, error) {
	if err := authorize(s.metrics, domain.AccessRequest{Actor: actor, Action: domain.ActionListUsers}); err != nil {
		return nil, err
	}

	p, limit := normalizePage(page.Page, page.Limit)
	users, total, err := s.users.List(ctx, p, limit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return &ports.UserList{
		Items:      users,
		Total:      total,
		Page:       p,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// AssignRole sets the target's role. Only superadmins may grant superadmin or
// change a superadmin's role.
func (s *AccountService) AssignRole(ctx context.Context, actor *domain.User, targetID string, role string) (*domain.User, error) {
	// Identity and privilege are checked before the role name is parsed.
	if err := authorize(s.metrics, domain.AccessRequest{Actor: actor, Action: domain.ActionAssignRole}); err != nil {
		return nil, err
	}
	newRole, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, actor, targetID, domain.ActionAssignRole, newRole, func(target *domain.User) (domain.UserMutation, bool) {
		return domain.UserMutation{
			Role: &newRole,
			Event: domain.ModerationEvent{
				Kind:     domain.ModerationRoleChanged,
				RoleFrom: target.Role,
				RoleTo:   newRole,
			},
		}, true
	})
}

// BanUser bans the target and revokes its tokens. Banning an already banned
// user succeeds without recording a new event.
func (s *AccountService) BanUser(ctx context.Context, actor *domain.User, targetID string) (*domain.User, error) {
	banned := true
	user, err := s.mutate(ctx, actor, targetID, domain.ActionBan, "", func(target *domain.User) (domain.UserMutation, bool) {
		if target.IsBanned {
			return domain.UserMutation{}, false
		}
		return domain.UserMutation{
			IsBanned: &banned,
			Event:    domain.ModerationEvent{Kind: domain.ModerationBanned},
		}, true
	})
	if err != nil {
		return nil, err
	}

	n, err := s.tokens.RevokeAll(ctx, user.ID)
	if err != nil {
		// Authenticate rejects banned accounts, so stale tokens stay unusable.
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to revoke tokens of banned user")
	} else if n > 0 {
		s.metrics.TokensRevoked(n)
	}
	return user, nil
}

// UnbanUser lifts a ban. Unbanning a user who is not banned is a no-op.
func (s *AccountService) UnbanUser(ctx context.Context, actor *domain.User, targetID string) (*domain.User, error) {
	banned := false
	return s.mutate(ctx, actor, targetID, domain.ActionUnban, "", func(target *domain.User) (domain.UserMutation, bool) {
		if !target.IsBanned {
			return domain.UserMutation{}, false
		}
		return domain.UserMutation{
			IsBanned: &banned,
			Event:    domain.ModerationEvent{Kind: domain.ModerationUnbanned},
		}, true
	})
}

// RewardUser appends a reward to the target. Prior rewards are never touched.
func (s *AccountService) RewardUser(ctx context.Context, actor *domain.User, targetID, description string) (*domain.User, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, domain.ErrEmptyReward
	}

	return s.mutate(ctx, actor, targetID, domain.ActionReward, "", func(target *domain.User) (domain.UserMutation, bool) {
		return domain.UserMutation{
			Reward: &domain.Reward{Description: description, AwardedBy: actor.Name},
			Event: domain.ModerationEvent{
				Kind:        domain.ModerationRewarded,
				Description: description,
			},
		}, true
	})
}

// ModerationLog returns the target's moderation events, oldest first. Users
// may read their own log; other logs require a privileged role.
func (s *AccountService) ModerationLog(ctx context.Context, actor *domain.User, targetID string) ([]domain.ModerationEvent, error) {
	if err := authorize(s.metrics, domain.AccessRequest{
		Actor:  actor,
		Action: domain.ActionViewModerationLog,
		Target: &domain.User{ID: targetID},
	}); err != nil {
		return nil, err
	}

	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("moderation log: %w", err)
	}
	events := make([]domain.ModerationEvent, len(target.Moderation))
	copy(events, target.Moderation)
	return events, nil
}

// GrantSuperAdmin promotes the account registered under email to superadmin
// without an acting user. It is the operator bootstrap for a fresh database and
// is only reachable from the command line.
func (s *AccountService) GrantSuperAdmin(ctx context.Context, email string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	role := domain.RoleSuperAdmin

	for attempt := 0; attempt < maxApplyAttempts; attempt++ {
		target, err := s.users.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return nil, err
			}
			return nil, fmt.Errorf("grant superadmin: load user: %w", err)
		}
		if target.Role == role {
			return target, nil
		}

		now := s.now()
		updated, err := s.users.Apply(ctx, target.ID, target.Role, domain.UserMutation{
			Role: &role,
			At:   now,
			Event: domain.ModerationEvent{
				Kind:       domain.ModerationRoleChanged,
				RoleFrom:   target.Role,
				RoleTo:     role,
				ActorID:    systemActor,
				ActorName:  systemActor,
				OccurredAt: now,
			},
		})
		if errors.Is(err, domain.ErrStaleRecord) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("grant superadmin: %w", err)
		}

		s.log.Warn().Str("user_id", updated.ID).Msg("superadmin granted from command line")
		return updated, nil
	}

	return nil, fmt.Errorf("grant superadmin: %w after %d attempts", domain.ErrStaleRecord, maxApplyAttempts)
}

// mutate authorizes action against a fresh snapshot of the target and applies
// the mutation built from it. The update is guarded on the snapshot's role so
// a concurrent role change forces a new decision.
func (s *AccountService) mutate(
	ctx context.Context,
	actor *domain.User,
	targetID string,
	action domain.Action,
	requested domain.Role,
	build func(target *domain.User) (domain.UserMutation, bool),
) (*domain.User, error) {
	// Reject unauthenticated and unprivileged actors before touching storage.
	if err := authorize(s.metrics, domain.AccessRequest{Actor: actor, Action: action, RequestedRole: requested}); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxApplyAttempts; attempt++ {
		target, err := s.users.FindByID(ctx, targetID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return nil, err
			}
			return nil, fmt.Errorf("%s: load target: %w", action, err)
		}

		if err := authorize(s.metrics, domain.AccessRequest{
			Actor:         actor,
			Action:        action,
			Target:        target,
			RequestedRole: requested,
		}); err != nil {
			s.log.Warn().
				Str("actor_id", actor.ID).
				Str("target_id", target.ID).
				Str("action", string(action)).
				Str("reason", domain.ReasonOf(err)).
				Msg("moderation denied")
			return nil, err
		}

		m, apply := build(target)
		if !apply {
			return target, nil
		}
		m.At = s.now()
		m.Event.ActorID = actor.ID
		m.Event.ActorName = actor.Name
		m.Event.OccurredAt = m.At
		if m.Reward != nil {
			m.Reward.AwardedAt = m.At
		}

		updated, err := s.users.Apply(ctx, target.ID, target.Role, m)
		if errors.Is(err, domain.ErrStaleRecord) {
			s.metrics.ModerationConflict()
			s.log.Debug().Str("target_id", target.ID).Int("attempt", attempt+1).Msg("target changed concurrently, retrying")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: apply: %w", action, err)
		}

		s.metrics.ModerationApplied(m.Event.Kind)
		s.log.Info().
			Str("actor_id", actor.ID).
			Str("target_id", updated.ID).
			Str("kind", string(m.Event.Kind)).
			Msg("moderation applied")
		return updated, nil
	}

	return nil, fmt.Errorf("%s: %w after %d attempts", action, domain.ErrStaleRecord, maxApplyAttempts)
}
