package domain

import "time"

// DefaultStatus is the status string given to new accounts.
const DefaultStatus = "user"

// Reward is an append-only recognition granted by a moderator.
type Reward struct {
	Description string    `json:"description" bson:"description"`
	AwardedAt   time.Time `json:"awarded_at" bson:"awarded_at"`
	AwardedBy   string    `json:"awarded_by" bson:"awarded_by"`
}

// ModerationKind identifies the type of a moderation event.
type ModerationKind string

const (
	ModerationRoleChanged ModerationKind = "role_changed"
	ModerationBanned      ModerationKind = "banned"
	ModerationUnbanned    ModerationKind = "unbanned"
	ModerationRewarded    ModerationKind = "rewarded"
)

// ModerationEvent is an immutable audit record of a moderation action.
type ModerationEvent struct {
	Kind        ModerationKind `json:"kind" bson:"kind"`
	Description string         `json:"description,omitempty" bson:"description,omitempty"`
	RoleFrom    Role           `json:"role_from,omitempty" bson:"role_from,omitempty"`
	RoleTo      Role           `json:"role_to,omitempty" bson:"role_to,omitempty"`
	ActorID     string         `json:"actor_id" bson:"actor_id"`
	ActorName   string         `json:"actor_name" bson:"actor_name"`
	OccurredAt  time.Time      `json:"occurred_at" bson:"occurred_at"`
}

// User models an account and its moderation state.
type User struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	PasswordHash string            `json:"-"`
	Role         Role              `json:"role"`
	Status       string            `json:"status"`
	IsBanned     bool              `json:"is_banned"`
	Rewards      []Reward          `json:"rewards"`
	Moderation   []ModerationEvent `json:"-"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// UserMutation is applied to a single user record as one atomic update.
// Nil fields are left untouched; Reward and Event are appended.
type UserMutation struct {
	Role     *Role
	IsBanned *bool
	Reward   *Reward
	Event    ModerationEvent
	At       time.Time
}
