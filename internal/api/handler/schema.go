package handler

import "time"

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required,min=4"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type userInfo struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	Role     string       `json:"role"`
	Status   string       `json:"status"`
	IsBanned bool         `json:"is_banned"`
	Rewards  []rewardInfo `json:"rewards"`
}

type rewardInfo struct {
	Description string    `json:"description"`
	AwardedAt   time.Time `json:"awarded_at"`
	AwardedBy   string    `json:"awarded_by"`
}

type loginResponse struct {
	Token string   `json:"token"`
	User  userInfo `json:"user"`
}

// --- Users & moderation ---

type assignRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=peuple constellation tornades tour batview admin superadmin"`
}

type rewardRequest struct {
	RewardDetails string `json:"reward_details" validate:"required"`
}

type pageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type userListResponse struct {
	Items []userInfo `json:"items"`
	pageMeta
}

type moderationEventInfo struct {
	Kind        string    `json:"kind"`
	Description string    `json:"description,omitempty"`
	RoleFrom    string    `json:"role_from,omitempty"`
	RoleTo      string    `json:"role_to,omitempty"`
	ActorID     string    `json:"actor_id"`
	ActorName   string    `json:"actor_name"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type moderationLogResponse struct {
	UserID string                `json:"user_id"`
	Events []moderationEventInfo `json:"events"`
}

// --- Posts ---

type createPostRequest struct {
	Content string `json:"content" validate:"required"`
}

type commentRequest struct {
	Content string `json:"content" validate:"required"`
}

type commentInfo struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type postInfo struct {
	ID        string        `json:"id"`
	AuthorID  string        `json:"author_id"`
	Content   string        `json:"content"`
	LikeCount int           `json:"like_count"`
	Likes     []string      `json:"likes"`
	Comments  []commentInfo `json:"comments"`
	CreatedAt time.Time     `json:"created_at"`
}

type postListResponse struct {
	Items []postInfo `json:"items"`
	pageMeta
}

// --- Groups ---

type createGroupRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type addMemberRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type groupInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by"`
	Members   []string  `json:"members"`
	CreatedAt time.Time `json:"created_at"`
}
