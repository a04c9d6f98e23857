package domain

// Action names an operation subject to access control.
type Action string

const (
	ActionRegister          Action = "register"
	ActionLogin             Action = "login"
	ActionLogout            Action = "logout"
	ActionViewSelf          Action = "view_self"
	ActionListUsers         Action = "list_users"
	ActionAssignRole        Action = "assign_role"
	ActionBan               Action = "ban"
	ActionUnban             Action = "unban"
	ActionReward            Action = "reward"
	ActionViewModerationLog Action = "view_moderation_log"
	ActionCreatePost        Action = "create_post"
	ActionReadPosts         Action = "read_posts"
	ActionLikePost          Action = "like_post"
	ActionCommentPost       Action = "comment_post"
	ActionCreateGroup       Action = "create_group"
	ActionAddGroupMember    Action = "add_group_member"
)

// DenyReason is the stable code attached to a denied decision.
type DenyReason string

const (
	ReasonUnauthenticated        DenyReason = "unauthenticated"
	ReasonAccountBanned          DenyReason = "account_banned"
	ReasonInsufficientPrivilege  DenyReason = "insufficient_privilege"
	ReasonCannotAssignSuperAdmin DenyReason = "cannot_assign_superadmin"
	ReasonCannotModifySuperAdmin DenyReason = "cannot_modify_superadmin"
)

// privilegedActions require an admin or superadmin actor.
var privilegedActions = map[Action]bool{
	ActionListUsers:      true,
	ActionAssignRole:     true,
	ActionBan:            true,
	ActionUnban:          true,
	ActionReward:         true,
	ActionCreatePost:     true,
	ActionCreateGroup:    true,
	ActionAddGroupMember: true,
}

// superAdminProtected actions cannot target a superadmin unless the actor is
// one too.
var superAdminProtected = map[Action]bool{
	ActionAssignRole: true,
	ActionBan:        true,
	ActionUnban:      true,
	ActionReward:     true,
}

// RequiresPrivilege reports whether a is restricted to privileged roles.
func (a Action) RequiresPrivilege() bool {
	return privilegedActions[a]
}

// AccessRequest is the input to Decide. Target and RequestedRole are only
// meaningful for actions that operate on another user.
type AccessRequest struct {
	Actor         *User
	Action        Action
	Target        *User
	RequestedRole Role
}

// Decision is the outcome of an access check.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

// Allow is the zero-reason permitting decision.
var Allow = Decision{Allowed: true}

// Deny builds a denying decision.
func Deny(reason DenyReason) Decision {
	return Decision{Reason: reason}
}

// Err converts a denial into its domain error; it returns nil when allowed.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	switch d.Reason {
	case ReasonUnauthenticated:
		return ErrUnauthenticated
	case ReasonAccountBanned:
		return ErrAccountBanned
	case ReasonCannotAssignSuperAdmin:
		return ErrCannotAssignSuperAdmin
	case ReasonCannotModifySuperAdmin:
		return ErrCannotModifySuperAdmin
	default:
		return ErrInsufficientPrivilege
	}
}

// Decide evaluates req against the access rules. The first matching rule wins:
//
//  1. no actor: only register and login are allowed
//  2. banned actor: denied
//  3. privileged action by a non-privileged actor: insufficient_privilege
//  4. granting superadmin without being superadmin: cannot_assign_superadmin
//  5. mutating a superadmin without being superadmin: cannot_modify_superadmin
//
// Reading another user's moderation log is privileged; reading one's own is not.
func Decide(req AccessRequest) Decision {
	actor := req.Actor
	if actor == nil {
		if req.Action == ActionRegister || req.Action == ActionLogin {
			return Allow
		}
		return Deny(ReasonUnauthenticated)
	}
	if actor.IsBanned {
		return Deny(ReasonAccountBanned)
	}

	privileged := actor.Role.IsPrivileged()
	if req.Action.RequiresPrivilege() && !privileged {
		return Deny(ReasonInsufficientPrivilege)
	}
	if req.Action == ActionViewModerationLog && !privileged && (req.Target == nil || req.Target.ID != actor.ID) {
		return Deny(ReasonInsufficientPrivilege)
	}

	superAdmin := actor.Role.IsSuperAdmin()
	if req.Action == ActionAssignRole && req.RequestedRole.IsSuperAdmin() && !superAdmin {
		return Deny(ReasonCannotAssignSuperAdmin)
	}
	if superAdminProtected[req.Action] && req.Target != nil && req.Target.Role.IsSuperAdmin() && !superAdmin {
		return Deny(ReasonCannotModifySuperAdmin)
	}

	return Allow
}
