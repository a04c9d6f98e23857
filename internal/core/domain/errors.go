package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain error independently of the transport.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindConflict     ErrorKind = "conflict"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindNotFound     ErrorKind = "not_found"
	KindInternal     ErrorKind = "internal"
)

// Error is a classified business-rule failure. Reason is a stable
// machine-readable code, e.g. "cannot_modify_superadmin".
type Error struct {
	Kind   ErrorKind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a domain error.
func NewError(kind ErrorKind, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}

// KindOf returns the kind of the first domain error in err's chain, or
// KindInternal when err carries no classification.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// ReasonOf returns the reason code of the first domain error in err's chain.
func ReasonOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Reason
	}
	return ""
}

var (
	ErrInvalidRole        = NewError(KindValidation, "invalid_role")
	ErrInvalidName        = NewError(KindValidation, "name_too_short")
	ErrInvalidEmail       = NewError(KindValidation, "invalid_email")
	ErrPasswordTooShort   = NewError(KindValidation, "password_too_short")
	ErrPasswordTooLong    = NewError(KindValidation, "password_too_long")
	ErrEmptyReward        = NewError(KindValidation, "reward_description_required")
	ErrEmptyContent       = NewError(KindValidation, "content_required")
	ErrInvalidGroupName   = NewError(KindValidation, "group_name_required")
	ErrUserExists         = NewError(KindConflict, "email_already_registered")
	ErrGroupExists        = NewError(KindConflict, "group_name_taken")
	ErrInvalidCredentials = NewError(KindUnauthorized, "invalid_credentials")
	ErrUnauthenticated    = NewError(KindUnauthorized, "unauthenticated")
	ErrNoActiveSession    = NewError(KindUnauthorized, "no_active_session")

	ErrInsufficientPrivilege  = NewError(KindForbidden, string(ReasonInsufficientPrivilege))
	ErrCannotAssignSuperAdmin = NewError(KindForbidden, string(ReasonCannotAssignSuperAdmin))
	ErrCannotModifySuperAdmin = NewError(KindForbidden, string(ReasonCannotModifySuperAdmin))
	ErrAccountBanned          = NewError(KindForbidden, string(ReasonAccountBanned))

	ErrUserNotFound  = NewError(KindNotFound, "user_not_found")
	ErrGroupNotFound = NewError(KindNotFound, "group_not_found")
	ErrPostNotFound  = NewError(KindNotFound, "post_not_found")

	// ErrStaleRecord is returned by repositories when a guarded update found
	// the record changed since it was read.
	ErrStaleRecord = errors.New("record changed concurrently")
)
