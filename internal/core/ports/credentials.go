package ports

import "context"

// PasswordHasher hashes and verifies passwords with a one-way adaptive hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// TokenService issues and revokes opaque bearer tokens bound to a user id.
type TokenService interface {
	Issue(ctx context.Context, userID string) (string, error)
	// Resolve returns the user id bound to token, or domain.ErrUnauthenticated
	// when the token is unknown, expired or revoked.
	Resolve(ctx context.Context, token string) (string, error)
	// RevokeAll invalidates every token of userID as one atomic operation and
	// reports how many were live.
	RevokeAll(ctx context.Context, userID string) (int, error)
}
