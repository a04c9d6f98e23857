package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/constellation/social-api/internal/core/domain"
)

// SessionStore keeps track of which token ids are still live.
type SessionStore interface {
	Save(ctx context.Context, jti, userID string, ttl time.Duration) error
	Lookup(ctx context.Context, jti string) (userID string, found bool, err error)
	DeleteAll(ctx context.Context, userID string) (int, error)
}

// TokenService issues HS256 JWTs whose jti must also be present in the
// session store, which makes them revocable before expiry.
type TokenService struct {
	store  SessionStore
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(store SessionStore, jwtSecret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{
		store:  store,
		secret: []byte(jwtSecret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *TokenService) Issue(ctx context.Context, userID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	if err := s.store.Save(ctx, claims.ID, userID, s.ttl); err != nil {
		return "", err
	}
	return signed, nil
}

func (s *TokenService) Resolve(ctx context.Context, token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid || claims.ID == "" || claims.Subject == "" {
		return "", domain.ErrUnauthenticated
	}

	userID, found, err := s.store.Lookup(ctx, claims.ID)
	if err != nil {
		return "", err
	}
	if !found || userID != claims.Subject {
		return "", domain.ErrUnauthenticated
	}
	return userID, nil
}

func (s *TokenService) RevokeAll(ctx context.Context, userID string) (int, error) {
	return s.store.DeleteAll(ctx, userID)
}
