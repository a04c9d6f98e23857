package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const maxWatchRetries = 5

// SessionStore tracks live token ids in Redis.
// Key format:
//
//	session:<jti>           -> user id (expires with the token)
//	user_sessions:<user id> -> set of jti
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Save registers jti as a live session of userID for ttl.
func (s *SessionStore) Save(ctx context.Context, jti, userID string, ttl time.Duration) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionKey(jti), userID, ttl)
		pipe.SAdd(ctx, userSessionsKey(userID), jti)
		pipe.Expire(ctx, userSessionsKey(userID), ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Lookup returns the user id bound to jti. found is false when the session
// expired or was revoked.
func (s *SessionStore) Lookup(ctx context.Context, jti string) (userID string, found bool, err error) {
	userID, err = s.client.Get(ctx, sessionKey(jti)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup session: %w", err)
	}
	return userID, true, nil
}

// DeleteAll removes every session of userID in one MULTI/EXEC block. The
// user's session set is WATCHed, so a login racing with the revocation makes
// the transaction retry instead of leaving a half-revoked state.
func (s *SessionStore) DeleteAll(ctx context.Context, userID string) (int, error) {
	setKey := userSessionsKey(userID)
	var deleted int

	txf := func(tx *redis.Tx) error {
		jtis, err := tx.SMembers(ctx, setKey).Result()
		if err != nil {
			return err
		}

		var del *redis.IntCmd
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if len(jtis) > 0 {
				keys := make([]string, 0, len(jtis))
				for _, jti := range jtis {
					keys = append(keys, sessionKey(jti))
				}
				del = pipe.Del(ctx, keys...)
			}
			pipe.Del(ctx, setKey)
			return nil
		})
		if err != nil {
			return err
		}

		deleted = 0
		if del != nil {
			deleted = int(del.Val())
		}
		return nil
	}

	for i := 0; i < maxWatchRetries; i++ {
		err := s.client.Watch(ctx, txf, setKey)
		if err == nil {
			return deleted, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return 0, fmt.Errorf("revoke sessions: %w", err)
	}
	return 0, fmt.Errorf("revoke sessions: %w", redis.TxFailedErr)
}

func sessionKey(jti string) string {
	return fmt.Sprintf("session:%s", jti)
}

func userSessionsKey(userID string) string {
	return fmt.Sprintf("user_sessions:%s", userID)
}
