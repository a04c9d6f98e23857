package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client), mr
}

func TestSessionStore_SaveAndLookup(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "jti-1", "user-1", time.Hour))

	userID, found, err := store.Lookup(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "user-1", userID)

	assert.True(t, mr.Exists("session:jti-1"))
	members, err := mr.SMembers("user_sessions:user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"jti-1"}, members)
}

func TestSessionStore_LookupUnknown(t *testing.T) {
	store, _ := newTestStore(t)

	userID, found, err := store.Lookup(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, userID)
}

func TestSessionStore_SessionExpires(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "jti-1", "user-1", time.Minute))
	mr.FastForward(2 * time.Minute)

	_, found, err := store.Lookup(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSessionStore_DeleteAll(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "jti-1", "user-1", time.Hour))
	require.NoError(t, store.Save(ctx, "jti-2", "user-1", time.Hour))
	require.NoError(t, store.Save(ctx, "jti-3", "user-1", time.Hour))
	require.NoError(t, store.Save(ctx, "other", "user-2", time.Hour))

	n, err := store.DeleteAll(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for _, jti := range []string{"jti-1", "jti-2", "jti-3"} {
		_, found, err := store.Lookup(ctx, jti)
		require.NoError(t, err)
		assert.False(t, found, jti)
		assert.False(t, mr.Exists("session:"+jti), jti)
	}
	assert.False(t, mr.Exists("user_sessions:user-1"))

	userID, found, err := store.Lookup(ctx, "other")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "user-2", userID)
}

func TestSessionStore_DeleteAllCountsOnlyLiveSessions(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "short", "user-1", time.Minute))
	require.NoError(t, store.Save(ctx, "long", "user-1", time.Hour))
	// The set outlives the expired token key.
	mr.SetTTL("user_sessions:user-1", 2*time.Hour)
	mr.FastForward(2 * time.Minute)

	n, err := store.DeleteAll(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSessionStore_DeleteAllWithoutSessions(t *testing.T) {
	store, _ := newTestStore(t)

	n, err := store.DeleteAll(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = store.DeleteAll(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSessionStore_ServerDown(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()

	_, err := store.DeleteAll(context.Background(), "user-1")
	assert.Error(t, err)

	_, _, err = store.Lookup(context.Background(), "jti-1")
	assert.Error(t, err)
}
