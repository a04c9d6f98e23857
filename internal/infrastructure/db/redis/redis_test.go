package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("hunter2")

	client, err := Connect(context.Background(), Config{Addr: mr.Addr(), Password: "hunter2", PoolSize: 4})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	assert.Equal(t, 4, client.Options().PoolSize)
	assert.Equal(t, defaultDialTimeout, client.Options().DialTimeout)
	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	assert.True(t, mr.Exists("k"))
}

func TestConnect_WrongPassword(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("hunter2")

	_, err := Connect(context.Background(), Config{Addr: mr.Addr(), Password: "nope"})
	assert.ErrorContains(t, err, "ping")
}

func TestConnect_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := Connect(context.Background(), Config{Addr: addr, DialTimeout: 200 * time.Millisecond})
	assert.Error(t, err)
}
