package redisstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real server only when TODO_TEST_REDIS_ADDR is set.
func TestStore(t *testing.T) {
	addr := os.Getenv("TODO_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TODO_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()

	s, err := Open(ctx, Options{Addr: addr, Prefix: "todo-test:" + uuid.NewString() + ":"})
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Get(ctx, "todos")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "todos", "[]"))
	v, ok, err := s.Get(ctx, "todos")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)

	require.NoError(t, s.client.Del(ctx, s.prefix+"todos").Err())
}

func TestOpen_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := Open(ctx, Options{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
