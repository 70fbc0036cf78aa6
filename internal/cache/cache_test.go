package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNopAlwaysMisses(t *testing.T) {
	var c Cache = Nop{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "stats", []byte("x"), time.Minute))
	v, ok, err := c.Get(ctx, "stats")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
	assert.NoError(t, c.Delete(ctx, "stats"))
}

func TestRedisUnreachableReturnsErrors(t *testing.T) {
	// Port 1 on localhost is not expected to accept connections.
	r := NewRedis(Options{Addr: "127.0.0.1:1"})
	defer r.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	assert.Error(t, r.Ping(ctx))

	_, ok, err := r.Get(ctx, "stats")
	assert.Error(t, err)
	assert.False(t, ok)

	assert.Error(t, r.Set(ctx, "stats", []byte("x"), time.Second))
	assert.Error(t, r.Delete(ctx, "stats"))
	assert.NoError(t, r.Delete(ctx))
}

func TestRedisDefaultPrefix(t *testing.T) {
	r := NewRedis(Options{Addr: "127.0.0.1:1"})
	defer r.Close()
	assert.Equal(t, "arsenal:", r.prefix)

	custom := NewRedis(Options{Addr: "127.0.0.1:1", Prefix: "test:"})
	defer custom.Close()
	assert.Equal(t, "test:", custom.prefix)
}
