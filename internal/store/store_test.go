package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()

	_, err := s.Get(ctx, KeyAuthToken)
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, s.Set(ctx, KeyAuthToken, "abc"))
	v, err := s.Get(ctx, KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	require.NoError(t, s.Set(ctx, KeyAuthToken, "def"))
	v, err = s.Get(ctx, KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, "def", v)

	require.NoError(t, s.Delete(ctx, KeyAuthToken))
	_, err = s.Get(ctx, KeyAuthToken)
	assert.True(t, errors.Is(err, ErrNotFound))

	// deleting a missing key is not an error
	require.NoError(t, s.Delete(ctx, KeyAuthToken))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := NewRedisStore(RedisOptions{Addr: mr.Addr()})
	require.NoError(t, err)
	defer s.Close()

	exerciseStore(t, s)
}

func TestRedisStoreTTL(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := NewRedisStore(RedisOptions{Addr: mr.Addr(), TTL: time.Minute})
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, KeyTierOverride, "clinic"))
	mr.FastForward(2 * time.Minute)

	_, err = s.Get(ctx, KeyTierOverride)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestNewRedisStoreUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisStore(RedisOptions{Addr: addr})
	assert.Error(t, err)
}

func TestScopedStore(t *testing.T) {
	base := NewMemoryStore()
	a := NewScoped(base, "session-a")
	b := NewScoped(base, "session-b")
	ctx := context.Background()

	require.NoError(t, a.Set(ctx, KeyTierOverride, "clinic"))

	_, err := b.Get(ctx, KeyTierOverride)
	assert.True(t, errors.Is(err, ErrNotFound))

	raw, err := base.Get(ctx, "session-a:"+KeyTierOverride)
	require.NoError(t, err)
	assert.Equal(t, "clinic", raw)

	exerciseStore(t, b)
}
