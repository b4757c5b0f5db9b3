package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func restore() {
	redisNewClient = func(o *redis.Options) Cache { return redis.NewClient(o) }
}

func TestNewRedisClient(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		mr := miniredis.RunT(t)
		var opts *redis.Options
		redisNewClient = func(o *redis.Options) Cache {
			opts = o
			return redis.NewClient(o)
		}

		c, err := NewRedisClient(mr.Addr(), "", 1)
		require.NoError(t, err)
		defer c.Close()
		require.Equal(t, mr.Addr(), opts.Addr)
		require.Equal(t, 1, opts.DB)
	})

	t.Run("ping fail closes client", func(t *testing.T) {
		t.Cleanup(restore)
		closed := false
		redisNewClient = func(o *redis.Options) Cache {
			return &FakeCache{
				PingFn:  func(ctx context.Context) *redis.StatusCmd { return redis.NewStatusResult("", errors.New("fail")) },
				CloseFn: func() error { closed = true; return nil },
			}
		}

		c, err := NewRedisClient("addr", "", 0)
		require.Error(t, err)
		require.Nil(t, c)
		require.True(t, closed)
	})
}

func TestRevocation(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer c.Close()
	ctx := context.Background()

	revoked, err := IsRevoked(ctx, c, "tok")
	require.NoError(t, err)
	require.False(t, revoked)

	require.NoError(t, RevokeToken(ctx, c, "tok", time.Now().Add(time.Hour)))
	revoked, err = IsRevoked(ctx, c, "tok")
	require.NoError(t, err)
	require.True(t, revoked)

	// key 不含原始 token
	for _, k := range mr.Keys() {
		require.NotContains(t, k, "tok")
	}
	require.Greater(t, mr.TTL(revokedKey("tok")), 59*time.Minute)

	mr.FastForward(2 * time.Hour)
	revoked, err = IsRevoked(ctx, c, "tok")
	require.NoError(t, err)
	require.False(t, revoked)

	t.Run("expired token is a no-op", func(t *testing.T) {
		require.NoError(t, RevokeToken(ctx, &FakeCache{}, "old", time.Now().Add(-time.Minute)))
	})

	t.Run("redis errors are wrapped", func(t *testing.T) {
		fc := &FakeCache{
			SetFn: func(ctx context.Context, key string, value any, exp time.Duration) *redis.StatusCmd {
				return redis.NewStatusResult("", errors.New("down"))
			},
			ExistsFn: func(ctx context.Context, keys ...string) *redis.IntCmd {
				return redis.NewIntResult(0, errors.New("down"))
			},
		}
		require.ErrorContains(t, RevokeToken(ctx, fc, "t", time.Now().Add(time.Minute)), "RevokeToken")
		_, err := IsRevoked(ctx, fc, "t")
		require.ErrorContains(t, err, "IsRevoked")
	})
}
