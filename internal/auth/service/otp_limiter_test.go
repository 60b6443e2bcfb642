package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestMemoryOTPLimiter(t *testing.T) {
	ctx := context.Background()
	clock := &testClock{t: time.Now()}
	l := NewMemoryOTPLimiter(2, time.Minute)
	l.Now = clock.Now

	require.NoError(t, l.Check(ctx, "u1"))
	require.NoError(t, l.RecordFailure(ctx, "u1"))
	require.NoError(t, l.Check(ctx, "u1"))
	require.NoError(t, l.RecordFailure(ctx, "u1"))
	require.ErrorIs(t, l.Check(ctx, "u1"), ErrTooManyAttempts)
	require.NoError(t, l.Check(ctx, "u2"), "counters are per user")

	clock.Advance(time.Minute)
	require.NoError(t, l.Check(ctx, "u1"), "window expired")

	require.NoError(t, l.RecordFailure(ctx, "u1"))
	require.NoError(t, l.RecordFailure(ctx, "u1"))
	require.NoError(t, l.Reset(ctx, "u1"))
	require.NoError(t, l.Check(ctx, "u1"))
}

func TestRedisOTPLimiter(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	l := NewRedisOTPLimiter(client, 2, time.Minute)

	require.NoError(t, l.Check(ctx, "u1"))
	require.NoError(t, l.RecordFailure(ctx, "u1"))
	require.NoError(t, l.RecordFailure(ctx, "u1"))
	require.ErrorIs(t, l.Check(ctx, "u1"), ErrTooManyAttempts)

	require.True(t, mr.Exists("otp:att:u1"))
	require.Equal(t, time.Minute, mr.TTL("otp:att:u1"))
	count, err := mr.Get("otp:att:u1")
	require.NoError(t, err)
	require.Equal(t, "2", count)

	mr.FastForward(time.Minute)
	require.NoError(t, l.Check(ctx, "u1"))

	require.NoError(t, l.RecordFailure(ctx, "u1"))
	require.NoError(t, l.Reset(ctx, "u1"))
	require.False(t, mr.Exists("otp:att:u1"))
}

func TestRedisOTPLimiter_KeepsFirstExpiry(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	l := NewRedisOTPLimiter(client, 5, time.Minute)

	require.NoError(t, l.RecordFailure(ctx, "u1"))
	mr.FastForward(40 * time.Second)
	require.NoError(t, l.RecordFailure(ctx, "u1"))
	require.Equal(t, 20*time.Second, mr.TTL("otp:att:u1"))

	mr.FastForward(20 * time.Second)
	require.False(t, mr.Exists("otp:att:u1"), "counter expires with the first failure's window")
}

func TestRedisOTPLimiter_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	l := NewRedisOTPLimiter(client, 0, 0)
	require.Equal(t, DefaultOTPMaxAttempts, l.MaxAttempts)
	require.ErrorIs(t, l.Check(context.Background(), "u1"), ErrOTPLimiterUnavailable)
}
