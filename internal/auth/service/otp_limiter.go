package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultOTPMaxAttempts = 5
	DefaultOTPCooldown    = time.Minute

	otpAttemptKeyPrefix = "otp:att:"
)

var ErrOTPLimiterUnavailable = errors.New("otp limiter unavailable")

// OTPLimiter counts failed TOTP checks per user. Once MaxAttempts failures
// land inside one cooldown window, Check returns ErrTooManyAttempts until
// the window passes.
type OTPLimiter interface {
	Check(ctx context.Context, userID string) error
	RecordFailure(ctx context.Context, userID string) error
	Reset(ctx context.Context, userID string) error
}

// RedisOTPLimiter keeps the counter in Redis so every replica shares it.
// The window starts at the first failure (INCR, then EXPIRE on 1).
type RedisOTPLimiter struct {
	Client      redis.Cmdable
	MaxAttempts int
	Cooldown    time.Duration
}

func NewRedisOTPLimiter(client redis.Cmdable, maxAttempts int, cooldown time.Duration) *RedisOTPLimiter {
	if maxAttempts <= 0 {
		maxAttempts = DefaultOTPMaxAttempts
	}
	if cooldown <= 0 {
		cooldown = DefaultOTPCooldown
	}
	return &RedisOTPLimiter{Client: client, MaxAttempts: maxAttempts, Cooldown: cooldown}
}

func (l *RedisOTPLimiter) key(userID string) string {
	return otpAttemptKeyPrefix + userID
}

func (l *RedisOTPLimiter) Check(ctx context.Context, userID string) error {
	count, err := l.Client.Get(ctx, l.key(userID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrOTPLimiterUnavailable, err)
	}
	if count >= int64(l.MaxAttempts) {
		return ErrTooManyAttempts
	}
	return nil
}

// RecordFailure creates the counter with its expiry and increments it in one
// MULTI/EXEC, so a counter never exists without a TTL. Later failures keep
// the original expiry.
func (l *RedisOTPLimiter) RecordFailure(ctx context.Context, userID string) error {
	key := l.key(userID)
	_, err := l.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, key, 0, l.Cooldown)
		pipe.Incr(ctx, key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOTPLimiterUnavailable, err)
	}
	return nil
}

func (l *RedisOTPLimiter) Reset(ctx context.Context, userID string) error {
	if err := l.Client.Del(ctx, l.key(userID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrOTPLimiterUnavailable, err)
	}
	return nil
}

// MemoryOTPLimiter is the single-process fallback used when no Redis address
// is configured.
type MemoryOTPLimiter struct {
	MaxAttempts int
	Cooldown    time.Duration
	Now         func() time.Time

	mu       sync.Mutex
	attempts map[string]otpAttempts
}

type otpAttempts struct {
	count   int
	expires time.Time
}

func NewMemoryOTPLimiter(maxAttempts int, cooldown time.Duration) *MemoryOTPLimiter {
	if maxAttempts <= 0 {
		maxAttempts = DefaultOTPMaxAttempts
	}
	if cooldown <= 0 {
		cooldown = DefaultOTPCooldown
	}
	return &MemoryOTPLimiter{
		MaxAttempts: maxAttempts,
		Cooldown:    cooldown,
		Now:         time.Now,
		attempts:    make(map[string]otpAttempts),
	}
}

// current returns the live window for userID. Caller holds mu.
func (l *MemoryOTPLimiter) current(userID string, now time.Time) (otpAttempts, bool) {
	a, ok := l.attempts[userID]
	if !ok {
		return otpAttempts{}, false
	}
	if !now.Before(a.expires) {
		delete(l.attempts, userID)
		return otpAttempts{}, false
	}
	return a, true
}

func (l *MemoryOTPLimiter) Check(_ context.Context, userID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if a, ok := l.current(userID, l.Now()); ok && a.count >= l.MaxAttempts {
		return ErrTooManyAttempts
	}
	return nil
}

func (l *MemoryOTPLimiter) RecordFailure(_ context.Context, userID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.Now()
	a, ok := l.current(userID, now)
	if !ok {
		a = otpAttempts{expires: now.Add(l.Cooldown)}
	}
	a.count++
	l.attempts[userID] = a
	return nil
}

func (l *MemoryOTPLimiter) Reset(_ context.Context, userID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.attempts, userID)
	return nil
}
