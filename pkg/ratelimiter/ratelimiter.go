package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitError is returned when a cooldown window has not elapsed yet.
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return e.Message
}

func key(userID uint, scope string) string {
	return fmt.Sprintf("ratelimit:%s:%d", scope, userID)
}

// CheckAndSetRateLimit returns false when the user is still inside the
// cooldown window for scope; otherwise it arms the window and returns true.
// A nil client disables rate limiting entirely.
func CheckAndSetRateLimit(ctx context.Context, client *redis.Client, userID uint, scope string, window time.Duration) (bool, error) {
	if client == nil {
		return true, nil
	}

	ok, err := client.SetNX(ctx, key(userID, scope), time.Now().Unix(), window).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// GetRateLimitTTL reports how long the caller has to wait before retrying.
func GetRateLimitTTL(ctx context.Context, client *redis.Client, userID uint, scope string) (time.Duration, error) {
	if client == nil {
		return 0, nil
	}
	return client.TTL(ctx, key(userID, scope)).Result()
}

// ClearRateLimit disarms a previously set window (used to roll back when the
// guarded operation fails).
func ClearRateLimit(ctx context.Context, client *redis.Client, userID uint, scope string) error {
	if client == nil {
		return nil
	}
	return client.Del(ctx, key(userID, scope)).Err()
}
