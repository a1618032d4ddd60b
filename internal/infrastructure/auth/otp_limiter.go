package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// AttemptLimiter tracks failed OTP verification attempts per owner so
// brute-force guessing can be cut off before the code expires.
type AttemptLimiter interface {
	// RecordFailure increments the failure counter for the owner and
	// returns the new count. The counter expires after ttl.
	RecordFailure(ctx context.Context, ownerID string, ttl time.Duration) (int64, error)

	// Failures returns the current failure count for the owner
	Failures(ctx context.Context, ownerID string) (int64, error)

	// Reset clears the failure counter for the owner
	Reset(ctx context.Context, ownerID string) error
}

// RedisAttemptLimiter implements AttemptLimiter using Redis
type RedisAttemptLimiter struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisAttemptLimiter creates an attempt limiter backed by an existing Redis client
func NewRedisAttemptLimiter(client *redis.Client) *RedisAttemptLimiter {
	return &RedisAttemptLimiter{
		client:    client,
		keyPrefix: "otp:attempts:",
	}
}

func (l *RedisAttemptLimiter) key(ownerID string) string {
	return l.keyPrefix + ownerID
}

// RecordFailure increments the failure counter and sets its TTL on first failure
func (l *RedisAttemptLimiter) RecordFailure(ctx context.Context, ownerID string, ttl time.Duration) (int64, error) {
	key := l.key(ownerID)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to record otp failure: %w", err)
	}

	if count == 1 {
		if err := l.client.Expire(ctx, key, ttl).Err(); err != nil {
			return count, fmt.Errorf("failed to set otp failure ttl: %w", err)
		}
	}

	return count, nil
}

// Failures returns the current failure count, zero if none recorded
func (l *RedisAttemptLimiter) Failures(ctx context.Context, ownerID string) (int64, error) {
	count, err := l.client.Get(ctx, l.key(ownerID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read otp failure count: %w", err)
	}
	return count, nil
}

// Reset clears the failure counter
func (l *RedisAttemptLimiter) Reset(ctx context.Context, ownerID string) error {
	if err := l.client.Del(ctx, l.key(ownerID)).Err(); err != nil {
		return fmt.Errorf("failed to reset otp failure count: %w", err)
	}
	return nil
}

// Ensure RedisAttemptLimiter implements AttemptLimiter
var _ AttemptLimiter = (*RedisAttemptLimiter)(nil)

// InMemoryAttemptLimiter provides an in-memory implementation for testing
type InMemoryAttemptLimiter struct {
	mu       sync.Mutex
	counts   map[string]int64
	expiries map[string]time.Time
}

// NewInMemoryAttemptLimiter creates a new in-memory attempt limiter
func NewInMemoryAttemptLimiter() *InMemoryAttemptLimiter {
	return &InMemoryAttemptLimiter{
		counts:   make(map[string]int64),
		expiries: make(map[string]time.Time),
	}
}

// RecordFailure increments the failure counter for the owner
func (l *InMemoryAttemptLimiter) RecordFailure(_ context.Context, ownerID string, ttl time.Duration) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.expireLocked(ownerID)

	l.counts[ownerID]++
	if l.counts[ownerID] == 1 {
		l.expiries[ownerID] = time.Now().Add(ttl)
	}
	return l.counts[ownerID], nil
}

// Failures returns the current failure count for the owner
func (l *InMemoryAttemptLimiter) Failures(_ context.Context, ownerID string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.expireLocked(ownerID)
	return l.counts[ownerID], nil
}

// Reset clears the failure counter for the owner
func (l *InMemoryAttemptLimiter) Reset(_ context.Context, ownerID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.counts, ownerID)
	delete(l.expiries, ownerID)
	return nil
}

func (l *InMemoryAttemptLimiter) expireLocked(ownerID string) {
	if expiry, ok := l.expiries[ownerID]; ok && time.Now().After(expiry) {
		delete(l.counts, ownerID)
		delete(l.expiries, ownerID)
	}
}

// Ensure InMemoryAttemptLimiter implements AttemptLimiter
var _ AttemptLimiter = (*InMemoryAttemptLimiter)(nil)
