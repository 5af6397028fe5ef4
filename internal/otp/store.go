// Package otp keeps short-lived one-time login codes in redis, keyed by
// recipient email. Codes expire via TTL and are deleted on successful
// verification, so each one is single-use.
package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cmdable is the subset of the go-redis client the store uses.
type Cmdable interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Store manages pending login codes.
type Store struct {
	client Cmdable
	ttl    time.Duration
}

// NewStore returns a redis-backed store. ttl bounds how long a code stays
// valid after being issued.
func NewStore(client Cmdable, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Store{client: client, ttl: ttl}
}

func (s *Store) key(email string) string {
	return fmt.Sprintf("otp:login:%s", email)
}

// Put stores a freshly issued code, replacing any previous one for the same
// recipient.
func (s *Store) Put(ctx context.Context, email, code string) error {
	return s.client.Set(ctx, s.key(email), code, s.ttl).Err()
}

// Verify checks the submitted code. A match consumes the stored code; an
// expired or unknown recipient simply fails verification.
func (s *Store) Verify(ctx context.Context, email, code string) (bool, error) {
	stored, err := s.client.Get(ctx, s.key(email)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if stored != code {
		return false, nil
	}
	if err := s.client.Del(ctx, s.key(email)).Err(); err != nil {
		return false, err
	}
	return true, nil
}

// GenerateCode produces a random 6-digit code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
