package otp

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeRedis keeps keys in memory with expiry deadlines against a manual
// clock, so TTL behavior is tested without a server or sleeps.
type fakeRedis struct {
	entries map[string]fakeEntry
	now     time.Time
}

type fakeEntry struct {
	value     string
	expiresAt time.Time
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		entries: make(map[string]fakeEntry),
		now:     time.Now(),
	}
}

func (f *fakeRedis) advance(d time.Duration) { f.now = f.now.Add(d) }

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.entries[key] = fakeEntry{value: fmt.Sprint(value), expiresAt: f.now.Add(expiration)}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	entry, ok := f.entries[key]
	if !ok || f.now.After(entry.expiresAt) {
		delete(f.entries, key)
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(entry.value, nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var removed int64
	for _, key := range keys {
		if _, ok := f.entries[key]; ok {
			delete(f.entries, key)
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}

func TestVerifyConsumesCode(t *testing.T) {
	client := newFakeRedis()
	store := NewStore(client, time.Minute)
	ctx := context.Background()

	if err := store.Put(ctx, "driver@example.com", "123456"); err != nil {
		t.Fatalf("put: %v", err)
	}

	ok, err := store.Verify(ctx, "driver@example.com", "123456")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatal("valid code rejected")
	}

	// A match deletes the key, so the same code cannot be replayed.
	ok, err = store.Verify(ctx, "driver@example.com", "123456")
	if err != nil {
		t.Fatalf("second verify: %v", err)
	}
	if ok {
		t.Fatal("code accepted twice")
	}
}

func TestVerifyWrongCode(t *testing.T) {
	client := newFakeRedis()
	store := NewStore(client, time.Minute)
	ctx := context.Background()

	if err := store.Put(ctx, "driver@example.com", "123456"); err != nil {
		t.Fatalf("put: %v", err)
	}

	ok, err := store.Verify(ctx, "driver@example.com", "654321")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Fatal("wrong code accepted")
	}

	// A mismatch must not consume the stored code.
	ok, err = store.Verify(ctx, "driver@example.com", "123456")
	if err != nil {
		t.Fatalf("retry verify: %v", err)
	}
	if !ok {
		t.Fatal("correct code rejected after a wrong guess")
	}
}

func TestVerifyExpiredCode(t *testing.T) {
	client := newFakeRedis()
	store := NewStore(client, time.Minute)
	ctx := context.Background()

	if err := store.Put(ctx, "driver@example.com", "123456"); err != nil {
		t.Fatalf("put: %v", err)
	}

	client.advance(2 * time.Minute)

	ok, err := store.Verify(ctx, "driver@example.com", "123456")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Fatal("expired code accepted")
	}
}

func TestVerifyUnknownRecipient(t *testing.T) {
	store := NewStore(newFakeRedis(), time.Minute)

	ok, err := store.Verify(context.Background(), "nobody@example.com", "123456")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Fatal("code accepted for unknown recipient")
	}
}

func TestPutReplacesPreviousCode(t *testing.T) {
	client := newFakeRedis()
	store := NewStore(client, time.Minute)
	ctx := context.Background()

	if err := store.Put(ctx, "driver@example.com", "111111"); err != nil {
		t.Fatalf("first put: %v", err)
	}
	if err := store.Put(ctx, "driver@example.com", "222222"); err != nil {
		t.Fatalf("second put: %v", err)
	}

	if ok, _ := store.Verify(ctx, "driver@example.com", "111111"); ok {
		t.Fatal("superseded code accepted")
	}
	if ok, _ := store.Verify(ctx, "driver@example.com", "222222"); !ok {
		t.Fatal("latest code rejected")
	}
}

func TestGenerateCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q, want 6 digits", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("code %q contains non-digit", code)
			}
		}
		seen[code] = true
	}
	// 100 draws from a million values colliding down to a handful would
	// point at a broken generator.
	if len(seen) < 90 {
		t.Errorf("only %d distinct codes in 100 draws", len(seen))
	}
}
