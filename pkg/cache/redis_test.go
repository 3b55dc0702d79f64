package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

// Set BOOKRACK_TEST_REDIS (for example redis://localhost:6379/15) to run.
func TestRedisCache(t *testing.T) {
	url := os.Getenv("BOOKRACK_TEST_REDIS")
	if url == "" {
		t.Skip("BOOKRACK_TEST_REDIS not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, url)
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()

	key := "bookrack-test:" + uuid.NewString()
	if _, hit, err := c.Get(ctx, key); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, key, []byte("png"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(got) != "png" {
		t.Fatalf("Get = %q, hit %v, err %v", got, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("entry should be gone after Delete")
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "not-a-url://"); err == nil {
		t.Error("expected error for invalid url")
	}
}
