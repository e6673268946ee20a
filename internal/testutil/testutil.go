// Package testutil provides test backends, builders and Redis helpers for the
// storefront admin console.
package testutil

import (
	"context"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultTestRedisAddr = "localhost:6379"
	// defaultTestRedisDB keeps test data away from a developer's DB 0.
	defaultTestRedisDB = 15
)

// requireRedis turns a missing Redis into a failure instead of a skip, for CI.
func requireRedis() bool {
	switch strings.ToLower(os.Getenv("TEST_REQUIRE_REDIS")) {
	case "1", "true", "yes", "y":
		return true
	default:
		return false
	}
}

func testRedisDB(t testing.TB) int {
	v := os.Getenv("TEST_REDIS_DB")
	if v == "" {
		return defaultTestRedisDB
	}
	db, err := strconv.Atoi(v)
	if err != nil || db < 0 {
		t.Logf("ignoring invalid TEST_REDIS_DB=%q", v)
		return defaultTestRedisDB
	}
	return db
}

// SetupTestRedis returns a client on an empty test database at REDIS_ADDR
// (default localhost:6379). The test is skipped when Redis does not answer,
// unless TEST_REQUIRE_REDIS is set. Callers close the client.
func SetupTestRedis(t testing.TB) *redis.Client {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = defaultTestRedisAddr
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: testRedisDB(t)})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		if requireRedis() {
			t.Fatalf("redis not available at %s: %v", addr, err)
		}
		t.Skipf("redis not available at %s: %v", addr, err)
	}
	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("flush test redis db: %v", err)
	}
	return client
}
