package cache

import (
	"context"
	"os"
	"realitycheck/internal/quota"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Requires a running Redis; set REDIS_TEST_ADDR (e.g. localhost:6379).
func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestQuotaCache(t *testing.T) {
	client := newTestRedis(t)
	ctx := context.Background()

	policy := quota.Policy{Name: "test-" + uuid.NewString(), Limit: 2, Window: time.Minute}
	c := NewQuotaCache(client, policy)

	for i := 0; i < 2; i++ {
		ok, err := c.Check(ctx, "ip:1.1.1.1")
		if err != nil || !ok {
			t.Fatalf("Check() = %v, %v; want allowed", ok, err)
		}
		if err := c.Record(ctx, "ip:1.1.1.1"); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	if ok, _ := c.Check(ctx, "ip:1.1.1.1"); ok {
		t.Error("allowed past limit")
	}

	ttl, err := client.TTL(ctx, "quota:"+policy.Name+":ip:1.1.1.1").Result()
	if err != nil {
		t.Fatal(err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("ttl = %v, want within window", ttl)
	}
}

func TestQuotaCacheRecordSetsTTL(t *testing.T) {
	client := newTestRedis(t)
	ctx := context.Background()

	policy := quota.Policy{Name: "ttl-" + uuid.NewString(), Limit: 5, Window: time.Minute}
	c := NewQuotaCache(client, policy)
	k := "quota:" + policy.Name + ":visitor:v_1"

	if err := c.Record(ctx, "visitor:v_1"); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	ttl, err := client.TTL(ctx, k).Result()
	if err != nil {
		t.Fatal(err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Fatalf("ttl after first Record = %v, want within window", ttl)
	}

	// Shorten the live window; a later Record must not extend it again
	if err := client.Expire(ctx, k, 10*time.Second).Err(); err != nil {
		t.Fatal(err)
	}
	if err := c.Record(ctx, "visitor:v_1"); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	ttl, err = client.TTL(ctx, k).Result()
	if err != nil {
		t.Fatal(err)
	}
	if ttl <= 0 || ttl > 10*time.Second {
		t.Errorf("ttl after second Record = %v, want unchanged live window", ttl)
	}
	if n, _ := client.Get(ctx, k).Int(); n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
}

func TestQuotaCacheRecordCancelledContext(t *testing.T) {
	client := newTestRedis(t)

	policy := quota.Policy{Name: "cancel-" + uuid.NewString(), Limit: 5, Window: time.Minute}
	c := NewQuotaCache(client, policy)
	k := "quota:" + policy.Name + ":ip:2.2.2.2"

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = c.Record(ctx, "ip:2.2.2.2")

	// Either both commands ran or neither did: never a counter without expiry
	n, err := client.Exists(context.Background(), k).Result()
	if err != nil {
		t.Fatal(err)
	}
	if n == 1 {
		if ttl := client.TTL(context.Background(), k).Val(); ttl <= 0 {
			t.Errorf("counter exists without ttl (%v)", ttl)
		}
	}
}
