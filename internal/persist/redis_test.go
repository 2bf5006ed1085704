package persist

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// Requires a Redis server; set TASKFLOW_TEST_REDIS or run one on localhost:6379.
func setupRedisKV(t *testing.T) *RedisKV {
	t.Helper()
	addr := os.Getenv("TASKFLOW_TEST_REDIS")
	if addr == "" {
		addr = "localhost:6379"
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	prefix := "taskflow-test:" + t.Name() + ":"
	kv, err := DialRedis(ctx, addr, prefix)
	if err != nil {
		t.Skipf("Redis not available at %s: %v", addr, err)
	}
	t.Cleanup(func() {
		kv.client.Del(context.Background(), prefix+TasksKey, prefix+CategoriesKey)
		kv.Close()
	})
	return kv
}

func TestRedisKVGetMissing(t *testing.T) {
	kv := setupRedisKV(t)
	_, ok, err := kv.Get(TasksKey)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected missing key")
	}
}

func TestRedisKVAdapterRoundTrip(t *testing.T) {
	kv := setupRedisKV(t)
	tasks, cats := sampleBoard()
	a := NewAdapter(kv, nil)
	if err := a.Save(tasks, cats); err != nil {
		t.Fatal(err)
	}
	got, gotCats := a.Load()
	if len(got) != len(tasks) || len(gotCats) != len(cats) {
		t.Fatalf("unexpected sizes %d %d", len(got), len(gotCats))
	}
}

func TestNewRedisKVDefaultTimeout(t *testing.T) {
	kv := NewRedisKV(redis.NewClient(&redis.Options{Addr: "localhost:0"}), "p:", 0)
	defer kv.Close()
	if kv.timeout != 2*time.Second {
		t.Fatalf("timeout = %v", kv.timeout)
	}
}
