package repository

import (
	"context"
	"os"
	"realitycheck/internal/quota"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// The tests below need live databases and skip otherwise:
// MONGO_TEST_URI (e.g. mongodb://localhost:27017) and POSTGRES_TEST_DSN.

func newTestMongo(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("mongo unavailable: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Skipf("mongo unavailable: %v", err)
	}

	db := client.Database("realitycheck_test_" + uuid.NewString()[:8])
	t.Cleanup(func() {
		db.Drop(context.Background())
		client.Disconnect(context.Background())
	})
	return db
}

func TestQuotaRepoWindow(t *testing.T) {
	db := newTestMongo(t)
	ctx := context.Background()

	repo := NewQuotaRepo(db, quota.Policy{Name: "hourly", Limit: 2, Window: time.Hour}).(*quotaRepo)
	if err := repo.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes() error = %v", err)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	repo.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		if ok, err := repo.Check(ctx, "ip:1"); err != nil || !ok {
			t.Fatalf("Check() = %v, %v; want allowed", ok, err)
		}
		if err := repo.Record(ctx, "ip:1"); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}
	if ok, _ := repo.Check(ctx, "ip:1"); ok {
		t.Error("allowed past limit")
	}

	now = now.Add(time.Hour)
	if ok, _ := repo.Check(ctx, "ip:1"); !ok {
		t.Error("denied after window end")
	}
	if err := repo.Record(ctx, "ip:1"); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if ok, _ := repo.Check(ctx, "ip:1"); !ok {
		t.Error("new window should start at count 1")
	}
}

func TestQuotaRepoConcurrentRecords(t *testing.T) {
	db := newTestMongo(t)
	ctx := context.Background()

	const workers = 8
	repo := NewQuotaRepo(db, quota.Policy{Name: "daily", Limit: workers + 1, Window: time.Hour}).(*quotaRepo)

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Record(ctx, "visitor:v_race")
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	var doc quotaDoc
	if err := repo.collection.FindOne(ctx, bson.M{"_id": repo.id("visitor:v_race")}).Decode(&doc); err != nil {
		t.Fatal(err)
	}
	if doc.Count != workers {
		t.Errorf("count = %d, want %d", doc.Count, workers)
	}
	if doc.Policy != "daily" || !doc.ResetAt.After(time.Now()) {
		t.Errorf("unexpected window: %+v", doc)
	}
}

func TestPGQuotaRepoWindow(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}
	ctx := context.Background()

	db, err := OpenPostgres(ctx, dsn)
	if err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}
	defer db.Close()

	policy := quota.Policy{Name: "test-" + uuid.NewString(), Limit: 2, Window: time.Hour}
	repo := NewPGQuotaRepo(db, policy).(*pgQuotaRepo)
	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}
	t.Cleanup(func() {
		db.Exec(`DELETE FROM quota_counters WHERE key LIKE $1`, policy.Name+":%")
	})

	now := time.Now().UTC()
	repo.now = func() time.Time { return now }

	repo.Record(ctx, "ip:1")
	repo.Record(ctx, "ip:1")
	if ok, err := repo.Check(ctx, "ip:1"); err != nil || ok {
		t.Errorf("Check() = %v, %v; want denied", ok, err)
	}

	now = now.Add(2 * time.Hour)
	if ok, _ := repo.Check(ctx, "ip:1"); !ok {
		t.Error("denied after window end")
	}
	repo.Record(ctx, "ip:1")
	if ok, _ := repo.Check(ctx, "ip:1"); !ok {
		t.Error("window should have reset to 1")
	}
}
