package quota

import (
	"context"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func TestMemoryLimiterWindow(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}

	l := NewMemoryLimiter(Policy{Name: "hourly", Limit: 3, Window: time.Hour})
	l.now = clock.Now

	for i := 0; i < 3; i++ {
		ok, err := l.Check(ctx, "ip:1.1.1.1")
		if err != nil || !ok {
			t.Fatalf("request %d: Check() = %v, %v; want allowed", i, ok, err)
		}
		if err := l.Record(ctx, "ip:1.1.1.1"); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	if ok, _ := l.Check(ctx, "ip:1.1.1.1"); ok {
		t.Error("fourth request allowed, want denied")
	}
	if ok, _ := l.Check(ctx, "ip:2.2.2.2"); !ok {
		t.Error("other key denied, want allowed")
	}

	clock.Advance(59 * time.Minute)
	if ok, _ := l.Check(ctx, "ip:1.1.1.1"); ok {
		t.Error("allowed before window end")
	}

	clock.Advance(time.Minute)
	if ok, _ := l.Check(ctx, "ip:1.1.1.1"); !ok {
		t.Error("denied after window end, want reset")
	}
}

func TestMemoryLimiterCheckDoesNotCount(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLimiter(Policy{Limit: 1, Window: time.Minute})

	for i := 0; i < 5; i++ {
		if ok, _ := l.Check(ctx, "k"); !ok {
			t.Fatalf("Check %d denied without any Record", i)
		}
	}
	l.Record(ctx, "k")
	if ok, _ := l.Check(ctx, "k"); ok {
		t.Error("allowed after reaching limit")
	}
}

func TestMemoryLimiterConcurrent(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLimiter(Policy{Limit: 1000, Window: time.Hour})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				l.Check(ctx, "shared")
				l.Record(ctx, "shared")
			}
		}()
	}
	wg.Wait()

	if got := l.windows["shared"].count; got != 500 {
		t.Errorf("count = %d, want 500", got)
	}
}

func TestMemoryLimiterSweep(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Unix(0, 0)}
	l := NewMemoryLimiter(Policy{Limit: 1, Window: time.Second})
	l.now = clock.Now

	for i := 0; i < 1100; i++ {
		l.Record(ctx, string(rune('a'+i%26))+time.Duration(i).String())
	}
	clock.Advance(2 * time.Second)
	l.Record(ctx, "fresh")

	if len(l.windows) != 1 {
		t.Errorf("windows = %d after sweep, want 1", len(l.windows))
	}
}

func TestDailyKeysRollOver(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2024, 5, 1, 23, 30, 0, 0, time.UTC)}

	inner := NewMemoryLimiter(Policy{Name: "daily", Limit: 2, Window: 24 * time.Hour})
	d := Daily(inner)
	d.now = clock.Now

	d.Record(ctx, "visitor:abc")
	d.Record(ctx, "visitor:abc")
	if ok, _ := d.Check(ctx, "visitor:abc"); ok {
		t.Error("allowed after daily limit")
	}

	if got := d.dayKey("visitor:abc"); got != "visitor:abc:2024-05-01" {
		t.Errorf("dayKey() = %q", got)
	}

	clock.Advance(time.Hour)
	if got := d.dayKey("visitor:abc"); got != "visitor:abc:2024-05-02" {
		t.Errorf("dayKey() after midnight = %q", got)
	}
	if ok, _ := d.Check(ctx, "visitor:abc"); !ok {
		t.Error("denied on a new UTC day")
	}
}

func TestDailyUsesUTC(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	d := Daily(NewMemoryLimiter(Policy{Limit: 1, Window: 24 * time.Hour}))
	d.now = func() time.Time { return time.Date(2024, 5, 2, 8, 0, 0, 0, tokyo) }

	if got := d.dayKey("k"); got != "k:2024-05-01" {
		t.Errorf("dayKey() = %q, want UTC date", got)
	}
}
