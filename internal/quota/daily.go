package quota

import (
	"context"
	"time"
)

// DailyLimiter rolls keys over at UTC midnight by suffixing the date
type DailyLimiter struct {
	inner Limiter
	now   func() time.Time
}

// Daily wraps a limiter whose window is at least one day
func Daily(inner Limiter) *DailyLimiter {
	return &DailyLimiter{inner: inner, now: time.Now}
}

func (d *DailyLimiter) Check(ctx context.Context, key string) (bool, error) {
	return d.inner.Check(ctx, d.dayKey(key))
}

func (d *DailyLimiter) Record(ctx context.Context, key string) error {
	return d.inner.Record(ctx, d.dayKey(key))
}

func (d *DailyLimiter) dayKey(key string) string {
	return key + ":" + d.now().UTC().Format("2006-01-02")
}
