// Package cooldown tracks how long an action must wait after its last success.
package cooldown

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/shardhunt/internal/store"
)

// Remaining returns max(0, d - (now - last)).
func Remaining(now, last time.Time, d time.Duration) time.Duration {
	rem := d - now.Sub(last)
	if rem < 0 {
		return 0
	}
	return rem
}

// Format renders d as MM:SS, rounding seconds up.
func Format(d time.Duration) string {
	s := Seconds(d)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

// Seconds returns d in whole seconds, rounded up.
func Seconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds()))
}

// Tracker binds a cooldown duration to the KV key holding the last
// completion time (milliseconds since the Unix epoch).
type Tracker struct {
	kv       store.KV
	key      string
	duration time.Duration
	now      func() time.Time
	log      *zap.Logger
}

// NewTracker creates a Tracker reading and writing key.
func NewTracker(kv store.KV, key string, d time.Duration, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{
		kv:       kv,
		key:      key,
		duration: d,
		now:      time.Now,
		log:      log,
	}
}

// WithClock replaces the time source. Used by tests.
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

// Key returns the KV key this tracker reads.
func (t *Tracker) Key() string { return t.key }

// Duration returns the configured cooldown length.
func (t *Tracker) Duration() time.Duration { return t.duration }

// Last returns the stored completion time. An absent or unparseable
// value reads as the Unix epoch.
func (t *Tracker) Last(ctx context.Context) (time.Time, error) {
	raw, ok, err := t.kv.Get(ctx, t.key)
	if err != nil {
		return time.Time{}, fmt.Errorf("read %s: %w", t.key, err)
	}
	if !ok {
		return time.UnixMilli(0), nil
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		t.log.Warn("ignoring malformed cooldown timestamp",
			zap.String("key", t.key), zap.String("value", raw))
		return time.UnixMilli(0), nil
	}
	return time.UnixMilli(ms), nil
}

// Remaining returns the wait left at the tracker's current time.
func (t *Tracker) Remaining(ctx context.Context) (time.Duration, error) {
	return t.RemainingAt(ctx, t.now())
}

// RemainingAt returns the wait left at now.
func (t *Tracker) RemainingAt(ctx context.Context, now time.Time) (time.Duration, error) {
	last, err := t.Last(ctx)
	if err != nil {
		return 0, err
	}
	return Remaining(now, last, t.duration), nil
}

// Mark records at as the last completion time.
func (t *Tracker) Mark(ctx context.Context, at time.Time) error {
	if err := t.kv.Set(ctx, t.key, strconv.FormatInt(at.UnixMilli(), 10)); err != nil {
		return fmt.Errorf("write %s: %w", t.key, err)
	}
	return nil
}

// Clear forgets the last completion, ending any active cooldown.
func (t *Tracker) Clear(ctx context.Context) error {
	if err := t.kv.Remove(ctx, t.key); err != nil {
		return fmt.Errorf("clear %s: %w", t.key, err)
	}
	return nil
}
