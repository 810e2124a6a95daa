package quest

import (
	"context"
	"testing"
	"time"

	"github.com/abhisek/shardhunt/internal/store"
	"github.com/abhisek/shardhunt/internal/wallet"
)

var testStart = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

const testSecret = "ARENA123"

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	kv     *store.MemoryKV
	ledger *wallet.Ledger
	svc    *Service
	clock  *fakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	kv := store.NewMemoryKV()
	clock := &fakeClock{t: testStart}
	ledger := wallet.NewLedger(kv, nil).WithPicker(func(int) int { return 0 })
	svc := NewService(kv, ledger, DefaultConfig(), nil).
		WithClock(clock.Now).
		WithSecretSource(func(int) string { return testSecret })
	return &fixture{kv: kv, ledger: ledger, svc: svc, clock: clock}
}

func (f *fixture) setFlag(t *testing.T, id TaskID) {
	t.Helper()
	if err := f.kv.Set(context.Background(), id.CompletedKey(), store.FlagSet); err != nil {
		t.Fatalf("set flag: %v", err)
	}
}

func (f *fixture) pendingCount(t *testing.T, typ wallet.RewardType) int {
	t.Helper()
	counts, err := f.ledger.PendingCounts(context.Background())
	if err != nil {
		t.Fatalf("pending counts: %v", err)
	}
	return counts[typ]
}
