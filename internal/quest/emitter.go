package quest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/shardhunt/internal/cooldown"
	"github.com/abhisek/shardhunt/internal/store"
	"github.com/abhisek/shardhunt/internal/wallet"
)

// Emitter persists the outcome of a successful task: a pending reward, the
// completion flag, and the cooldown timestamp.
type Emitter struct {
	kv       store.KV
	ledger   *wallet.Ledger
	trackers map[TaskID]*cooldown.Tracker
	now      func() time.Time
	log      *zap.Logger
}

// NewEmitter creates an Emitter with one cooldown tracker per task.
func NewEmitter(kv store.KV, ledger *wallet.Ledger, d time.Duration, log *zap.Logger) *Emitter {
	if log == nil {
		log = zap.NewNop()
	}
	trackers := make(map[TaskID]*cooldown.Tracker, len(unlockOrder))
	for _, t := range unlockOrder {
		trackers[t] = cooldown.NewTracker(kv, t.CooldownKey(), d, log)
	}
	return &Emitter{
		kv:       kv,
		ledger:   ledger,
		trackers: trackers,
		now:      time.Now,
		log:      log,
	}
}

// WithClock replaces the time source.
func (e *Emitter) WithClock(now func() time.Time) *Emitter {
	e.now = now
	for _, tr := range e.trackers {
		tr.WithClock(now)
	}
	return e
}

// Now returns the emitter's current time.
func (e *Emitter) Now() time.Time { return e.now() }

// Remaining returns the cooldown left for id.
func (e *Emitter) Remaining(ctx context.Context, id TaskID) (time.Duration, error) {
	return e.trackers[id].RemainingAt(ctx, e.now())
}

// Emit records a success of id. The cooldown timestamp is written first so
// a failure later on can never leave a reward without a cooldown. If the
// reward itself cannot be written the cooldown is rolled back.
func (e *Emitter) Emit(ctx context.Context, id TaskID) (wallet.PendingReward, error) {
	tracker := e.trackers[id]
	if err := tracker.Mark(ctx, e.now()); err != nil {
		return wallet.PendingReward{}, err
	}

	reward, err := e.ledger.AppendPending(ctx, id.RewardType(), id.RewardDescription())
	if err != nil {
		if cerr := tracker.Clear(ctx); cerr != nil {
			e.log.Error("roll back cooldown", zap.String("task", string(id)), zap.Error(cerr))
		}
		return wallet.PendingReward{}, fmt.Errorf("emit %s reward: %w", id, err)
	}
	if err := e.kv.Set(ctx, id.CompletedKey(), store.FlagSet); err != nil {
		return wallet.PendingReward{}, fmt.Errorf("set %s: %w", id.CompletedKey(), err)
	}

	e.log.Info("task completed",
		zap.String("task", string(id)),
		zap.String("reward_id", reward.ID))
	return reward, nil
}
