package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/shardhunt/internal/store"
)

// Ledger manages pending rewards and collected shards in the KV store.
type Ledger struct {
	kv   store.KV
	pick func(n int) int
	now  func() time.Time
	log  *zap.Logger
}

// NewLedger creates a Ledger that picks shards uniformly at random.
func NewLedger(kv store.KV, log *zap.Logger) *Ledger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ledger{
		kv:   kv,
		pick: rand.IntN,
		now:  time.Now,
		log:  log,
	}
}

// WithPicker replaces the shard picker. pick(n) must return a value in [0, n).
func (l *Ledger) WithPicker(pick func(n int) int) *Ledger {
	l.pick = pick
	return l
}

// WithClock replaces the time source.
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now
	return l
}

// AppendPending records a new uncollected reward of the given type.
func (l *Ledger) AppendPending(ctx context.Context, typ RewardType, description string) (PendingReward, error) {
	pending, err := l.Pending(ctx)
	if err != nil {
		return PendingReward{}, err
	}

	reward := PendingReward{
		ID:          uuid.NewString(),
		Type:        typ,
		EarnedAt:    l.now().UTC(),
		Description: description,
	}
	pending = append(pending, reward)

	if err := l.writeList(ctx, store.KeyRewards, pending); err != nil {
		return PendingReward{}, err
	}

	l.log.Info("reward pending",
		zap.String("id", reward.ID),
		zap.String("type", string(typ)),
		zap.Int("pending", len(pending)))
	return reward, nil
}

// Pending returns all uncollected rewards, oldest first.
func (l *Ledger) Pending(ctx context.Context) ([]PendingReward, error) {
	raw, ok, err := l.kv.Get(ctx, store.KeyRewards)
	if err != nil {
		return nil, fmt.Errorf("read rewards: %w", err)
	}
	if !ok || raw == "" {
		return []PendingReward{}, nil
	}

	rewards, _, err := compiledSchemas()
	if err != nil {
		return nil, err
	}
	var pending []PendingReward
	if err := decodeList(store.KeyRewards, raw, rewards, &pending); err != nil {
		return nil, err
	}
	if pending == nil {
		pending = []PendingReward{}
	}
	return pending, nil
}

// PendingCounts returns the number of uncollected rewards per type.
func (l *Ledger) PendingCounts(ctx context.Context) (map[RewardType]int, error) {
	pending, err := l.Pending(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[RewardType]int)
	for _, r := range pending {
		counts[r.Type]++
	}
	return counts, nil
}

// Shards returns every collected shard in collection order.
func (l *Ledger) Shards(ctx context.Context) ([]Shard, error) {
	raw, ok, err := l.kv.Get(ctx, store.KeyShards)
	if err != nil {
		return nil, fmt.Errorf("read shards: %w", err)
	}
	if !ok || raw == "" {
		return []Shard{}, nil
	}

	_, shards, err := compiledSchemas()
	if err != nil {
		return nil, err
	}
	var collected []Shard
	if err := decodeList(store.KeyShards, raw, shards, &collected); err != nil {
		return nil, err
	}
	if collected == nil {
		collected = []Shard{}
	}
	return collected, nil
}

// ShardCounts returns the number of collected shards per element.
func (l *Ledger) ShardCounts(ctx context.Context) (map[Shard]int, error) {
	collected, err := l.Shards(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[Shard]int)
	for _, s := range collected {
		counts[s]++
	}
	return counts, nil
}

// Collect consumes the oldest pending reward of typ and converts it into a
// randomly chosen shard. ok is false, and nothing changes, when no reward
// of that type is pending.
func (l *Ledger) Collect(ctx context.Context, typ RewardType) (shard Shard, ok bool, err error) {
	pending, err := l.Pending(ctx)
	if err != nil {
		return "", false, err
	}

	idx := -1
	for i, r := range pending {
		if r.Type == typ {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", false, nil
	}

	collected, err := l.Shards(ctx)
	if err != nil {
		return "", false, err
	}

	consumed := pending[idx]
	pending = append(pending[:idx], pending[idx+1:]...)

	elements := AllShards()
	shard = elements[l.pick(len(elements))]
	collected = append(collected, shard)

	if err := l.writeList(ctx, store.KeyRewards, pending); err != nil {
		return "", false, err
	}
	if err := l.writeList(ctx, store.KeyShards, collected); err != nil {
		return "", false, err
	}

	l.log.Info("shard collected",
		zap.String("reward_id", consumed.ID),
		zap.String("type", string(typ)),
		zap.String("shard", string(shard)))
	return shard, true, nil
}

// Reset clears pending rewards, collected shards and all task cooldowns.
// Completion flags are left alone, so unlocked tasks stay unlocked.
func (l *Ledger) Reset(ctx context.Context) error {
	if err := l.writeList(ctx, store.KeyRewards, []PendingReward{}); err != nil {
		return err
	}
	if err := l.writeList(ctx, store.KeyShards, []Shard{}); err != nil {
		return err
	}
	for _, key := range store.CooldownKeys() {
		if err := l.kv.Remove(ctx, key); err != nil {
			return fmt.Errorf("clear %s: %w", key, err)
		}
	}
	l.log.Info("wallet reset")
	return nil
}

// Summary returns per-type pending counts and per-element shard counts.
func (l *Ledger) Summary(ctx context.Context) (*Summary, error) {
	pending, err := l.PendingCounts(ctx)
	if err != nil {
		return nil, err
	}
	shards, err := l.ShardCounts(ctx)
	if err != nil {
		return nil, err
	}

	sum := &Summary{Pending: pending, Shards: shards}
	for _, c := range pending {
		sum.TotalPending += c
	}
	for _, c := range shards {
		sum.TotalShards += c
	}
	return sum, nil
}

func (l *Ledger) writeList(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := l.kv.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
