package quest

import (
	"context"
	"fmt"

	"github.com/abhisek/shardhunt/internal/store"
)

// Gate is a snapshot of completion flags taken when a task view mounts.
// It does not observe later writes; remount to refresh it.
type Gate struct {
	completed map[TaskID]bool
}

// LoadGate reads every task's completion flag once. Any non-empty value
// counts as set.
func LoadGate(ctx context.Context, kv store.KV) (*Gate, error) {
	completed := make(map[TaskID]bool, len(unlockOrder))
	for _, t := range unlockOrder {
		v, ok, err := kv.Get(ctx, t.CompletedKey())
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", t.CompletedKey(), err)
		}
		completed[t] = ok && v != ""
	}
	return &Gate{completed: completed}, nil
}

// NewGate builds a Gate from explicit completion state.
func NewGate(completed map[TaskID]bool) *Gate {
	c := make(map[TaskID]bool, len(completed))
	for k, v := range completed {
		c[k] = v
	}
	return &Gate{completed: c}
}

// Completed reports whether t was ever completed.
func (g *Gate) Completed(t TaskID) bool {
	return g.completed[t]
}

// Unlocked reports whether t may be attempted.
func (g *Gate) Unlocked(t TaskID) bool {
	prereq, ok := Prerequisite(t)
	if !ok {
		return true
	}
	return g.completed[prereq]
}

// withCompleted returns a copy of g with t marked completed.
func (g *Gate) withCompleted(t TaskID) *Gate {
	c := NewGate(g.completed)
	c.completed[t] = true
	return c
}
