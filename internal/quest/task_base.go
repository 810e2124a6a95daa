package quest

import (
	"context"
	"sync"
	"time"

	"github.com/abhisek/shardhunt/internal/cooldown"
	"github.com/abhisek/shardhunt/internal/wallet"
)

// Status is a point-in-time view of a task.
type Status struct {
	Task             TaskID        `json:"task"`
	Name             string        `json:"name"`
	State            State         `json:"state"`
	Unlocked         bool          `json:"unlocked"`
	Completed        bool          `json:"completed"`
	Remaining        time.Duration `json:"-"`
	RemainingSeconds int           `json:"remainingSeconds"`
	Message          string        `json:"message,omitempty"`
}

// taskBase holds the state machine shared by all tasks. Every method that
// touches state runs under mu; the *Locked helpers expect mu held.
type taskBase struct {
	mu      sync.Mutex
	id      TaskID
	em      *Emitter
	gate    *Gate
	state   State
	message string

	// onExpire, when set, runs as a Success state expires back to Idle.
	onExpire func()
}

func (b *taskBase) init(id TaskID, em *Emitter, gate *Gate) {
	b.id = id
	b.em = em
	b.gate = gate
	b.state = StateIdle
}

// ID returns the task identifier.
func (b *taskBase) ID() TaskID { return b.id }

// State returns the current lifecycle state.
func (b *taskBase) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Message returns the last message for the player.
func (b *taskBase) Message() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.message
}

// Unlocked reports whether the mount-time gate allows attempts.
func (b *taskBase) Unlocked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gate.Unlocked(b.id)
}

// Refresh reloads the gate from the store without resetting task state.
func (b *taskBase) Refresh(ctx context.Context) error {
	g, err := LoadGate(ctx, b.em.kv)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.gate = g
	b.mu.Unlock()
	return nil
}

// Tick re-evaluates the cooldown. Call it once per second while mounted.
func (b *taskBase) Tick(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	rem, err := b.em.Remaining(ctx, b.id)
	if err != nil {
		return err
	}
	b.tickLocked(rem)
	return nil
}

// Status returns the task's current view, ticking it first.
func (b *taskBase) Status(ctx context.Context) (Status, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	rem, err := b.em.Remaining(ctx, b.id)
	if err != nil {
		return Status{}, err
	}
	b.tickLocked(rem)
	return Status{
		Task:             b.id,
		Name:             b.id.DisplayName(),
		State:            b.state,
		Unlocked:         b.gate.Unlocked(b.id),
		Completed:        b.gate.Completed(b.id),
		Remaining:        rem,
		RemainingSeconds: cooldown.Seconds(rem),
		Message:          b.message,
	}, nil
}

func (b *taskBase) tickLocked(rem time.Duration) {
	switch {
	case rem > 0 && b.state == StateIdle:
		b.state = StateCooldown
	case rem == 0 && b.state == StateCooldown:
		b.state = StateIdle
		b.message = ""
	case rem == 0 && b.state == StateSuccess && b.onExpire != nil:
		b.state = StateIdle
		b.message = ""
		b.onExpire()
	}
}

// remountLocked resets the state machine as if the task view had just
// been opened.
func (b *taskBase) remountLocked(ctx context.Context) error {
	g, err := LoadGate(ctx, b.em.kv)
	if err != nil {
		return err
	}
	rem, err := b.em.Remaining(ctx, b.id)
	if err != nil {
		return err
	}
	b.gate = g
	b.state = StateIdle
	b.message = ""
	b.tickLocked(rem)
	return nil
}

// beginLocked moves Idle to InProgress if the gate and cooldown allow it.
func (b *taskBase) beginLocked(ctx context.Context) error {
	if !b.gate.Unlocked(b.id) {
		b.message = Message(ErrLocked)
		return ErrLocked
	}
	if b.state == StateInProgress {
		return ErrBusy
	}
	rem, err := b.em.Remaining(ctx, b.id)
	if err != nil {
		return err
	}
	if rem > 0 {
		cerr := &CooldownError{Remaining: rem}
		b.state = StateCooldown
		b.message = Message(cerr)
		return cerr
	}
	b.state = StateInProgress
	b.message = ""
	return nil
}

func (b *taskBase) failLocked(err error) {
	b.state = StateIdle
	b.message = Message(err)
}

func (b *taskBase) succeedLocked(ctx context.Context, message string) (*wallet.PendingReward, error) {
	reward, err := b.em.Emit(ctx, b.id)
	if err != nil {
		b.state = StateIdle
		b.message = Message(err)
		return nil, err
	}
	// Gates are snapshots; take a copy rather than writing through.
	b.gate = b.gate.withCompleted(b.id)
	b.state = StateSuccess
	b.message = message
	return &reward, nil
}
