package quest

import (
	"context"
	"time"

	"github.com/abhisek/shardhunt/internal/wallet"
)

// playbackSlack is how far total playback may run ahead of the wall clock
// since Start.
const playbackSlack = time.Second

// VideoWatch is the playback task: succeed once the position naturally
// reaches the threshold. Forward seeks past the furthest watched position
// are clamped until then, and so is playback that outruns the clock.
type VideoWatch struct {
	taskBase
	threshold time.Duration
	length    time.Duration

	playing  bool
	position time.Duration
	highest  time.Duration
	rewarded bool

	// startedAt and played bound Advance: before the threshold, the sum
	// of advances may not exceed the time since Start plus playbackSlack.
	startedAt time.Time
	played    time.Duration
}

// Progress is the playback state after a video operation.
type Progress struct {
	Position  time.Duration         `json:"-"`
	Highest   time.Duration         `json:"-"`
	Length    time.Duration         `json:"-"`
	Threshold time.Duration         `json:"-"`
	Playing   bool                  `json:"playing"`
	Rewarded  bool                  `json:"rewarded"`
	Reward    *wallet.PendingReward `json:"reward,omitempty"`
}

func newVideoWatch(em *Emitter, gate *Gate, cfg Config) *VideoWatch {
	v := &VideoWatch{
		threshold: cfg.VideoThreshold,
		length:    cfg.VideoLength,
	}
	v.init(TaskVideo, em, gate)
	return v
}

// Remount resets playback as if freshly opened.
func (v *VideoWatch) Remount(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resetLocked()
	return v.remountLocked(ctx)
}

// Start begins playback from zero. It is refused while locked or cooling
// down.
func (v *VideoWatch) Start(ctx context.Context) (Progress, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.playing {
		return v.progressLocked(nil), ErrBusy
	}
	if err := v.beginLocked(ctx); err != nil {
		return v.progressLocked(nil), err
	}
	v.resetLocked()
	v.playing = true
	v.startedAt = v.em.Now()
	return v.progressLocked(nil), nil
}

// Advance plays d more of the video. Reaching the threshold emits the
// reward once per playback. Until then, an advance that would put total
// playback ahead of the wall clock is rejected like a forward seek and
// leaves the position unchanged.
func (v *VideoWatch) Advance(ctx context.Context, d time.Duration) (Progress, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.playing {
		return v.progressLocked(nil), ErrNotStarted
	}
	if d < 0 {
		d = 0
	}
	if v.highest < v.threshold {
		budget := v.em.Now().Sub(v.startedAt) + playbackSlack
		if v.played+d > budget {
			v.message = Message(ErrSeekRejected)
			return v.progressLocked(nil), ErrSeekRejected
		}
	}
	v.played += d

	v.position = min(v.position+d, v.length)
	if v.position > v.highest {
		v.highest = v.position
	}

	var reward *wallet.PendingReward
	if !v.rewarded && v.position >= v.threshold {
		r, err := v.succeedLocked(ctx, "Congrats! You've unlocked a new Elemental Shard. Head back to your vault to collect it.")
		if err != nil {
			v.playing = false
			return v.progressLocked(nil), err
		}
		v.rewarded = true
		reward = r
	}

	if v.position >= v.length {
		v.playing = false
		if !v.rewarded {
			v.state = StateIdle
		}
	}
	return v.progressLocked(reward), nil
}

// Seek moves the position to target. A forward seek beyond the furthest
// naturally reached position is clamped back while that position is below
// the threshold.
func (v *VideoWatch) Seek(_ context.Context, target time.Duration) (Progress, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.playing {
		return v.progressLocked(nil), ErrNotStarted
	}
	target = max(0, min(target, v.length))

	if target > v.highest && v.highest < v.threshold {
		v.position = v.highest
		v.message = Message(ErrSeekRejected)
		return v.progressLocked(nil), ErrSeekRejected
	}
	v.position = target
	return v.progressLocked(nil), nil
}

// Stop ends playback. An unrewarded playback returns the task to Idle.
func (v *VideoWatch) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.playing = false
	if v.state == StateInProgress {
		v.state = StateIdle
	}
}

// Progress returns the current playback state.
func (v *VideoWatch) Progress() Progress {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.progressLocked(nil)
}

func (v *VideoWatch) resetLocked() {
	v.playing = false
	v.position = 0
	v.highest = 0
	v.rewarded = false
	v.played = 0
	v.startedAt = time.Time{}
}

func (v *VideoWatch) progressLocked(reward *wallet.PendingReward) Progress {
	return Progress{
		Position:  v.position,
		Highest:   v.highest,
		Length:    v.length,
		Threshold: v.threshold,
		Playing:   v.playing,
		Rewarded:  v.rewarded,
		Reward:    reward,
	}
}
