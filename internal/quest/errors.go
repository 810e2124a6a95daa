package quest

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/shardhunt/internal/cooldown"
)

var (
	// ErrPermissionDenied means the position source refused access.
	ErrPermissionDenied = errors.New("location permission denied")
	// ErrSensorUnavailable means no position could be obtained.
	ErrSensorUnavailable = errors.New("location unavailable")
	// ErrWrongCode means the submitted code does not match the secret.
	ErrWrongCode = errors.New("incorrect code")
	// ErrSeekRejected means a forward seek was clamped back.
	ErrSeekRejected = errors.New("seek ahead rejected")
	// ErrLocked means the task's prerequisite has not been completed.
	ErrLocked = errors.New("task locked")
	// ErrBusy means an attempt is already running on this task.
	ErrBusy = errors.New("task busy")
	// ErrNotStarted means playback controls were used before Start.
	ErrNotStarted = errors.New("playback not started")
)

// OutOfRangeError reports a check-in too far from the target.
type OutOfRangeError struct {
	Distance float64 // meters
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("out of range: %.1f km from target", e.Distance/1000)
}

// CooldownError reports an attempt made before the cooldown expired.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("cooldown active: %ds remaining", cooldown.Seconds(e.Remaining))
}

// Message maps a task error to the text shown to the player.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var oor *OutOfRangeError
	var cd *CooldownError
	switch {
	case errors.As(err, &cd):
		return fmt.Sprintf("Wait %ds before trying again.", cooldown.Seconds(cd.Remaining))
	case errors.As(err, &oor):
		return fmt.Sprintf("The Sacred Arena lies %.1f km beyond your reach. Journey closer to claim your Shard.", oor.Distance/1000)
	case errors.Is(err, ErrPermissionDenied):
		return "Location permission denied."
	case errors.Is(err, ErrSensorUnavailable):
		return "Unable to get location."
	case errors.Is(err, ErrWrongCode):
		return "Incorrect code. Please try again."
	case errors.Is(err, ErrSeekRejected):
		return "Finish watching naturally to earn the reward."
	case errors.Is(err, ErrLocked):
		return "Complete the previous task to unlock this one."
	case errors.Is(err, ErrBusy):
		return "Hold on, still working on the last attempt."
	case errors.Is(err, ErrNotStarted):
		return "Press play to start the video."
	default:
		return "Something went wrong: " + err.Error()
	}
}

// IsOutcome reports whether err is a gameplay result the player should
// see, as opposed to a storage or programming failure.
func IsOutcome(err error) bool {
	var oor *OutOfRangeError
	var cd *CooldownError
	if errors.As(err, &oor) || errors.As(err, &cd) {
		return true
	}
	for _, target := range []error{
		ErrPermissionDenied, ErrSensorUnavailable, ErrWrongCode,
		ErrSeekRejected, ErrLocked, ErrBusy, ErrNotStarted,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
