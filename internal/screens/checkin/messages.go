package checkin

import (
	"time"

	"github.com/abhisek/shardhunt/internal/quest"
)

// mountedMsg is sent once the task has been mounted against the store.
type mountedMsg struct {
	Task   *quest.CheckIn
	Status quest.Status
	Err    error
}

// statusMsg carries a refreshed task status.
type statusMsg struct {
	Status quest.Status
	Err    error
}

// attemptMsg is sent when a check-in attempt finishes.
type attemptMsg struct {
	Result *quest.CheckInResult
	Err    error
}

// tickMsg is sent every second to advance the cooldown countdown.
type tickMsg time.Time
