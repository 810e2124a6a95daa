package video

import (
	"time"

	"github.com/abhisek/shardhunt/internal/quest"
)

// mountedMsg is sent once the task has been mounted against the store.
type mountedMsg struct {
	Task   *quest.VideoWatch
	Status quest.Status
	Err    error
}

// statusMsg carries a refreshed task status.
type statusMsg struct {
	Status quest.Status
	Err    error
}

// progressMsg is sent after a playback operation.
type progressMsg struct {
	Progress quest.Progress
	Err      error
}

// frameMsg is sent at the playback frame rate.
type frameMsg time.Time
