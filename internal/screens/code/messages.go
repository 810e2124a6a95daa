package code

import (
	"time"

	"github.com/abhisek/shardhunt/internal/quest"
	"github.com/abhisek/shardhunt/internal/wallet"
)

// mountedMsg is sent once the task has been mounted with a fresh secret.
type mountedMsg struct {
	Task   *quest.CodeScan
	Status quest.Status
	QR     string
	Err    error
}

// statusMsg carries a refreshed task status.
type statusMsg struct {
	Status quest.Status
	Err    error
}

// submitMsg is sent when a submitted code has been checked.
type submitMsg struct {
	Reward *wallet.PendingReward
	Err    error
}

// revealMsg is sent when the secret has been revealed.
type revealMsg struct {
	Secret string
	Err    error
}

// tickMsg is sent every second to advance the cooldown countdown.
type tickMsg time.Time
