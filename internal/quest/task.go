// Package quest implements the three hunt tasks, their unlock order, and
// the reward emission that follows a successful task.
package quest

import (
	"github.com/abhisek/shardhunt/internal/store"
	"github.com/abhisek/shardhunt/internal/wallet"
)

// TaskID identifies one of the hunt tasks.
type TaskID string

const (
	TaskLocation TaskID = "location"
	TaskVideo    TaskID = "video"
	TaskCode     TaskID = "code"
)

// unlockOrder is the linear dependency list: each task requires the one
// before it to have been completed at least once.
var unlockOrder = []TaskID{TaskLocation, TaskVideo, TaskCode}

// AllTasks returns the tasks in unlock order.
func AllTasks() []TaskID {
	out := make([]TaskID, len(unlockOrder))
	copy(out, unlockOrder)
	return out
}

// ParseTaskID validates s as a task id.
func ParseTaskID(s string) (TaskID, bool) {
	for _, t := range unlockOrder {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Prerequisite returns the task that must be completed before t.
// ok is false for the first task in the order.
func Prerequisite(t TaskID) (prereq TaskID, ok bool) {
	for i, id := range unlockOrder {
		if id == t && i > 0 {
			return unlockOrder[i-1], true
		}
	}
	return "", false
}

// DisplayName returns a human-readable label for the task.
func (t TaskID) DisplayName() string {
	switch t {
	case TaskLocation:
		return "Step into the Arena"
	case TaskVideo:
		return "Watch the Chronicle"
	case TaskCode:
		return "Decode the Sigil"
	default:
		return string(t)
	}
}

// Blurb returns the one-line description shown in task lists.
func (t TaskID) Blurb() string {
	switch t {
	case TaskLocation:
		return "Check in at the stadium to earn a shard."
	case TaskVideo:
		return "Watch 15 seconds of footage without skipping ahead."
	case TaskCode:
		return "Scan the QR and enter its secret code."
	default:
		return ""
	}
}

// RewardType returns the pending-reward type this task emits.
func (t TaskID) RewardType() wallet.RewardType {
	switch t {
	case TaskLocation:
		return wallet.RewardCheckIn
	case TaskVideo:
		return wallet.RewardVideoWatch
	default:
		return wallet.RewardCodeScan
	}
}

// RewardDescription returns the description stored with emitted rewards.
func (t TaskID) RewardDescription() string {
	switch t {
	case TaskLocation:
		return "Checked in at Allianz Arena"
	case TaskVideo:
		return "Watched 15 seconds of video"
	default:
		return "Scanned QR and entered secret code"
	}
}

// CooldownKey returns the key holding the task's last completion time.
func (t TaskID) CooldownKey() string {
	switch t {
	case TaskLocation:
		return store.KeyLastCheckIn
	case TaskVideo:
		return store.KeyLastVideoWatch
	default:
		return store.KeyLastCodeScan
	}
}

// CompletedKey returns the key holding the task's completion flag.
func (t TaskID) CompletedKey() string {
	switch t {
	case TaskLocation:
		return store.KeyCompletedLocation
	case TaskVideo:
		return store.KeyCompletedVideo
	default:
		return store.KeyCompletedCode
	}
}
