package quest

// State is the lifecycle of a mounted task.
type State string

const (
	StateIdle       State = "idle"        // Ready for an attempt
	StateInProgress State = "in-progress" // Attempt running (locating, playing)
	StateCooldown   State = "cooldown"    // Attempt rejected or waiting out the cooldown
	StateSuccess    State = "success"     // Reward emitted
)

// String implements fmt.Stringer.
func (s State) String() string { return string(s) }
