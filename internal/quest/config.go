package quest

import (
	"time"

	"github.com/abhisek/shardhunt/internal/geo"
)

// Config holds the tunables shared by all tasks.
type Config struct {
	// Target is the check-in location.
	Target geo.Coord

	// RadiusMeters is the maximum accepted check-in distance.
	RadiusMeters float64

	// SimulateOffset is added to both target coordinates for a simulated check-in.
	SimulateOffset float64

	// Cooldown is the wait between two successes of the same task.
	Cooldown time.Duration

	// VideoThreshold is the playback position that earns the video reward.
	VideoThreshold time.Duration

	// VideoLength is the total playback length.
	VideoLength time.Duration

	// SecretLength is the number of base36 characters in a code secret.
	SecretLength int
}

// DefaultConfig returns the stock hunt settings.
func DefaultConfig() Config {
	return Config{
		Target:         geo.Coord{Lat: 48.2188, Lon: 11.6247},
		RadiusMeters:   50,
		SimulateOffset: 0.0001,
		Cooldown:       60 * time.Second,
		VideoThreshold: 15 * time.Second,
		VideoLength:    30 * time.Second,
		SecretLength:   8,
	}
}
