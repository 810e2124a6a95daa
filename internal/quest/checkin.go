package quest

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/shardhunt/internal/geo"
	"github.com/abhisek/shardhunt/internal/wallet"
)

// CheckIn is the location task: succeed by being within the radius of the
// target.
type CheckIn struct {
	taskBase
	target    geo.Coord
	radius    float64
	simOffset float64
	log       *zap.Logger

	last *CheckInResult
}

// CheckInResult describes one evaluated check-in position.
type CheckInResult struct {
	Position  geo.Coord             `json:"position"`
	Distance  float64               `json:"distance"`
	Simulated bool                  `json:"simulated"`
	Reward    *wallet.PendingReward `json:"reward,omitempty"`
}

func newCheckIn(em *Emitter, gate *Gate, cfg Config, log *zap.Logger) *CheckIn {
	c := &CheckIn{
		target:    cfg.Target,
		radius:    cfg.RadiusMeters,
		simOffset: cfg.SimulateOffset,
		log:       log,
	}
	c.init(TaskLocation, em, gate)
	return c
}

// Target returns the check-in location.
func (c *CheckIn) Target() geo.Coord { return c.target }

// Last returns the most recently evaluated position, if any.
func (c *CheckIn) Last() *CheckInResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Remount resets the task as if freshly opened.
func (c *CheckIn) Remount(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = nil
	return c.remountLocked(ctx)
}

// Attempt asks loc for a position and checks in with it. The task stays
// InProgress while loc runs; concurrent attempts get ErrBusy.
func (c *CheckIn) Attempt(ctx context.Context, loc Locator) (*CheckInResult, error) {
	c.mu.Lock()
	if err := c.beginLocked(ctx); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.mu.Unlock()

	pos, err := loc.Locate(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		if !errors.Is(err, ErrPermissionDenied) && !errors.Is(err, ErrSensorUnavailable) {
			err = fmt.Errorf("%w: %v", ErrSensorUnavailable, err)
		}
		c.log.Warn("locate failed", zap.Error(err))
		c.failLocked(err)
		return nil, err
	}
	return c.evaluateLocked(ctx, pos, false)
}

// Simulate checks in from a position just off the target.
func (c *CheckIn) Simulate(ctx context.Context) (*CheckInResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.beginLocked(ctx); err != nil {
		return nil, err
	}
	return c.evaluateLocked(ctx, c.target.Offset(c.simOffset, c.simOffset), true)
}

func (c *CheckIn) evaluateLocked(ctx context.Context, pos geo.Coord, simulated bool) (*CheckInResult, error) {
	res := &CheckInResult{
		Position:  pos,
		Distance:  pos.DistanceTo(c.target),
		Simulated: simulated,
	}
	c.last = res

	c.log.Debug("check-in evaluated",
		zap.Float64("lat", pos.Lat),
		zap.Float64("lon", pos.Lon),
		zap.Float64("distance_m", res.Distance),
		zap.Bool("simulated", simulated))

	// Written so a NaN distance fails.
	if !(res.Distance <= c.radius) {
		err := &OutOfRangeError{Distance: res.Distance}
		c.failLocked(err)
		return res, err
	}

	msg := "Check-in successful! Head to your wallet to claim your shard."
	if simulated {
		msg = "Simulated check-in!"
	}
	reward, err := c.succeedLocked(ctx, msg)
	if err != nil {
		return res, err
	}
	res.Reward = reward
	return res, nil
}
