package quest

import (
	"context"

	"github.com/abhisek/shardhunt/internal/geo"
)

// Locator obtains the player's current position. Implementations should
// return ErrPermissionDenied or ErrSensorUnavailable on failure and must
// honor ctx cancellation.
type Locator interface {
	Locate(ctx context.Context) (geo.Coord, error)
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func(ctx context.Context) (geo.Coord, error)

// Locate calls f(ctx).
func (f LocatorFunc) Locate(ctx context.Context) (geo.Coord, error) {
	return f(ctx)
}

// FixedLocator always reports c.
func FixedLocator(c geo.Coord) Locator {
	return LocatorFunc(func(ctx context.Context) (geo.Coord, error) {
		if err := ctx.Err(); err != nil {
			return geo.Coord{}, err
		}
		return c, nil
	})
}

// NoSensor is a Locator for hosts without a position source.
var NoSensor Locator = LocatorFunc(func(context.Context) (geo.Coord, error) {
	return geo.Coord{}, ErrSensorUnavailable
})
