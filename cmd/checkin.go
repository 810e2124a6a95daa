package cmd

import (
	"errors"
	"fmt"

	"github.com/abhisek/shardhunt/internal/geo"
	"github.com/abhisek/shardhunt/internal/quest"
	"github.com/spf13/cobra"
)

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Check in at the arena from a position",
	Long: `Attempt one location check-in. Pass the position with --lat and --lon,
or use --simulate to check in from just beside the arena. Without a
position there is no location sensor and the attempt fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		simulate, _ := cmd.Flags().GetBool("simulate")
		lat, _ := cmd.Flags().GetFloat64("lat")
		lon, _ := cmd.Flags().GetFloat64("lon")
		hasLat, hasLon := cmd.Flags().Changed("lat"), cmd.Flags().Changed("lon")

		if hasLat != hasLon {
			return errors.New("use --lat and --lon together")
		}
		if simulate && hasLat {
			return errors.New("use --simulate or --lat/--lon, not both")
		}
		pos := geo.Coord{Lat: lat, Lon: lon}
		if hasLat && !pos.Valid() {
			return fmt.Errorf("position %v, %v out of range (|lat| <= 90, |lon| <= 180)", lat, lon)
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		task, err := e.svc.CheckIn(ctx)
		if err != nil {
			return fmt.Errorf("mount check-in: %w", err)
		}

		var res *quest.CheckInResult
		switch {
		case simulate:
			res, err = task.Simulate(ctx)
		case hasLat:
			res, err = task.Attempt(ctx, quest.FixedLocator(pos))
		default:
			res, err = task.Attempt(ctx, quest.NoSensor)
		}

		out := cmd.OutOrStdout()
		if res != nil {
			fmt.Fprintf(out, "Position  %.5f, %.5f\n", res.Position.Lat, res.Position.Lon)
			fmt.Fprintf(out, "Distance  %.0f m\n", res.Distance)
		}
		if err != nil && !quest.IsOutcome(err) {
			return err
		}
		fmt.Fprintln(out, task.Message())
		return nil
	},
}

func init() {
	checkinCmd.Flags().Float64("lat", 0, "Latitude in degrees")
	checkinCmd.Flags().Float64("lon", 0, "Longitude in degrees")
	checkinCmd.Flags().Bool("simulate", false, "Check in from just beside the arena")
}
