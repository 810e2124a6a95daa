package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/abhisek/shardhunt/internal/cooldown"
	"github.com/abhisek/shardhunt/internal/quest"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show unlock state and cooldown per task",
	RunE: func(cmd *cobra.Command, args []string) error {
		watch, _ := cmd.Flags().GetBool("watch")

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		if !watch {
			return printStatus(ctx, out, e.svc)
		}

		errc := make(chan error, 1)
		stop := cooldown.Poll(ctx, time.Second, func(time.Time) {
			fmt.Fprint(out, "\033[H\033[2J")
			if err := printStatus(ctx, out, e.svc); err != nil {
				select {
				case errc <- err:
				default:
				}
			}
		})
		defer stop()

		select {
		case <-ctx.Done():
			return nil
		case err := <-errc:
			return err
		}
	},
}

func init() {
	statusCmd.Flags().BoolP("watch", "w", false, "Refresh every second until interrupted")
}

// printStatus writes one row per task.
func printStatus(ctx context.Context, w io.Writer, svc *quest.Service) error {
	statuses, err := svc.Overview(ctx)
	if err != nil {
		return fmt.Errorf("load status: %w", err)
	}

	fmt.Fprintf(w, "%-22s  %-10s  %-8s  %-9s  %s\n", "Task", "State", "Unlocked", "Completed", "Cooldown")
	fmt.Fprintln(w, strings.Repeat("─", 66))
	for _, st := range statuses {
		cd := "-"
		if st.Remaining > 0 {
			cd = cooldown.Format(st.Remaining)
		}
		fmt.Fprintf(w, "%-22s  %-10s  %-8s  %-9s  %s\n",
			st.Name, st.State, yesNo(st.Unlocked), yesNo(st.Completed), cd)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
