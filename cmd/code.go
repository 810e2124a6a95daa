package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/abhisek/shardhunt/internal/cooldown"
	"github.com/abhisek/shardhunt/internal/quest"
	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"
)

var codeCmd = &cobra.Command{
	Use:   "code",
	Short: "Show the sigil QR code and enter the decoded code",
	RunE: func(cmd *cobra.Command, args []string) error {
		reveal, _ := cmd.Flags().GetBool("reveal")

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		task, err := e.svc.CodeScan(ctx)
		if err != nil {
			return fmt.Errorf("mount code: %w", err)
		}
		st, err := task.Status(ctx)
		if err != nil {
			return err
		}
		if !st.Unlocked {
			fmt.Fprintln(out, quest.Message(quest.ErrLocked))
			return nil
		}
		if st.Remaining > 0 {
			fmt.Fprintf(out, "Next code in %s.\n", cooldown.Format(st.Remaining))
			return nil
		}

		q, err := qrcode.New(task.Secret(), qrcode.Medium)
		if err != nil {
			return fmt.Errorf("encode QR: %w", err)
		}
		fmt.Fprintln(out, q.ToSmallString(false))
		if reveal {
			secret, err := task.Reveal(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Code: %s\n\n", secret)
		}

		scanner := bufio.NewScanner(cmd.InOrStdin())
		for {
			fmt.Fprint(out, "Enter code: ")
			if !scanner.Scan() {
				fmt.Fprintln(out)
				return scanner.Err()
			}
			input := strings.TrimSpace(scanner.Text())
			if input == "" {
				continue
			}

			_, err := task.Submit(ctx, input)
			if err != nil && !quest.IsOutcome(err) {
				return err
			}
			fmt.Fprintln(out, task.Message())
			if err == nil {
				return nil
			}
		}
	},
}

func init() {
	codeCmd.Flags().Bool("reveal", false, "Print the code below the QR for players who cannot scan")
}
