package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/shardhunt/internal/avatar"
	"github.com/abhisek/shardhunt/internal/wallet"
	"github.com/spf13/cobra"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Show pending rewards and collected shards",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		p, err := avatar.Load(ctx, e.kv)
		if err != nil {
			return err
		}
		sum, err := e.ledger.Summary(ctx)
		if err != nil {
			return err
		}
		pending, err := e.ledger.Pending(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%s  %s's vault\n\n", p.Icon.Glyph(), p.DisplayName())
		for _, sh := range wallet.AllShards() {
			fmt.Fprintf(out, "  %s %-6s %d\n", sh.Icon(), sh, sum.Shards[sh])
		}
		fmt.Fprintf(out, "\nPending rewards: %d\n", sum.TotalPending)
		fmt.Fprintln(out, strings.Repeat("─", 60))
		for _, r := range pending {
			fmt.Fprintf(out, "  %s %-14s  %s  %s\n",
				r.Type.Icon(), r.Type.DisplayName(), r.EarnedAt.Local().Format("Jan 02 15:04"), r.Description)
		}
		return nil
	},
}

var walletCollectCmd = &cobra.Command{
	Use:       "collect <type>",
	Short:     "Turn the oldest pending reward of a type into a shard",
	Args:      cobra.ExactArgs(1),
	ValidArgs: rewardTypeNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, ok := wallet.ParseRewardType(args[0])
		if !ok {
			return fmt.Errorf("unknown reward type %q (want one of %s)",
				args[0], strings.Join(rewardTypeNames(), ", "))
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		shard, ok, err := e.ledger.Collect(cmd.Context(), typ)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !ok {
			fmt.Fprintf(out, "No %s rewards waiting.\n", typ.DisplayName())
			return nil
		}
		fmt.Fprintf(out, "%s You've uncovered the %s Shard!\n", shard.Icon(), shard)
		return nil
	},
}

var walletResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear pending rewards, shards and cooldowns",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		out := cmd.OutOrStdout()

		if !yes && !confirm(cmd.InOrStdin(), out, "Reset wallet? Pending rewards and shards will be lost. [y/N] ") {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.ledger.Reset(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(out, "Wallet reset. Cooldowns cleared.")
		return nil
	},
}

func init() {
	walletResetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	walletCmd.AddCommand(walletCollectCmd)
	walletCmd.AddCommand(walletResetCmd)
}

func rewardTypeNames() []string {
	types := wallet.AllRewardTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}

// confirm asks a yes/no question on w and reads the answer from r.
func confirm(r io.Reader, w io.Writer, prompt string) bool {
	fmt.Fprint(w, prompt)
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return true
	}
	return false
}
