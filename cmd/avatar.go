package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/shardhunt/internal/avatar"
	"github.com/spf13/cobra"
)

var avatarCmd = &cobra.Command{
	Use:   "avatar",
	Short: "Show or change the avatar name and icon",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			if _, err := avatar.SetName(ctx, e.kv, name); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("icon") {
			raw, _ := cmd.Flags().GetString("icon")
			icon, ok := avatar.ParseIcon(raw)
			if !ok {
				return fmt.Errorf("%w %q (want one of %s)", avatar.ErrUnknownIcon, raw, iconNames())
			}
			if err := avatar.SetIcon(ctx, e.kv, icon); err != nil {
				return err
			}
		}

		p, err := avatar.Load(ctx, e.kv)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s (%s)\n", p.Icon.Glyph(), p.DisplayName(), p.Icon)
		return nil
	},
}

func init() {
	avatarCmd.Flags().String("name", "", "Set the display name")
	avatarCmd.Flags().String("icon", "", "Set the icon ("+iconNames()+")")
}

func iconNames() string {
	icons := avatar.Icons()
	names := make([]string, len(icons))
	for i, ic := range icons {
		names[i] = string(ic)
	}
	return strings.Join(names, ", ")
}
