package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetYes bool

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove the stored settings",
	Long: `Remove the stored update settings. This is the uninstall routine: after a
reset the update checker stays disabled until a repository URL is saved again.`,
	RunE: runConfigReset,
}

func init() {
	configCmd.AddCommand(configResetCmd)
	configResetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip confirmation prompt")
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	if !resetYes {
		if !promptConfirm("Remove the stored update settings? [y/N]: ") {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	if err := manager.Reset(); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("Settings removed."))

	return nil
}
