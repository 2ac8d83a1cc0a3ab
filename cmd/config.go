package cmd

import (
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage update settings",
	Long: `Commands for managing the update settings.

Available Commands:
  init      Write a default upstream.ini
  set       Save one or more settings
  show      Show the stored settings
  reset     Remove the stored settings`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
