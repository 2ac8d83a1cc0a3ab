package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/upstream/internal/cli"
	"github.com/spf13/cobra"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Edit the update settings interactively",
	Long:  `Edit the update type, repository URL and access token in an interactive form.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := cli.NewConfigureModel(manager)
		if err != nil {
			return err
		}

		p := tea.NewProgram(m)
		finalModel, err := p.Run()
		if err != nil {
			return fmt.Errorf("configure form failed: %w", err)
		}

		if configModel, ok := finalModel.(*cli.ConfigureModel); ok && configModel.Err != nil {
			return configModel.Err
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configureCmd)
}
