package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/inovacc/upstream/internal/appconfig"
	"github.com/inovacc/upstream/internal/application"
	"github.com/spf13/cobra"
)

var initForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default upstream.ini",
	Long: `Write upstream.ini with the current effective configuration (defaults plus
any UPSTREAM_* environment overrides) into the application directory.`,
	RunE: runConfigInit,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	dir, err := application.EnsureApplicationDirectory()
	if err != nil {
		return err
	}

	path := filepath.Join(dir, appconfig.FileName)

	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to check %s: %w", path, err)
	}

	if err := appconfig.Write(dir, appCfg); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("Wrote "+path))

	return nil
}
