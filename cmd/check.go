package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/inovacc/upstream/internal/bootstrap"
	"github.com/inovacc/upstream/internal/checker"
	"github.com/inovacc/upstream/internal/common"
	"github.com/spf13/cobra"
)

var (
	checkLatest bool
	checkJSON   bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Bootstrap the update checker from the stored settings",
	Long: `Bootstrap the update checker from the stored settings and report its state.

With --latest the checker also asks GitHub for the newest release and compares
it with the installed version ([artifact] version in upstream.ini).`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkLatest, "latest", false, "Query the latest release")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Output as JSON")
}

type checkReport struct {
	RunID      string          `json:"run_id"`
	State      string          `json:"state"`
	UpdateType string          `json:"update_type"`
	Repository string          `json:"repository,omitempty"`
	Slug       string          `json:"slug"`
	Update     *checker.Update `json:"update,omitempty"`
}

// newFactory is replaced in tests.
var newFactory = func() checker.Factory {
	return checker.NewGitHubFactory(checker.GitHubOptions{
		APIBaseURL: appCfg.GitHub.APIURL,
		Logger:     logger,
	})
}

func resolveArtifact() (bootstrap.Artifact, error) {
	if appCfg.Artifact.Path != "" {
		return bootstrap.NewArtifact(appCfg.Artifact.Path), nil
	}

	return bootstrap.ExecutableArtifact()
}

func runCheck(cmd *cobra.Command, args []string) error {
	artifact, err := resolveArtifact()
	if err != nil {
		return err
	}

	res, err := bootstrap.New(store, newFactory(), artifact, logger).Run()
	if err != nil {
		return err
	}

	report := checkReport{
		RunID:      res.RunID,
		State:      res.State.String(),
		UpdateType: string(res.Config.UpdateType),
		Repository: common.RedactURL(res.Config.RepoURL),
		Slug:       artifact.Slug,
	}

	if checkLatest && res.Checker != nil {
		gh, ok := res.Checker.(*checker.GitHub)
		if !ok {
			return errors.New("the configured checker cannot query releases")
		}

		upd, err := gh.CheckForUpdate(cmd.Context(), appCfg.Artifact.Version)
		switch {
		case errors.Is(err, checker.ErrNoRelease):
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), warnStyle.Render("The repository has no published release."))
		case err != nil:
			return err
		default:
			report.Update = upd
		}
	}

	if checkJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")

		return enc.Encode(report)
	}

	printCheckReport(cmd.OutOrStdout(), report)

	return nil
}

func printCheckReport(out io.Writer, r checkReport) {
	state := r.State
	if r.State == bootstrap.StateDisabled.String() {
		state = dimStyle.Render(state + " (no repository URL saved)")
	} else {
		state = okStyle.Render(state)
	}

	_, _ = fmt.Fprintln(out, labelStyle.Render("State:")+state)

	if r.Repository != "" {
		_, _ = fmt.Fprintln(out, labelStyle.Render("Repository:")+r.Repository)
		_, _ = fmt.Fprintln(out, labelStyle.Render("Update Type:")+r.UpdateType)
	}

	_, _ = fmt.Fprintln(out, labelStyle.Render("Slug:")+r.Slug)

	if r.Update == nil {
		return
	}

	installed := r.Update.Installed
	if installed == "" {
		installed = dimStyle.Render("(unknown)")
	}

	_, _ = fmt.Fprintln(out, labelStyle.Render("Installed:")+installed)
	_, _ = fmt.Fprintln(out, labelStyle.Render("Latest:")+r.Update.Latest)

	if r.Update.Available {
		_, _ = fmt.Fprintln(out, okStyle.Render("Update available: ")+r.Update.Release.HTMLURL)
	} else {
		_, _ = fmt.Fprintln(out, dimStyle.Render("Up to date."))
	}
}
