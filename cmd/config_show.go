package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/inovacc/upstream/internal/common"
	"github.com/inovacc/upstream/internal/security"
	"github.com/spf13/cobra"
)

var showJSON bool

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored settings",
	Long:  `Show the stored update settings. The access token is always masked.`,
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configShowCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")
}

type settingsView struct {
	UpdateType  string `json:"update_type"`
	RepoURL     string `json:"repo_url"`
	AccessToken string `json:"access_token"`
	TokenKind   string `json:"token_kind,omitempty"`
	Stored      bool   `json:"stored"`
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	fields, err := manager.Fields()
	if err != nil {
		return err
	}

	view := settingsView{
		UpdateType:  string(fields.UpdateType),
		RepoURL:     common.RedactURL(fields.RepoURL),
		AccessToken: common.MaskSecret(fields.AccessToken),
		Stored:      fields.Stored,
	}

	if fields.HasToken() {
		view.TokenKind = security.NewTokenClassifier().Label(fields.AccessToken)
	}

	out := cmd.OutOrStdout()

	if showJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")

		return enc.Encode(view)
	}

	if !fields.Stored {
		_, _ = fmt.Fprintln(out, dimStyle.Render("No settings saved; showing defaults."))
	}

	repo := view.RepoURL
	if repo == "" {
		repo = dimStyle.Render("(not set, update checks disabled)")
	}

	token := view.AccessToken
	switch {
	case token == "":
		token = dimStyle.Render("(not set)")
	case view.TokenKind != "":
		token += " " + dimStyle.Render("("+view.TokenKind+")")
	}

	_, _ = fmt.Fprintln(out, labelStyle.Render("Update Type:")+fields.UpdateType.Label())
	_, _ = fmt.Fprintln(out, labelStyle.Render("Repository:")+repo)
	_, _ = fmt.Fprintln(out, labelStyle.Render("Access Token:")+token)

	return nil
}
