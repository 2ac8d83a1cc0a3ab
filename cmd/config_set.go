package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/inovacc/upstream/internal/giturl"
	"github.com/inovacc/upstream/internal/model"
	"github.com/inovacc/upstream/internal/settings"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	setUpdateType       string
	setRepoURL          string
	setAccessToken      string
	setAccessTokenStdin bool
	setPromptToken      bool
)

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save one or more settings",
	Long: settings.Banner + `

Only the flags given are saved; settings not mentioned keep their stored
value. Pass an empty value to clear a setting, e.g. --access-token "".

  --repo-url       ` + settings.RepoURLHelp + `
  --access-token   ` + settings.AccessTokenHelp,
	Example: `  upstream config set --repo-url https://github.com/acme/widget
  upstream config set --update-type theme
  upstream config set --prompt-token
  echo "$TOKEN" | upstream config set --access-token-stdin`,
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configSetCmd)

	configSetCmd.Flags().StringVar(&setUpdateType, "update-type", "", "Update type: plugin, theme or both")
	configSetCmd.Flags().StringVar(&setRepoURL, "repo-url", "", "GitHub repository URL")
	configSetCmd.Flags().StringVar(&setAccessToken, "access-token", "", "GitHub access token")
	configSetCmd.Flags().BoolVar(&setAccessTokenStdin, "access-token-stdin", false, "Read the access token from stdin")
	configSetCmd.Flags().BoolVar(&setPromptToken, "prompt-token", false, "Prompt for the access token without echo")
	configSetCmd.MarkFlagsMutuallyExclusive("access-token", "access-token-stdin", "prompt-token")
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	raw := model.Record{}
	flags := cmd.Flags()

	if flags.Changed("update-type") {
		if _, ok := model.ParseUpdateType(strings.TrimSpace(setUpdateType)); !ok {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), warnStyle.Render(
				fmt.Sprintf("Unrecognized update type %q, the checker will treat it as plugin.", setUpdateType)))
		}

		raw[model.KeyUpdateType] = setUpdateType
	}

	if flags.Changed("repo-url") {
		if u := strings.TrimSpace(setRepoURL); u != "" && !giturl.IsURL(u) {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), warnStyle.Render(
				fmt.Sprintf("%q does not look like a git remote URL; saving it anyway.", u)))
		}

		raw[model.KeyRepoURL] = setRepoURL
	}

	switch {
	case flags.Changed("access-token"):
		raw[model.KeyAccessToken] = setAccessToken
	case setAccessTokenStdin:
		token, err := readTokenFrom(cmd.InOrStdin())
		if err != nil {
			return err
		}

		raw[model.KeyAccessToken] = token
	case setPromptToken:
		token, err := readTokenPrompt(cmd.InOrStdin(), cmd.ErrOrStderr(), "Access token: ")
		if err != nil {
			return err
		}

		raw[model.KeyAccessToken] = token
	}

	if len(raw) == 0 {
		return errors.New("nothing to save: pass at least one of --update-type, --repo-url or an access token flag")
	}

	if err := manager.Submit(raw); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("Settings saved."))

	return nil
}

// readTokenFrom reads the first line of r.
func readTokenFrom(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read access token: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// readTokenPrompt reads a token from in without echoing when in is a terminal
func readTokenPrompt(in io.Reader, out io.Writer, prompt string) (string, error) {
	_, _ = fmt.Fprint(out, prompt)

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		token, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(out)

		if err != nil {
			return "", fmt.Errorf("failed to read access token: %w", err)
		}

		return string(token), nil
	}

	// Fallback for non-terminal
	return readTokenFrom(in)
}
