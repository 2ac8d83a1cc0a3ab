package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/inovacc/upstream/internal/appconfig"
	"github.com/inovacc/upstream/internal/application"
	"github.com/inovacc/upstream/internal/bootstrap"
	"github.com/inovacc/upstream/internal/checker"
	"github.com/inovacc/upstream/internal/settings"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}

	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)

	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func setupHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv(application.EnvHome, home)

	for _, env := range []string{
		appconfig.EnvStorageDriver, appconfig.EnvStoragePath, appconfig.EnvArtifactPath,
		appconfig.EnvArtifactVersion, appconfig.EnvGitHubAPIURL, appconfig.EnvLogLevel,
	} {
		t.Setenv(env, "")
	}

	return home
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out, _, err := executeWithStderr(t, args...)

	return out, err
}

func executeWithStderr(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	resetFlags(rootCmd)

	var out, errOut bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)

	t.Cleanup(func() {
		teardown()
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	})

	err := rootCmd.Execute()

	return out.String(), errOut.String(), err
}

type recordingChecker struct {
	tokens []string
}

func (c *recordingChecker) SetAuthentication(token string) {
	c.tokens = append(c.tokens, token)
}

func stubFactory(t *testing.T, buildErr error) (*[]string, *recordingChecker) {
	t.Helper()

	var slugs []string
	rc := &recordingChecker{}

	orig := newFactory
	newFactory = func() checker.Factory {
		return checker.FactoryFunc(func(repoURL, artifactPath, slug string) (checker.Checker, error) {
			slugs = append(slugs, slug)
			if buildErr != nil {
				return nil, buildErr
			}

			return rc, nil
		})
	}

	t.Cleanup(func() { newFactory = orig })

	return &slugs, rc
}

func TestVersion(t *testing.T) {
	setupHome(t)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, application.AppName+" version "+application.Version)
}

func TestConfigSet_RequiresAFlag(t *testing.T) {
	setupHome(t)

	_, err := execute(t, "config", "set")
	assert.Error(t, err)
}

func TestConfigSetAndShow(t *testing.T) {
	setupHome(t)

	_, err := execute(t, "config", "set", "--repo-url", " https://github.com/acme/widget ", "--update-type", "theme")
	require.NoError(t, err)

	_, err = execute(t, "config", "set", "--access-token", "tok123")
	require.NoError(t, err)

	out, err := execute(t, "config", "show", "--json")
	require.NoError(t, err)

	var view settingsView
	require.NoError(t, json.Unmarshal([]byte(out), &view))

	assert.Equal(t, "theme", view.UpdateType)
	assert.Equal(t, "https://github.com/acme/widget", view.RepoURL)
	assert.Equal(t, "********", view.AccessToken)
	assert.True(t, view.Stored)
	assert.NotContains(t, out, "tok123")
}

func TestConfigSet_TokenFromStdin(t *testing.T) {
	setupHome(t)

	rootCmd.SetIn(bytes.NewBufferString("tok123\n"))
	t.Cleanup(func() { rootCmd.SetIn(nil) })

	_, err := execute(t, "config", "set", "--access-token-stdin")
	require.NoError(t, err)

	require.NoError(t, setup(rootCmd, nil))
	t.Cleanup(teardown)

	fields, err := manager.Fields()
	require.NoError(t, err)
	assert.Equal(t, "tok123", fields.AccessToken)
}

func TestConfigReset(t *testing.T) {
	setupHome(t)

	_, err := execute(t, "config", "set", "--repo-url", "https://github.com/acme/widget")
	require.NoError(t, err)

	_, err = execute(t, "config", "reset", "-y")
	require.NoError(t, err)

	out, err := execute(t, "config", "show", "--json")
	require.NoError(t, err)

	var view settingsView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.False(t, view.Stored)
	assert.Empty(t, view.RepoURL)
	assert.Equal(t, "plugin", view.UpdateType)
}

func TestCheck_Disabled(t *testing.T) {
	setupHome(t)
	slugs, _ := stubFactory(t, nil)

	out, err := execute(t, "check", "--json")
	require.NoError(t, err)

	var report checkReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, bootstrap.StateDisabled.String(), report.State)
	assert.Empty(t, *slugs)
}

func TestCheck_Authenticated(t *testing.T) {
	setupHome(t)
	t.Setenv(appconfig.EnvArtifactPath, filepath.Join("srv", "plugins", "widget-dir", "widget.php"))

	slugs, rc := stubFactory(t, nil)

	_, err := execute(t, "config", "set", "--repo-url", "https://github.com/acme/widget", "--access-token", "tok123")
	require.NoError(t, err)

	out, err := execute(t, "check", "--json")
	require.NoError(t, err)

	var report checkReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, bootstrap.StateActiveAuthenticated.String(), report.State)
	assert.Equal(t, "widget-dir", report.Slug)
	assert.Equal(t, []string{"widget-dir"}, *slugs)
	assert.Equal(t, []string{"tok123"}, rc.tokens)
}

func TestCheck_BuildErrorFails(t *testing.T) {
	setupHome(t)
	stubFactory(t, errors.New("unsupported"))

	_, err := execute(t, "config", "set", "--repo-url", "https://github.com/acme/widget")
	require.NoError(t, err)

	_, err = execute(t, "check")
	require.Error(t, err)

	var buildErr *bootstrap.BuildError
	assert.ErrorAs(t, err, &buildErr)
}

func storedFields(t *testing.T) settings.Fields {
	t.Helper()

	require.NoError(t, setup(rootCmd, nil))
	t.Cleanup(teardown)

	fields, err := manager.Fields()
	require.NoError(t, err)

	return fields
}

func TestConfigSet_PromptTokenFromNonTerminal(t *testing.T) {
	setupHome(t)

	rootCmd.SetIn(bytes.NewBufferString("tok123\r\n"))

	_, stderr, err := executeWithStderr(t, "config", "set", "--prompt-token")
	require.NoError(t, err)

	assert.Contains(t, stderr, "Access token: ")
	assert.NotContains(t, stderr, "tok123")
	assert.Equal(t, "tok123", storedFields(t).AccessToken)
}

func TestConfigSet_WarnsOnNonGitRemote(t *testing.T) {
	setupHome(t)

	_, stderr, err := executeWithStderr(t, "config", "set", "--repo-url", "example.com/acme/widget")
	require.NoError(t, err)
	assert.Contains(t, stderr, "does not look like a git remote URL")

	// still saved, normalized by the validator
	assert.Equal(t, "http://example.com/acme/widget", storedFields(t).RepoURL)
}

func TestConfigSet_NoWarningForGitRemote(t *testing.T) {
	setupHome(t)

	_, stderr, err := executeWithStderr(t, "config", "set", "--repo-url", "https://github.com/acme/widget")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "git remote")
}

func TestConfigInit(t *testing.T) {
	home := setupHome(t)
	t.Setenv(appconfig.EnvArtifactVersion, "1.4.0")

	out, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, appconfig.FileName)

	t.Setenv(appconfig.EnvArtifactVersion, "")

	cfg, err := appconfig.Load(home)
	require.NoError(t, err)
	assert.Equal(t, "1.4.0", cfg.Artifact.Version)
	assert.Equal(t, filepath.Join(home, "upstream.bolt"), cfg.Storage.Path)

	_, err = execute(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "config", "init", "--force")
	require.NoError(t, err)
}

func TestCheck_LatestNeedsReleaseChecker(t *testing.T) {
	setupHome(t)
	stubFactory(t, nil)

	_, err := execute(t, "config", "set", "--repo-url", "https://github.com/acme/widget")
	require.NoError(t, err)

	_, err = execute(t, "check", "--latest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot query releases")
}

func TestCheck_LatestAgainstGitHub(t *testing.T) {
	setupHome(t)

	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/acme/widget/releases/latest" {
			http.NotFound(w, r)
			return
		}

		gotAuth = r.Header.Get("Authorization")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tag_name":"v1.2.0","name":"1.2.0","html_url":"https://github.com/acme/widget/releases/tag/v1.2.0"}`))
	}))
	t.Cleanup(srv.Close)

	t.Setenv(appconfig.EnvGitHubAPIURL, srv.URL)
	t.Setenv(appconfig.EnvArtifactVersion, "1.0.0")

	_, err := execute(t, "config", "set", "--repo-url", "https://github.com/acme/widget", "--access-token", "tok123")
	require.NoError(t, err)

	out, err := execute(t, "check", "--latest", "--json")
	require.NoError(t, err)

	var report checkReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	assert.Equal(t, bootstrap.StateActiveAuthenticated.String(), report.State)
	require.NotNil(t, report.Update)
	assert.True(t, report.Update.Available)
	assert.Equal(t, "v1.2.0", report.Update.Latest)
	assert.Equal(t, "1.0.0", report.Update.Installed)
	assert.Equal(t, "Bearer tok123", gotAuth)
}

func TestCheck_LatestNoRelease(t *testing.T) {
	setupHome(t)

	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	t.Setenv(appconfig.EnvGitHubAPIURL, srv.URL)

	_, err := execute(t, "config", "set", "--repo-url", "https://github.com/acme/widget")
	require.NoError(t, err)

	_, stderr, err := executeWithStderr(t, "check", "--latest")
	require.NoError(t, err)
	assert.Contains(t, stderr, "no published release")
}
