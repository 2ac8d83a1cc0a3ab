// Package bootstrap turns the persisted settings into an update checker.
//
// A [Bootstrapper] holds no state between runs. Each [Bootstrapper.Run] loads
// the record, and performs at most one [checker.Factory.Build] call followed
// by at most one [checker.Checker.SetAuthentication] call.
package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/inovacc/upstream/internal/checker"
	"github.com/inovacc/upstream/internal/common"
	"github.com/inovacc/upstream/internal/model"
)

// State is the outcome of a bootstrap run.
type State int

const (
	StateDisabled State = iota
	StateActiveUnauthenticated
	StateActiveAuthenticated
)

func (s State) String() string {
	switch s {
	case StateDisabled:
		return "disabled"
	case StateActiveUnauthenticated:
		return "active"
	case StateActiveAuthenticated:
		return "active (authenticated)"
	}

	return "unknown"
}

// Artifact identifies what is being kept up to date.
type Artifact struct {
	// Path is the artifact's main file
	Path string

	// Slug is the artifact's stable key, its containing directory name
	Slug string
}

// NewArtifact derives the slug from the directory containing path.
func NewArtifact(path string) Artifact {
	return Artifact{
		Path: path,
		Slug: filepath.Base(filepath.Dir(path)),
	}
}

// ExecutableArtifact uses the running binary as the artifact.
func ExecutableArtifact() (Artifact, error) {
	exe, err := os.Executable()
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to locate executable: %w", err)
	}

	return NewArtifact(exe), nil
}

// Loader is the read side of the settings store.
type Loader interface {
	Load() (model.Record, error)
}

// Result describes a completed run.
type Result struct {
	RunID   string
	State   State
	Config  model.Config
	Checker checker.Checker // nil when disabled
}

// Bootstrapper builds the update checker from stored settings.
type Bootstrapper struct {
	store    Loader
	factory  checker.Factory
	artifact Artifact
	logger   *slog.Logger
}

// New creates a Bootstrapper. A nil logger uses slog.Default().
func New(store Loader, factory checker.Factory, artifact Artifact, logger *slog.Logger) *Bootstrapper {
	if logger == nil {
		logger = slog.Default()
	}

	return &Bootstrapper{
		store:    store,
		factory:  factory,
		artifact: artifact,
		logger:   logger,
	}
}

// Run loads the settings and, when a repository URL is set, builds and
// optionally authenticates the checker. A storage error or a factory error
// is returned as is; the factory error is wrapped in *BuildError.
func (b *Bootstrapper) Run() (*Result, error) {
	runID := uuid.NewString()
	logger := b.logger.With(slog.String("run_id", runID))

	rec, err := b.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load update settings: %w", err)
	}

	cfg := model.ConfigFromRecord(rec)
	result := &Result{RunID: runID, State: StateDisabled, Config: cfg}

	if !cfg.Complete() {
		logger.Debug("update checker disabled: no repository URL")

		return result, nil
	}

	if _, ok := model.ParseUpdateType(cfg.RawUpdateType); !ok && cfg.RawUpdateType != "" {
		logger.Warn("unrecognized update type, treating as plugin", slog.String("update_type", cfg.RawUpdateType))
	}

	c, err := b.factory.Build(cfg.RepoURL, b.artifact.Path, b.artifact.Slug)
	if err != nil {
		return nil, &BuildError{RepoURL: common.RedactURL(cfg.RepoURL), Err: err}
	}

	result.Checker = c
	result.State = StateActiveUnauthenticated

	if cfg.Authenticated() {
		c.SetAuthentication(cfg.AccessToken)
		result.State = StateActiveAuthenticated
	}

	switch cfg.UpdateType {
	case model.UpdateTypeTheme:
		// The checker infers theme handling from the artifact itself.
		logger.Debug("theme update type selected, no extra checker setup")
	}

	logger.Info("update checker ready",
		slog.String("repository", common.RedactURL(cfg.RepoURL)),
		slog.String("update_type", string(cfg.UpdateType)),
		slog.String("slug", b.artifact.Slug),
		slog.String("state", result.State.String()),
	)

	return result, nil
}
