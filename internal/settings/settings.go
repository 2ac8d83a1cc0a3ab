// Package settings is the admin-facing side of the update settings: it
// accepts form submissions and exposes the current values for rendering.
package settings

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/inovacc/upstream/internal/database"
	"github.com/inovacc/upstream/internal/model"
	"github.com/inovacc/upstream/internal/sanitize"
)

// Banner is shown above the settings form.
const Banner = "Enter the details for your GitHub repository below:"

// Help texts shown next to the form fields.
const (
	RepoURLHelp     = "E.g., https://github.com/username/repo-name"
	AccessTokenHelp = "Leave empty for public repositories. Required for private ones."
)

// ErrNoStore is returned when a Manager is used without a store.
var ErrNoStore = errors.New("settings store not configured")

// Fields is what a form renders: the current values with defaults applied.
type Fields struct {
	UpdateType  model.UpdateType
	RepoURL     string
	AccessToken string
	// Stored reports whether any settings have been saved
	Stored bool
}

// HasToken reports whether an access token is stored.
func (f Fields) HasToken() bool {
	return f.AccessToken != ""
}

// Manager ties the validator to the store.
type Manager struct {
	validator *sanitize.Validator
	store     database.Store
	logger    *slog.Logger
}

// NewManager creates a Manager over store. A nil logger uses slog.Default().
func NewManager(store database.Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		validator: sanitize.NewValidator(logger),
		store:     store,
		logger:    logger,
	}
}

// Store returns the underlying store.
func (m *Manager) Store() database.Store {
	return m.store
}

// Submit sanitizes a raw form submission and merges it into the stored
// record. Only keys present in raw are written.
func (m *Manager) Submit(raw model.Record) error {
	if m.store == nil {
		return ErrNoStore
	}

	fragment := m.validator.Sanitize(raw)
	if len(fragment) == 0 {
		m.logger.Debug("nothing to save")

		return nil
	}

	if err := m.store.Save(fragment); err != nil {
		return fmt.Errorf("failed to save update settings: %w", err)
	}

	attrs := make([]any, 0, len(fragment))
	for _, key := range model.Keys {
		if _, ok := fragment[key]; ok {
			attrs = append(attrs, slog.Bool(key, true))
		}
	}

	m.logger.Info("update settings saved", slog.Group("fields", attrs...))

	return nil
}

// Fields reads the stored settings for display. It never writes.
func (m *Manager) Fields() (Fields, error) {
	if m.store == nil {
		return Fields{}, ErrNoStore
	}

	rec, err := m.store.Load()
	if err != nil {
		return Fields{}, fmt.Errorf("failed to load update settings: %w", err)
	}

	cfg := model.ConfigFromRecord(rec)

	return Fields{
		UpdateType:  cfg.UpdateType,
		RepoURL:     cfg.RepoURL,
		AccessToken: cfg.AccessToken,
		Stored:      len(rec) > 0,
	}, nil
}

// Reset removes the stored settings.
func (m *Manager) Reset() error {
	if m.store == nil {
		return ErrNoStore
	}

	if err := m.store.Delete(); err != nil {
		return fmt.Errorf("failed to delete update settings: %w", err)
	}

	m.logger.Info("update settings removed")

	return nil
}
