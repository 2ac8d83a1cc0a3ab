// Package appconfig loads the application's own settings from upstream.ini
// in the application directory, with environment overrides.
package appconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/inovacc/upstream/internal/database"
	"gopkg.in/ini.v1"
)

// FileName is the config file looked up in the application directory.
const FileName = "upstream.ini"

// Environment variables that override the file.
const (
	EnvStorageDriver   = "UPSTREAM_STORAGE_DRIVER"
	EnvStoragePath     = "UPSTREAM_STORAGE_PATH"
	EnvArtifactPath    = "UPSTREAM_ARTIFACT_PATH"
	EnvArtifactVersion = "UPSTREAM_ARTIFACT_VERSION"
	EnvGitHubAPIURL    = "UPSTREAM_GITHUB_API_URL"
	EnvLogLevel        = "UPSTREAM_LOG_LEVEL"
)

type StorageSection struct {
	Driver string `ini:"driver"`
	Path   string `ini:"path"`
}

type ArtifactSection struct {
	Path    string `ini:"path"`
	Version string `ini:"version"`
}

type GitHubSection struct {
	APIURL string `ini:"api_url"`
}

type LogSection struct {
	Level  string `ini:"level"`
	Format string `ini:"format"`
}

// Config is the parsed upstream.ini.
type Config struct {
	Storage  StorageSection  `ini:"storage"`
	Artifact ArtifactSection `ini:"artifact"`
	GitHub   GitHubSection   `ini:"github"`
	Log      LogSection      `ini:"log"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Storage: StorageSection{Driver: database.DriverBolt},
		Log:     LogSection{Level: "info", Format: "text"},
	}
}

// Load reads dir/upstream.ini, applies environment overrides and fills in
// the storage path. A missing file is not an error.
func Load(dir string) (*Config, error) {
	cfg := Default()
	path := filepath.Join(dir, FileName)

	file, err := ini.Load(path)
	switch {
	case err == nil:
		for name, dst := range map[string]any{
			"storage":  &cfg.Storage,
			"artifact": &cfg.Artifact,
			"github":   &cfg.GitHub,
			"log":      &cfg.Log,
		} {
			if err := file.Section(name).MapTo(dst); err != nil {
				return nil, fmt.Errorf("failed to parse [%s] in %s: %w", name, path, err)
			}
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg.applyEnv()

	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = database.DriverBolt
	}

	if cfg.Storage.Path == "" {
		cfg.Storage.Path = filepath.Join(dir, database.DefaultFileName(cfg.Storage.Driver))
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	for env, dst := range map[string]*string{
		EnvStorageDriver:   &c.Storage.Driver,
		EnvStoragePath:     &c.Storage.Path,
		EnvArtifactPath:    &c.Artifact.Path,
		EnvArtifactVersion: &c.Artifact.Version,
		EnvGitHubAPIURL:    &c.GitHub.APIURL,
		EnvLogLevel:        &c.Log.Level,
	} {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			*dst = v
		}
	}
}

// SlogLevel parses the configured log level. An empty level is info.
func (l LogSection) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}

	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", l.Level, err)
	}

	return level, nil
}

// JSON reports whether logs should be written as JSON.
func (l LogSection) JSON() bool {
	return strings.EqualFold(l.Format, "json")
}

// Write saves cfg as dir/upstream.ini. Existing files are overwritten.
func Write(dir string, cfg *Config) error {
	file := ini.Empty()
	if err := file.ReflectFrom(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := file.SaveTo(filepath.Join(dir, FileName)); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
