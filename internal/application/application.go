package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "upstream"

	// EnvHome overrides the application directory when set
	EnvHome = "UPSTREAM_HOME"
)

// Version is set via ldflags at build time.
var Version = "dev"

var (
	once   sync.Once
	appDir string
	errDir error
)

// GetApplicationDirectory returns the upstream configuration directory path.
// Linux: ~/.config/upstream (via os.UserConfigDir)
// Windows: C:\Users\{username}\AppData\Local\upstream (via os.UserCacheDir)
//
// UPSTREAM_HOME takes precedence and is re-read on every call so tests and
// wrapper scripts can point the process at a scratch directory.
func GetApplicationDirectory() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}

	once.Do(lazyLoad)

	if errDir != nil {
		return "", errDir
	}

	return appDir, nil
}

// EnsureApplicationDirectory returns the application directory, creating it
// when missing.
func EnsureApplicationDirectory() (string, error) {
	dir, err := GetApplicationDirectory()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create application directory: %w", err)
	}

	return dir, nil
}

func lazyLoad() {
	var (
		baseDir string
		err     error
	)

	switch runtime.GOOS {
	case "windows":
		// Windows: use AppData\Local (via UserCacheDir)
		baseDir, err = os.UserCacheDir()
	default:
		// Linux/others: use ~/.config (via UserConfigDir)
		baseDir, err = os.UserConfigDir()
	}

	if err != nil {
		errDir = fmt.Errorf("failed to get config directory: %w", err)

		return
	}

	appDir = filepath.Join(baseDir, AppName)
}
