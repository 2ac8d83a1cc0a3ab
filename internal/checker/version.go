package checker

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// IsNewer reports whether latest is a higher semantic version than installed.
// Both accept an optional "v" prefix. An empty installed version is treated
// as older than anything.
func IsNewer(installed, latest string) (bool, error) {
	lv, err := semver.NewVersion(latest)
	if err != nil {
		return false, fmt.Errorf("invalid release version %q: %w", latest, err)
	}

	if installed == "" {
		return true, nil
	}

	iv, err := semver.NewVersion(installed)
	if err != nil {
		return false, fmt.Errorf("invalid installed version %q: %w", installed, err)
	}

	return lv.GreaterThan(iv), nil
}
