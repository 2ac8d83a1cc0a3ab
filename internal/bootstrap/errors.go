package bootstrap

import "fmt"

// BuildError wraps a failure of the checker factory. The bootstrap does not
// recover from it.
type BuildError struct {
	RepoURL string
	Err     error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("failed to build update checker for %s: %v", e.RepoURL, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
