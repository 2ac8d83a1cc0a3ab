// Package checker defines the update-checker collaborator contract and ships
// a GitHub-backed implementation of it.
//
// The bootstrap only ever calls [Factory.Build] and [Checker.SetAuthentication].
// Everything else on [GitHub] (release lookup, version comparison) is used by
// the CLI's reporting and is not part of the contract.
package checker

import "errors"

var (
	// ErrUnsupportedURL is returned by Build when the repository URL cannot
	// be parsed into a host/owner/repo triple.
	ErrUnsupportedURL = errors.New("unsupported repository URL")

	// ErrNoRelease is returned when the repository has no published release.
	ErrNoRelease = errors.New("repository has no published release")
)

// Factory constructs an update checker for an artifact.
type Factory interface {
	// Build creates a checker for repoURL. artifactPath is the artifact's main
	// file and slug its stable key, the containing directory name.
	Build(repoURL, artifactPath, slug string) (Checker, error)
}

// Checker is a constructed update checker.
type Checker interface {
	// SetAuthentication makes subsequent requests use token.
	SetAuthentication(token string)
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func(repoURL, artifactPath, slug string) (Checker, error)

func (f FactoryFunc) Build(repoURL, artifactPath, slug string) (Checker, error) {
	return f(repoURL, artifactPath, slug)
}
