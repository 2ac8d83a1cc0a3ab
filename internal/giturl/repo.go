package giturl

import (
	"fmt"
	"strings"
)

const defaultHost = "github.com"

// Repository identifies a hosted repository by host, owner and name.
type Repository struct {
	Owner string
	Name  string
	Host  string
}

// FullName returns the "owner/repo" string
func (r *Repository) FullName() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}

// IsDefaultHost reports whether the repository lives on github.com.
func (r *Repository) IsDefaultHost() bool {
	return r.Host == defaultHost
}

// HTMLURL returns the canonical web address of the repository.
func (r *Repository) HTMLURL() string {
	return fmt.Sprintf("https://%s/%s/%s", r.Host, r.Owner, r.Name)
}

// ParseRepository parses a repository URL into a Repository.
// Supports:
//   - "https://github.com/owner/repo"
//   - "https://github.com/owner/repo.git"
//   - "https://github.com/owner/repo/releases"
//   - "git@github.com:owner/repo.git"
//   - "ssh://git@github.com/owner/repo.git"
func ParseRepository(rawURL string) (*Repository, error) {
	u, err := Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}

	if u.Host == "" {
		return nil, fmt.Errorf("invalid repository URL %q: missing host", rawURL)
	}

	// Simplify the URL to strip extra path segments
	u = Simplify(u)

	owner, name, err := ExtractOwnerRepo(u)
	if err != nil {
		return nil, fmt.Errorf("invalid repository URL %q: %w", rawURL, err)
	}

	return &Repository{
		Owner: owner,
		Name:  name,
		Host:  strings.ToLower(strings.TrimPrefix(u.Hostname(), "www.")),
	}, nil
}
