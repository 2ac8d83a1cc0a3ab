package checker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v82/github"
	"github.com/inovacc/upstream/internal/giturl"
	"golang.org/x/oauth2"
)

// GitHubOptions configures the GitHub checker factory.
type GitHubOptions struct {
	// APIBaseURL overrides the REST endpoint. Empty means api.github.com for
	// github.com repositories and https://<host>/api/v3/ for any other host.
	APIBaseURL string

	// HTTPClient is the transport used for anonymous requests and wrapped by
	// the token transport once authenticated. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	Logger *slog.Logger
}

// GitHubFactory builds GitHub release checkers.
type GitHubFactory struct {
	opts GitHubOptions
}

// NewGitHubFactory creates a factory with opts.
func NewGitHubFactory(opts GitHubOptions) *GitHubFactory {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &GitHubFactory{opts: opts}
}

// Build parses repoURL and returns an anonymous *GitHub checker. No request
// is made.
func (f *GitHubFactory) Build(repoURL, artifactPath, slug string) (Checker, error) {
	repo, err := giturl.ParseRepository(repoURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedURL, err)
	}

	base, err := apiBaseURL(f.opts.APIBaseURL, repo)
	if err != nil {
		return nil, err
	}

	g := &GitHub{
		repo:         repo,
		artifactPath: artifactPath,
		slug:         slug,
		apiBase:      base,
		httpClient:   f.opts.HTTPClient,
		logger:       f.opts.Logger,
	}
	g.client = g.newClient(f.opts.HTTPClient)

	g.logger.Debug("update checker built",
		slog.String("repository", repo.FullName()),
		slog.String("host", repo.Host),
		slog.String("slug", slug),
	)

	return g, nil
}

func apiBaseURL(override string, repo *giturl.Repository) (*url.URL, error) {
	raw := override

	if raw == "" {
		if repo.IsDefaultHost() {
			return nil, nil
		}

		raw = fmt.Sprintf("https://%s/api/v3/", repo.Host)
	}

	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL %q: %w", raw, err)
	}

	return u, nil
}

// GitHub checks a GitHub repository's releases for updates.
type GitHub struct {
	repo          *giturl.Repository
	artifactPath  string
	slug          string
	apiBase       *url.URL
	httpClient    *http.Client
	client        *github.Client
	authenticated bool
	logger        *slog.Logger
}

func (g *GitHub) newClient(hc *http.Client) *github.Client {
	client := github.NewClient(hc)
	if g.apiBase != nil {
		client.BaseURL = g.apiBase
	}

	return client
}

// SetAuthentication switches the checker to token-authenticated requests.
func (g *GitHub) SetAuthentication(token string) {
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, g.httpClient)
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})

	g.client = g.newClient(oauth2.NewClient(ctx, ts))
	g.authenticated = true

	g.logger.Debug("update checker authenticated", slog.String("repository", g.repo.FullName()))
}

// Repository returns the parsed repository the checker polls.
func (g *GitHub) Repository() *giturl.Repository { return g.repo }

// ArtifactPath returns the artifact main file the checker was built for.
func (g *GitHub) ArtifactPath() string { return g.artifactPath }

// Slug returns the artifact slug.
func (g *GitHub) Slug() string { return g.slug }

// Authenticated reports whether SetAuthentication was called.
func (g *GitHub) Authenticated() bool { return g.authenticated }

// Release is the subset of a GitHub release the checker reports.
type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	HTMLURL     string    `json:"html_url"`
	Prerelease  bool      `json:"prerelease"`
	PublishedAt time.Time `json:"published_at"`
}

// LatestRelease returns the newest published, non-draft, non-prerelease
// release of the repository.
func (g *GitHub) LatestRelease(ctx context.Context) (*Release, error) {
	rel, _, err := g.client.Repositories.GetLatestRelease(ctx, g.repo.Owner, g.repo.Name)
	if err != nil {
		var errResp *github.ErrorResponse
		if errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound {
			return nil, ErrNoRelease
		}

		var rateLimitErr *github.RateLimitError
		if errors.As(err, &rateLimitErr) {
			return nil, fmt.Errorf("rate limited until %s: %w", rateLimitErr.Rate.Reset.Format(time.RFC3339), err)
		}

		return nil, fmt.Errorf("failed to get latest release of %s: %w", g.repo.FullName(), err)
	}

	out := &Release{
		TagName:    rel.GetTagName(),
		Name:       rel.GetName(),
		HTMLURL:    rel.GetHTMLURL(),
		Prerelease: rel.GetPrerelease(),
	}

	if rel.PublishedAt != nil {
		out.PublishedAt = rel.PublishedAt.Time
	}

	return out, nil
}

// Update is the result of comparing the installed version with the latest
// release.
type Update struct {
	Installed string   `json:"installed"`
	Latest    string   `json:"latest"`
	Available bool     `json:"available"`
	Release   *Release `json:"release"`
}

// CheckForUpdate fetches the latest release and compares it with installed.
func (g *GitHub) CheckForUpdate(ctx context.Context, installed string) (*Update, error) {
	rel, err := g.LatestRelease(ctx)
	if err != nil {
		return nil, err
	}

	newer, err := IsNewer(installed, rel.TagName)
	if err != nil {
		return nil, err
	}

	return &Update{
		Installed: installed,
		Latest:    rel.TagName,
		Available: newer,
		Release:   rel,
	}, nil
}
