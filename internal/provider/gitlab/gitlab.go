package gitlab

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"gitlab.com/gitlab-org/api/client-go"

	"repo-resolver/internal/config"
	"repo-resolver/internal/httpclient"
	"repo-resolver/internal/provider"
)

// Provider resolves refs against the GitLab commits API. Covers gitlab.com
// and self-hosted instances through GITLAB_BASE_URL.
type Provider struct {
	client  *gitlab.Client
	baseURL string
	owner   string
	repo    string
	ref     string

	// resolvedRef is set exactly once, on the first successful resolution.
	resolvedRef string
}

// newClient builds the API client, honoring the skip-SSL-verify escape hatch
// some self-hosted instances need.
func newClient(cfg *config.Config) (*gitlab.Client, error) {
	if cfg.GitLabSkipSSLVerify {
		httpClient := httpclient.New(httpclient.Options{
			SkipSSLVerify: true,
		})
		return gitlab.NewClient(cfg.GitLabAccessToken, gitlab.WithBaseURL(cfg.GitLabBaseURL), gitlab.WithHTTPClient(httpClient))
	}

	return gitlab.NewClient(cfg.GitLabAccessToken, gitlab.WithBaseURL(cfg.GitLabBaseURL))
}

// New creates a GitLab provider for the given spec. Same "owner/repo/ref"
// grammar as the GitHub provider; no network I/O during construction.
func New(spec string, cfg *config.Config) (*Provider, error) {
	owner, repo, ref, err := provider.ParseSpec(spec)
	if err != nil {
		return nil, err
	}

	client, err := newClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating GitLab client: %w", err)
	}

	return &Provider{
		client:  client,
		baseURL: strings.TrimSuffix(cfg.GitLabBaseURL, "/"),
		owner:   owner,
		repo:    repo,
		ref:     ref,
	}, nil
}

// ResolveRef resolves the ref to a commit SHA via the commits endpoint,
// which accepts branch names, tags, and commit hashes alike.
func (p *Provider) ResolveRef(ctx context.Context) (string, bool, error) {
	if p.resolvedRef != "" {
		return p.resolvedRef, true, nil
	}

	projectPath := fmt.Sprintf("%s/%s", p.owner, p.repo)
	slog.Debug("fetching commit", "project", projectPath, "ref", p.ref)

	commit, resp, err := p.client.Commits.GetCommit(projectPath, p.ref, nil, gitlab.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", false, nil
		}
		if resp != nil {
			return "", false, &provider.ResolutionError{
				StatusCode: resp.StatusCode,
				Message:    err.Error(),
			}
		}
		return "", false, fmt.Errorf("fetching commit for %s@%s: %w", projectPath, p.ref, err)
	}

	if commit == nil || commit.ID == "" {
		return "", false, nil
	}

	p.resolvedRef = commit.ID
	return p.resolvedRef, true, nil
}

// RepoURL returns the repository URL under the configured GitLab instance.
func (p *Provider) RepoURL() string {
	return fmt.Sprintf("%s/%s/%s", p.baseURL, p.owner, p.repo)
}

// BuildSlug returns the owner-repo pair used in downstream build cache keys.
func (p *Provider) BuildSlug() string {
	return fmt.Sprintf("%s-%s", p.owner, p.repo)
}
