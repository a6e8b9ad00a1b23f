package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"repo-resolver/internal/config"
	"repo-resolver/internal/httpclient"
	"repo-resolver/internal/provider"
)

// userAgent identifies this client on outbound API requests.
const userAgent = "repo-resolver"

// repoSpec holds the parsed parts of an "owner/repo/ref" spec. RepoURL and
// BuildSlug are derived from these fields alone.
type repoSpec struct {
	owner string
	repo  string
	ref   string
}

func parseSpec(spec string) (repoSpec, error) {
	owner, repo, ref, err := provider.ParseSpec(spec)
	if err != nil {
		return repoSpec{}, err
	}
	return repoSpec{owner: owner, repo: repo, ref: ref}, nil
}

// RepoURL returns the canonical GitHub repository URL.
func (s repoSpec) RepoURL() string {
	return fmt.Sprintf("https://github.com/%s/%s", s.owner, s.repo)
}

// BuildSlug returns the owner-repo pair used in downstream build cache keys.
func (s repoSpec) BuildSlug() string {
	return fmt.Sprintf("%s-%s", s.owner, s.repo)
}

// Provider resolves refs against the GitHub REST API. Each instance owns its
// parsed spec and memoized result; instances are not safe for concurrent
// re-entrant resolution, matching the one-resolution-per-build usage.
type Provider struct {
	repoSpec

	client  *http.Client
	apiBase string
	auth    url.Values

	// resolvedRef is set exactly once, on the first successful resolution.
	resolvedRef string
}

// New creates a GitHub provider for the given spec. The spec grammar is
// "owner/repo/ref"; validation happens here, so a returned provider is always
// fully formed. No network I/O occurs during construction.
func New(spec string, cfg *config.Config) (*Provider, error) {
	parsed, err := parseSpec(spec)
	if err != nil {
		return nil, err
	}

	// Whichever credentials are present are sent as query parameters; an
	// empty set means unauthenticated requests under public rate limits.
	auth := url.Values{}
	if cfg.GitHubClientID != "" {
		auth.Set("client_id", cfg.GitHubClientID)
	}
	if cfg.GitHubClientSecret != "" {
		auth.Set("client_secret", cfg.GitHubClientSecret)
	}
	if cfg.GitHubAccessToken != "" {
		auth.Set("access_token", cfg.GitHubAccessToken)
	}

	return &Provider{
		repoSpec: parsed,
		client:   httpclient.FromConfig(cfg),
		apiBase:  strings.TrimSuffix(cfg.GitHubAPIURL, "/"),
		auth:     auth,
	}, nil
}

// ResolveRef resolves the spec's ref to a commit SHA via the commit-lookup
// endpoint. A ref that does not exist is reported as found == false, not as
// an error. No retries happen here; retry policy belongs to the caller.
func (p *Provider) ResolveRef(ctx context.Context) (string, bool, error) {
	if p.resolvedRef != "" {
		return p.resolvedRef, true, nil
	}

	apiURL := fmt.Sprintf("%s/repos/%s/%s/commits/%s", p.apiBase, p.owner, p.repo, p.ref)

	// Log before credentials are appended. They must never reach the logs.
	slog.Debug("fetching commit", "url", apiURL)

	if len(p.auth) > 0 {
		apiURL += "?" + p.auth.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return "", false, fmt.Errorf("building commit request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("fetching commit for %s/%s@%s: %w", p.owner, p.repo, p.ref, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", false, nil
	case resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0":
		return "", false, rateLimitError(resp)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", false, &provider.ResolutionError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	var commit struct {
		SHA string `json:"sha"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&commit); err != nil {
		return "", false, fmt.Errorf("decoding commit response: %w", err)
	}
	if commit.SHA == "" {
		// A success payload without a sha. Kept lenient: treated as not
		// found rather than a malformed-upstream error.
		slog.Debug("commit response carried no sha", "owner", p.owner, "repo", p.repo, "ref", p.ref)
		return "", false, nil
	}

	p.resolvedRef = commit.SHA
	return p.resolvedRef, true, nil
}

// rateLimitError turns an exhausted-rate-limit response into a typed error
// carrying a concrete wait time, logging the detail before failing.
func rateLimitError(resp *http.Response) error {
	limit, _ := strconv.Atoi(resp.Header.Get("X-RateLimit-Limit"))
	resetUnix, _ := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64)
	resetAt := time.Unix(resetUnix, 0)
	untilReset := time.Until(resetAt)

	slog.Error("GitHub rate limit exceeded",
		"limit", limit,
		"reset_in_seconds", int(untilReset.Seconds()),
		"reset_at", resetAt.Format(time.RFC1123),
	)

	return &provider.RateLimitError{
		Service: "GitHub",
		Limit:   limit,
		ResetAt: resetAt,
		Wait:    provider.RetryWait(untilReset),
	}
}
