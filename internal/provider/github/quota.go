package github

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v80/github"

	"repo-resolver/internal/config"
)

// QuotaStatus reports the authenticated core rate limit of the GitHub API.
// The rate limit is the one resource all provider instances share, so build
// schedulers poll this before accepting large batches.
type QuotaStatus struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// CheckQuota fetches the current core rate-limit status. The lookup itself
// does not count against the rate limit.
func CheckQuota(ctx context.Context, cfg *config.Config) (*QuotaStatus, error) {
	client := github.NewClient(nil)
	if cfg.GitHubAccessToken != "" {
		client = client.WithAuthToken(cfg.GitHubAccessToken)
	}

	if cfg.GitHubAPIURL != "" && cfg.GitHubAPIURL != config.DefaultGitHubAPIURL {
		base, err := url.Parse(strings.TrimSuffix(cfg.GitHubAPIURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parsing API URL: %w", err)
		}
		client.BaseURL = base
	}

	limits, _, err := client.RateLimit.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching rate limit: %w", err)
	}

	core := limits.GetCore()
	return &QuotaStatus{
		Limit:     core.Limit,
		Remaining: core.Remaining,
		ResetAt:   core.Reset.Time,
	}, nil
}
