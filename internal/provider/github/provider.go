package github

import (
	"log/slog"

	"repo-resolver/internal/config"
	"repo-resolver/internal/provider"
)

// NewProvider creates a GitHub provider for the given spec based on
// configuration. Returns the GraphQL-based provider if
// RESOLVER_GITHUB_USE_GRAPHQL=true, otherwise REST-based.
func NewProvider(spec string, cfg *config.Config) (provider.RepoProvider, error) {
	if cfg.GitHubUseGraphQL {
		slog.Debug("using GitHub GraphQL API")
		return NewGraphQLProvider(spec, cfg)
	}

	return New(spec, cfg)
}
