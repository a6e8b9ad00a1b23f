package github

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"repo-resolver/internal/config"
)

// GraphQLProvider resolves refs through GitHub's GraphQL API. It implements
// the same contract and memoization as the REST provider; the factory picks
// it when the configuration asks for GraphQL and a token is available.
type GraphQLProvider struct {
	repoSpec

	client *githubv4.Client

	resolvedRef string
}

// newGraphQLClient builds an authenticated GraphQL client. GraphQL has no
// unauthenticated mode, so a token is required (enforced at config load).
func newGraphQLClient(token string) *githubv4.Client {
	src := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	httpClient := oauth2.NewClient(context.Background(), src)
	return githubv4.NewClient(httpClient)
}

// NewGraphQLProvider creates a GraphQL-backed provider for the given spec.
// The spec grammar and the derived URL and slug are identical to the REST
// provider's.
func NewGraphQLProvider(spec string, cfg *config.Config) (*GraphQLProvider, error) {
	parsed, err := parseSpec(spec)
	if err != nil {
		return nil, err
	}

	return &GraphQLProvider{
		repoSpec: parsed,
		client:   newGraphQLClient(cfg.GitHubAccessToken),
	}, nil
}

// ResolveRef resolves the ref to a commit OID via
// repository.object(expression:). A null object means the ref does not
// exist, reported as found == false.
func (p *GraphQLProvider) ResolveRef(ctx context.Context) (string, bool, error) {
	if p.resolvedRef != "" {
		return p.resolvedRef, true, nil
	}

	slog.Debug("resolving ref via GraphQL", "owner", p.owner, "repo", p.repo, "ref", p.ref)

	var query struct {
		Repository struct {
			Object struct {
				Commit struct {
					Oid githubv4.GitObjectID
				} `graphql:"... on Commit"`
			} `graphql:"object(expression: $expression)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}

	variables := map[string]interface{}{
		"owner":      githubv4.String(p.owner),
		"name":       githubv4.String(p.repo),
		"expression": githubv4.String(p.ref),
	}

	if err := p.client.Query(ctx, &query, variables); err != nil {
		return "", false, fmt.Errorf("querying commit for %s/%s@%s: %w", p.owner, p.repo, p.ref, err)
	}

	sha := string(query.Repository.Object.Commit.Oid)
	if sha == "" {
		return "", false, nil
	}

	p.resolvedRef = sha
	return p.resolvedRef, true, nil
}
