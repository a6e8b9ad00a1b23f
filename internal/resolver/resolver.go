package resolver

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"repo-resolver/internal/config"
	"repo-resolver/internal/provider"
	"repo-resolver/internal/provider/github"
	"repo-resolver/internal/provider/gitlab"
)

// compile-time contract checks for every provider variant
var (
	_ provider.RepoProvider = (*github.Provider)(nil)
	_ provider.RepoProvider = (*github.GraphQLProvider)(nil)
	_ provider.RepoProvider = (*gitlab.Provider)(nil)
)

// New constructs a provider for the named service. Callers depend only on
// the RepoProvider contract, so new services slot in here without touching
// call sites.
func New(name, spec string, cfg *config.Config) (provider.RepoProvider, error) {
	switch name {
	case "github", "":
		return github.NewProvider(spec, cfg)
	case "gitlab":
		return gitlab.New(spec, cfg)
	default:
		return nil, fmt.Errorf("unknown provider %q (supported: github, gitlab)", name)
	}
}

// Result pairs a spec with its resolution outcome. Found is false when the
// ref does not exist; that still produces a Result, not an error.
type Result struct {
	Spec      string
	SHA       string
	Found     bool
	RepoURL   string
	BuildSlug string
}

// ResolveAll resolves specs concurrently, one provider instance per spec.
// Instances share no state, so the fan-out needs no locking. Results keep
// the order of the input specs. Construction errors and resolution failures
// abort the whole batch; callers own any retry policy.
func ResolveAll(ctx context.Context, cfg *config.Config, providerName string, specs []string) ([]Result, error) {
	providers := make([]provider.RepoProvider, len(specs))
	for i, spec := range specs {
		p, err := New(providerName, spec, cfg)
		if err != nil {
			return nil, err
		}
		providers[i] = p
	}

	results := make([]Result, len(specs))
	g, gCtx := errgroup.WithContext(ctx)

	for i, spec := range specs {
		p := providers[i]
		g.Go(func() error {
			sha, found, err := p.ResolveRef(gCtx)
			if err != nil {
				return fmt.Errorf("resolving %q: %w", spec, err)
			}
			results[i] = Result{
				Spec:      spec,
				SHA:       sha,
				Found:     found,
				RepoURL:   p.RepoURL(),
				BuildSlug: p.BuildSlug(),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
