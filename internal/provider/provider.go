package provider

import (
	"context"
)

// RepoProvider represents a version-control service that can turn a
// user-supplied repository spec into values a build pipeline can use:
// an immutable commit SHA, a canonical repository URL, and a cache slug.
type RepoProvider interface {
	// ResolveRef resolves the spec's ref to a commit SHA. found is false when
	// the ref does not exist on the remote; that is a valid outcome, not an
	// error. A successful resolution is memoized for the instance lifetime,
	// so repeat calls return the same SHA without network I/O.
	ResolveRef(ctx context.Context) (sha string, found bool, err error)

	// RepoURL returns the canonical URL of the repository. Pure function of
	// the parsed spec, no I/O.
	RepoURL() string

	// BuildSlug returns a stable owner-repo identifier consumed as part of a
	// downstream build cache key. The format must stay stable: changing it
	// invalidates existing build caches.
	BuildSlug() string
}
