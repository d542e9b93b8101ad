package git

import "context"

// Resolver defines the revision queries needed to build a Comparison.
// This abstraction allows for easier testing and alternative implementations.
type Resolver interface {
	// DefaultBranch returns the short name of the branch the remote
	// advertises as its HEAD (e.g. "main").
	DefaultBranch(ctx context.Context, remote string) (string, error)

	// MergeBase returns the hash of the nearest common ancestor of two revisions.
	MergeBase(ctx context.Context, a, b string) (string, error)

	// ChangedFiles returns the files that differ between base and commit,
	// in the order the underlying diff reports them.
	ChangedFiles(ctx context.Context, base, commit string) ([]FileEntry, error)
}

// Compile-time interface conformance checks.
var (
	_ Resolver = (*CLIResolver)(nil)
	_ Resolver = (*GoGitResolver)(nil)
)
