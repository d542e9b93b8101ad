package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// PreviousRevision is the base used when the build runs on the default branch.
// The checkout's HEAD is the commit being built, so one revision back is the
// commit's immediate predecessor.
const PreviousRevision = "HEAD~1"

// CompareOptions configures a comparison.
type CompareOptions struct {
	Commit        string // the commit reference to report on
	CurrentBranch string // the branch the pipeline is building
	Remote        string // defaults to "origin"
	DefaultBranch string // overrides remote HEAD discovery when set
	Include       []string
	Exclude       []string
	Log           *zerolog.Logger
}

// Compare determines the comparison base for a commit and returns the files
// that differ between the two revisions.
//
// The base is the merge-base of the commit and the default branch, except when
// the pipeline is building the default branch itself, in which case the commit
// is compared against the previous revision of the checkout.
func Compare(ctx context.Context, r Resolver, opts CompareOptions) (*Comparison, error) {
	base, kind, defaultBranch, err := resolveBase(ctx, r, opts)
	if err != nil {
		return nil, err
	}

	files, err := r.ChangedFiles(ctx, base, opts.Commit)
	if err != nil {
		return nil, err
	}
	files = filterEntries(files, opts.Include, opts.Exclude)

	return &Comparison{
		Commit:        opts.Commit,
		Base:          base,
		BaseKind:      kind,
		DefaultBranch: defaultBranch,
		Files:         files,
	}, nil
}

// ResolveBase determines only the comparison base for a commit.
func ResolveBase(ctx context.Context, r Resolver, opts CompareOptions) (string, BaseKind, error) {
	base, kind, _, err := resolveBase(ctx, r, opts)
	return base, kind, err
}

func resolveBase(ctx context.Context, r Resolver, opts CompareOptions) (string, BaseKind, string, error) {
	if strings.TrimSpace(opts.Commit) == "" {
		return "", 0, "", fmt.Errorf("commit reference is required")
	}
	log := opts.Log
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	remote := opts.Remote
	if remote == "" {
		remote = "origin"
	}

	defaultBranch := opts.DefaultBranch
	if defaultBranch == "" {
		var err error
		defaultBranch, err = r.DefaultBranch(ctx, remote)
		if err != nil {
			return "", 0, "", err
		}
	}
	log.Debug().Str("branch", defaultBranch).Str("remote", remote).Msg("default branch resolved")

	// The merge-base is taken against the remote-tracking ref: in a CI
	// checkout the local default branch may be stale or absent.
	mergeBase, err := r.MergeBase(ctx, remote+"/"+defaultBranch, opts.Commit)
	if err != nil {
		return "", 0, "", err
	}
	log.Debug().Str("hash", mergeBase).Msg("merge base computed")

	base := mergeBase
	kind := BaseMergeBase
	if opts.CurrentBranch == defaultBranch {
		base = PreviousRevision
		kind = BasePreviousCommit
	}
	log.Debug().Str("base", base).Stringer("kind", kind).Msg("comparison base selected")

	return base, kind, defaultBranch, nil
}
