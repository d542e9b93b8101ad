package git

import (
	"context"
	"fmt"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GoGitResolver answers revision queries with go-git, without requiring a git
// binary on the PATH. The remote's HEAD branch is read from the local
// refs/remotes/<remote>/HEAD symref, which clones carry by default.
type GoGitResolver struct {
	repo *gogit.Repository
	opts ResolverOptions
}

// NewGoGitResolver opens the repository at opts.RepoPath.
func NewGoGitResolver(opts ResolverOptions) (*GoGitResolver, error) {
	if opts.RepoPath == "" {
		opts.RepoPath = "."
	}
	repo, err := gogit.PlainOpen(opts.RepoPath)
	if err != nil {
		return nil, fmt.Errorf("open repository %q: %w", opts.RepoPath, err)
	}
	return &GoGitResolver{repo: repo, opts: opts}, nil
}

// DefaultBranch resolves the remote's HEAD branch from the remote-tracking symref.
func (r *GoGitResolver) DefaultBranch(_ context.Context, remote string) (string, error) {
	name := plumbing.ReferenceName("refs/remotes/" + remote + "/HEAD")
	ref, err := r.repo.Reference(name, false)
	if err != nil {
		return "", fmt.Errorf("resolve %s (try `git remote set-head %s --auto`): %w", name, remote, err)
	}
	if ref.Type() != plumbing.SymbolicReference {
		return "", fmt.Errorf("%s is not a symbolic reference", name)
	}
	target := ref.Target().String()
	branch := strings.TrimPrefix(target, "refs/remotes/"+remote+"/")
	if branch == target || branch == "" {
		return "", fmt.Errorf("unexpected remote HEAD target %q", target)
	}
	return branch, nil
}

// MergeBase returns the nearest common ancestor of two revisions.
func (r *GoGitResolver) MergeBase(_ context.Context, a, b string) (string, error) {
	commitA, err := r.resolveCommit(a)
	if err != nil {
		return "", err
	}
	commitB, err := r.resolveCommit(b)
	if err != nil {
		return "", err
	}

	bases, err := commitA.MergeBase(commitB)
	if err != nil {
		return "", fmt.Errorf("merge base of %q and %q: %w", a, b, err)
	}
	if len(bases) == 0 {
		return "", fmt.Errorf("no merge base between %q and %q", a, b)
	}
	return bases[0].Hash.String(), nil
}

// ChangedFiles diffs the trees of base and commit with rename detection.
func (r *GoGitResolver) ChangedFiles(ctx context.Context, base, commit string) ([]FileEntry, error) {
	baseTree, err := r.resolveTree(base)
	if err != nil {
		return nil, err
	}
	commitTree, err := r.resolveTree(commit)
	if err != nil {
		return nil, err
	}

	changes, err := object.DiffTreeWithOptions(ctx, baseTree, commitTree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, fmt.Errorf("diff %q and %q: %w", base, commit, err)
	}

	entries := make([]FileEntry, 0, len(changes))
	for _, change := range changes {
		entry, ok := classifyChange(change)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *GoGitResolver) resolveCommit(rev string) (*object.Commit, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolve revision %q: %w", rev, err)
	}
	commit, err := r.repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("load commit %s: %w", hash, err)
	}
	return commit, nil
}

func (r *GoGitResolver) resolveTree(rev string) (*object.Tree, error) {
	commit, err := r.resolveCommit(rev)
	if err != nil {
		return nil, err
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("load tree of %s: %w", commit.Hash, err)
	}
	return tree, nil
}

// classifyChange maps a go-git tree change onto a FileEntry.
func classifyChange(change *object.Change) (FileEntry, bool) {
	from, to := change.From, change.To

	// Skip entries where neither side is a file (submodule pointer bumps).
	fromFile := from.Name != "" && from.TreeEntry.Mode.IsFile()
	toFile := to.Name != "" && to.TreeEntry.Mode.IsFile()
	if !fromFile && !toFile {
		return FileEntry{}, false
	}

	switch {
	case from.Name == "" && to.Name != "":
		return FileEntry{Path: to.Name, Kind: ChangeKindAdded}, true
	case from.Name != "" && to.Name == "":
		return FileEntry{Path: from.Name, Kind: ChangeKindDeleted}, true
	case from.Name != to.Name:
		return FileEntry{Path: to.Name, OldPath: from.Name, Kind: ChangeKindRenamed}, true
	case from.Name != "":
		return FileEntry{Path: to.Name, Kind: ChangeKindModified}, true
	default:
		return FileEntry{}, false
	}
}
