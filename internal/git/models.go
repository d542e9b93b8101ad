package git

// FileEntry represents a single file that differs between two revisions.
type FileEntry struct {
	Path    string
	OldPath string // set for renames and copies
	Kind    ChangeKind
}

// ChangeKind represents the type of change.
type ChangeKind int

const (
	ChangeKindAdded ChangeKind = iota
	ChangeKindModified
	ChangeKindDeleted
	ChangeKindRenamed
	ChangeKindCopied
)

// String returns a string representation of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeKindAdded:
		return "added"
	case ChangeKindModified:
		return "modified"
	case ChangeKindDeleted:
		return "deleted"
	case ChangeKindRenamed:
		return "renamed"
	case ChangeKindCopied:
		return "copied"
	default:
		return "unknown"
	}
}

// HasTwoPaths reports whether entries of this kind carry an old and a new path.
func (k ChangeKind) HasTwoPaths() bool {
	return k == ChangeKindRenamed || k == ChangeKindCopied
}

// BaseKind says how the comparison base was chosen.
type BaseKind int

const (
	// BasePreviousCommit means the build ran on the default branch and the
	// commit is compared against the checkout's previous revision.
	BasePreviousCommit BaseKind = iota
	// BaseMergeBase means the commit is compared against the point where its
	// branch diverged from the default branch.
	BaseMergeBase
)

// String returns a string representation of the base kind.
func (k BaseKind) String() string {
	switch k {
	case BasePreviousCommit:
		return "previous-commit"
	case BaseMergeBase:
		return "merge-base"
	default:
		return "unknown"
	}
}

// Comparison is the result of resolving and diffing a commit against its base.
type Comparison struct {
	Commit        string // the supplied commit reference, as given
	Base          string // the resolved base revision
	BaseKind      BaseKind
	DefaultBranch string
	Files         []FileEntry
}

// ResolverOptions configures a resolver.
type ResolverOptions struct {
	RepoPath string
}
