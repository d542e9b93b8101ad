package git

import (
	"context"
	"testing"
)

// buildDivergedRepo creates the canonical pipeline scenario: a default branch,
// a feature branch diverging from it, and remote-tracking refs as a clone
// would have them. Returns the repo, the default branch name, and the
// divergence point hash.
func buildDivergedRepo(t *testing.T) (*testRepo, string, string) {
	t.Helper()

	r := newTestRepo(t)

	r.write("a.txt", "one\n")
	r.commit("initial")

	r.write("src/a.txt", "alpha\n")
	divergence := r.commit("add src/a.txt")

	defaultBranch := r.headBranch()
	r.setRemoteHead(defaultBranch, divergence)

	r.checkoutNew("feature")
	r.write("src/a.txt", "alpha beta\n")
	r.commit("tweak src/a.txt")

	return r, defaultBranch, divergence.String()
}

func TestGoGitResolver_DefaultBranch(t *testing.T) {
	r, defaultBranch, _ := buildDivergedRepo(t)

	resolver, err := NewGoGitResolver(ResolverOptions{RepoPath: r.dir})
	if err != nil {
		t.Fatalf("NewGoGitResolver: %v", err)
	}

	branch, err := resolver.DefaultBranch(context.Background(), "origin")
	if err != nil {
		t.Fatalf("DefaultBranch: %v", err)
	}
	if branch != defaultBranch {
		t.Errorf("branch = %q, want %q", branch, defaultBranch)
	}
}

func TestGoGitResolver_DefaultBranch_MissingSymref(t *testing.T) {
	r := newTestRepo(t)
	r.write("a.txt", "one\n")
	r.commit("initial")

	resolver, err := NewGoGitResolver(ResolverOptions{RepoPath: r.dir})
	if err != nil {
		t.Fatalf("NewGoGitResolver: %v", err)
	}

	if _, err := resolver.DefaultBranch(context.Background(), "origin"); err == nil {
		t.Fatal("expected error without refs/remotes/origin/HEAD")
	}
}

func TestGoGitResolver_MergeBase(t *testing.T) {
	r, defaultBranch, divergence := buildDivergedRepo(t)

	resolver, err := NewGoGitResolver(ResolverOptions{RepoPath: r.dir})
	if err != nil {
		t.Fatalf("NewGoGitResolver: %v", err)
	}

	base, err := resolver.MergeBase(context.Background(), "origin/"+defaultBranch, "feature")
	if err != nil {
		t.Fatalf("MergeBase: %v", err)
	}
	if base != divergence {
		t.Errorf("base = %s, want %s", base, divergence)
	}
}

func TestGoGitResolver_ChangedFiles(t *testing.T) {
	r, _, divergence := buildDivergedRepo(t)

	resolver, err := NewGoGitResolver(ResolverOptions{RepoPath: r.dir})
	if err != nil {
		t.Fatalf("NewGoGitResolver: %v", err)
	}

	entries, err := resolver.ChangedFiles(context.Background(), divergence, "feature")
	if err != nil {
		t.Fatalf("ChangedFiles: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %#v, expected exactly one", entries)
	}
	if entries[0].Path != "src/a.txt" || entries[0].Kind != ChangeKindModified {
		t.Errorf("entries[0] = %#v", entries[0])
	}
}

func TestGoGitResolver_ChangedFiles_Rename(t *testing.T) {
	r := newTestRepo(t)

	// Content must survive the rename unchanged for detection to kick in.
	content := "package lib\n\nfunc Answer() int { return 42 }\n"
	r.write("old.go", content)
	first := r.commit("add old.go")

	r.remove("old.go")
	r.write("new.go", content)
	second := r.commit("rename old.go to new.go")

	resolver, err := NewGoGitResolver(ResolverOptions{RepoPath: r.dir})
	if err != nil {
		t.Fatalf("NewGoGitResolver: %v", err)
	}

	entries, err := resolver.ChangedFiles(context.Background(), first.String(), second.String())
	if err != nil {
		t.Fatalf("ChangedFiles: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %#v, expected a single rename entry", entries)
	}
	if entries[0].Kind != ChangeKindRenamed {
		t.Errorf("Kind = %v, want %v", entries[0].Kind, ChangeKindRenamed)
	}
	if entries[0].OldPath != "old.go" || entries[0].Path != "new.go" {
		t.Errorf("entries[0] = %#v", entries[0])
	}
}

func TestGoGitResolver_Compare_FeatureBranch(t *testing.T) {
	r, defaultBranch, divergence := buildDivergedRepo(t)

	resolver, err := NewGoGitResolver(ResolverOptions{RepoPath: r.dir})
	if err != nil {
		t.Fatalf("NewGoGitResolver: %v", err)
	}

	cmp, err := Compare(context.Background(), resolver, CompareOptions{
		Commit:        "feature",
		CurrentBranch: "feature",
	})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}

	if cmp.Base != divergence {
		t.Errorf("Base = %s, want %s", cmp.Base, divergence)
	}
	if cmp.BaseKind != BaseMergeBase {
		t.Errorf("BaseKind = %v, want %v", cmp.BaseKind, BaseMergeBase)
	}
	if cmp.DefaultBranch != defaultBranch {
		t.Errorf("DefaultBranch = %q, want %q", cmp.DefaultBranch, defaultBranch)
	}
	if len(cmp.Files) != 1 || cmp.Files[0].Path != "src/a.txt" {
		t.Errorf("Files = %#v", cmp.Files)
	}
}

func TestGoGitResolver_Compare_DefaultBranch(t *testing.T) {
	// A default-branch build: HEAD is the commit being built, so the base
	// HEAD~1 must resolve to its immediate predecessor.
	r, defaultBranch, _ := buildDivergedRepo(t)

	resolver, err := NewGoGitResolver(ResolverOptions{RepoPath: r.dir})
	if err != nil {
		t.Fatalf("NewGoGitResolver: %v", err)
	}

	cmp, err := Compare(context.Background(), resolver, CompareOptions{
		Commit:        "HEAD",
		CurrentBranch: defaultBranch,
	})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}

	if cmp.Base != PreviousRevision {
		t.Errorf("Base = %q, want %q", cmp.Base, PreviousRevision)
	}
	if cmp.BaseKind != BasePreviousCommit {
		t.Errorf("BaseKind = %v, want %v", cmp.BaseKind, BasePreviousCommit)
	}
	// HEAD is the feature tip here; HEAD~1 is the divergence commit.
	if len(cmp.Files) != 1 || cmp.Files[0].Path != "src/a.txt" {
		t.Errorf("Files = %#v", cmp.Files)
	}
}
