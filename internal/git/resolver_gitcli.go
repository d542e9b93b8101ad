package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/filemode"
)

// CLIResolver answers revision queries by shelling out to the git binary.
// Errors carry git's own stderr so upstream failures surface untranslated.
type CLIResolver struct {
	opts ResolverOptions
}

// NewCLIResolver creates a resolver backed by the git CLI.
func NewCLIResolver(opts ResolverOptions) *CLIResolver {
	if opts.RepoPath == "" {
		opts.RepoPath = "."
	}
	return &CLIResolver{opts: opts}
}

func (r *CLIResolver) git(ctx context.Context, args ...string) ([]byte, error) {
	full := append([]string{"-C", r.opts.RepoPath}, args...)
	out, err := exec.CommandContext(ctx, "git", full...).CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("git %s failed: %w: %s", args[0], err, strings.TrimSpace(string(out)))
	}
	return out, nil
}

// DefaultBranch queries the remote's advertised HEAD branch.
func (r *CLIResolver) DefaultBranch(ctx context.Context, remote string) (string, error) {
	out, err := r.git(ctx, "ls-remote", "--symref", remote, "HEAD")
	if err != nil {
		return "", err
	}
	branch, err := parseSymrefHead(out)
	if err != nil {
		return "", fmt.Errorf("remote %q: %w", remote, err)
	}
	return branch, nil
}

// MergeBase returns the nearest common ancestor of two revisions.
func (r *CLIResolver) MergeBase(ctx context.Context, a, b string) (string, error) {
	out, err := r.git(ctx, "merge-base", a, b)
	if err != nil {
		return "", err
	}
	hash := strings.TrimSpace(string(out))
	if hash == "" {
		return "", fmt.Errorf("no merge base between %q and %q", a, b)
	}
	return hash, nil
}

// ChangedFiles returns the files that differ between base and commit.
func (r *CLIResolver) ChangedFiles(ctx context.Context, base, commit string) ([]FileEntry, error) {
	out, err := r.git(ctx, "diff", "--raw", "-z", "-M", base, commit)
	if err != nil {
		return nil, err
	}
	return parseRawDiff(out)
}

// parseSymrefHead extracts the branch name from `ls-remote --symref <remote> HEAD`
// output, whose first line looks like "ref: refs/heads/main\tHEAD".
func parseSymrefHead(out []byte) (string, error) {
	for _, line := range strings.Split(string(out), "\n") {
		if !strings.HasPrefix(line, "ref:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		ref := fields[1]
		if branch := strings.TrimPrefix(ref, "refs/heads/"); branch != ref && branch != "" {
			return branch, nil
		}
	}
	return "", fmt.Errorf("no advertised HEAD branch in ls-remote output")
}

// parseRawDiff parses NUL-delimited `git diff --raw -z` output.
// Each entry is ":srcmode dstmode srcsha dstsha status\0path\0", with a second
// path field for rename and copy statuses.
func parseRawDiff(data []byte) ([]FileEntry, error) {
	i := 0
	for i < len(data) && (data[i] == '\n' || data[i] == '\r') {
		i++
	}

	entries := make([]FileEntry, 0, 32)

	for i < len(data) && data[i] == ':' {
		meta, ok := readUntilNUL(data, &i)
		if !ok {
			return nil, fmt.Errorf("unexpected git --raw format (missing NUL)")
		}

		fields := strings.Fields(string(meta))
		if len(fields) < 5 {
			return nil, fmt.Errorf("unexpected git --raw meta: %q", string(meta))
		}

		srcMode, err := filemode.New(strings.TrimPrefix(fields[0], ":"))
		if err != nil {
			return nil, fmt.Errorf("parse file mode %q: %w", fields[0], err)
		}
		dstMode, err := filemode.New(fields[1])
		if err != nil {
			return nil, fmt.Errorf("parse file mode %q: %w", fields[1], err)
		}

		status := fields[len(fields)-1]
		kind := kindFromDiffStatus(status)

		path, ok := readStringUntilNUL(data, &i)
		if !ok {
			return nil, fmt.Errorf("unexpected git --raw format (missing path)")
		}

		oldPath := ""
		if kind.HasTwoPaths() {
			newPath, ok := readStringUntilNUL(data, &i)
			if !ok {
				return nil, fmt.Errorf("unexpected git --raw format (missing rename path)")
			}
			oldPath = path
			path = newPath
		}

		// Entries where neither side is a file (submodule pointer bumps)
		// carry no path a sub-pipeline could match on.
		if !srcMode.IsFile() && !dstMode.IsFile() {
			continue
		}
		if path == "" {
			continue
		}

		entries = append(entries, FileEntry{
			Path:    path,
			OldPath: oldPath,
			Kind:    kind,
		})
	}

	return entries, nil
}

// kindFromDiffStatus converts a git diff status field (e.g. "M", "A", "R100")
// to a ChangeKind.
func kindFromDiffStatus(status string) ChangeKind {
	if status == "" {
		return ChangeKindModified
	}
	switch status[0] {
	case 'A':
		return ChangeKindAdded
	case 'D':
		return ChangeKindDeleted
	case 'R':
		return ChangeKindRenamed
	case 'C':
		return ChangeKindCopied
	default:
		return ChangeKindModified
	}
}

func readUntilNUL(b []byte, i *int) ([]byte, bool) {
	if *i >= len(b) {
		return nil, false
	}
	j := bytes.IndexByte(b[*i:], 0)
	if j == -1 {
		return nil, false
	}
	start := *i
	end := *i + j
	*i = end + 1
	return b[start:end], true
}

func readStringUntilNUL(b []byte, i *int) (string, bool) {
	raw, ok := readUntilNUL(b, i)
	if !ok {
		return "", false
	}
	return string(raw), true
}
