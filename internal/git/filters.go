package git

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// filterEntries applies include/exclude glob patterns to a changed-file list.
// Two-path entries match if either side matches. Entry order is preserved.
func filterEntries(entries []FileEntry, include, exclude []string) []FileEntry {
	if len(include) == 0 && len(exclude) == 0 {
		return entries
	}

	filtered := make([]FileEntry, 0, len(entries))
	for _, e := range entries {
		if matchesFilters(e.Path, include, exclude) ||
			(e.OldPath != "" && matchesFilters(e.OldPath, include, exclude)) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// matchesFilters checks if a path matches the include/exclude patterns.
func matchesFilters(path string, include, exclude []string) bool {
	// Normalize path separators
	path = strings.ReplaceAll(path, "\\", "/")

	// Check exclude patterns first
	for _, pattern := range exclude {
		matched, _ := doublestar.Match(pattern, path)
		if matched {
			return false
		}
	}

	// If no include patterns, accept all
	if len(include) == 0 {
		return true
	}

	// Check include patterns
	for _, pattern := range include {
		matched, _ := doublestar.Match(pattern, path)
		if matched {
			return true
		}
	}

	return false
}
