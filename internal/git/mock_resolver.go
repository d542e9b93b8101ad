package git

import "context"

// MockResolver is a test double for Resolver.
// It allows tests to provide predefined answers without needing a real Git repository.
type MockResolver struct {
	Branch string
	Base   string
	Files  []FileEntry
	Error  error

	Calls         []string  // method names in invocation order
	MergeBaseRefs [2]string // refs passed to MergeBase
	DiffRefs      [2]string // base and commit passed to ChangedFiles
}

// DefaultBranch returns the predefined branch or error.
func (m *MockResolver) DefaultBranch(_ context.Context, _ string) (string, error) {
	m.Calls = append(m.Calls, "DefaultBranch")
	return m.Branch, m.Error
}

// MergeBase returns the predefined base hash or error.
func (m *MockResolver) MergeBase(_ context.Context, a, b string) (string, error) {
	m.Calls = append(m.Calls, "MergeBase")
	m.MergeBaseRefs = [2]string{a, b}
	return m.Base, m.Error
}

// ChangedFiles returns the predefined entries or error.
func (m *MockResolver) ChangedFiles(_ context.Context, base, commit string) ([]FileEntry, error) {
	m.Calls = append(m.Calls, "ChangedFiles")
	m.DiffRefs = [2]string{base, commit}
	return m.Files, m.Error
}

// Compile-time interface conformance check.
var _ Resolver = (*MockResolver)(nil)
