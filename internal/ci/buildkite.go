// Package ci reads the Buildkite build context from the environment.
package ci

import "os"

// Environment is a snapshot of the Buildkite variables relevant to diff
// reporting. Branch drives base selection; the rest is diagnostics.
type Environment struct {
	// Branch is the branch being built (BUILDKITE_BRANCH).
	Branch string

	// Commit is the commit being built (BUILDKITE_COMMIT).
	Commit string

	// Pipeline is the pipeline slug (BUILDKITE_PIPELINE_SLUG).
	Pipeline string

	// BuildNumber is the build number (BUILDKITE_BUILD_NUMBER).
	BuildNumber string
}

// FromEnv captures the current process environment.
func FromEnv() Environment {
	return Environment{
		Branch:      os.Getenv("BUILDKITE_BRANCH"),
		Commit:      os.Getenv("BUILDKITE_COMMIT"),
		Pipeline:    os.Getenv("BUILDKITE_PIPELINE_SLUG"),
		BuildNumber: os.Getenv("BUILDKITE_BUILD_NUMBER"),
	}
}

// IsBuildkite reports whether the process appears to run inside a Buildkite job.
func (e Environment) IsBuildkite() bool {
	return os.Getenv("BUILDKITE") == "true" || e.Branch != ""
}
