package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/pipeline-tools/diffscope/config"
	"github.com/pipeline-tools/diffscope/internal/ci"
	"github.com/pipeline-tools/diffscope/internal/git"
	"github.com/pipeline-tools/diffscope/internal/logger"
)

// CommandContext holds common state for command execution.
// It encapsulates the shared setup logic across commands.
type CommandContext struct {
	Config   *config.Config
	RepoPath string
	Remote   string
	Branch   string // the branch being built
	Env      ci.Environment
	Resolver git.Resolver
	Log      zerolog.Logger
}

// NewCommandContext creates a context from CLI flags.
// It loads the env file and configuration, snapshots the CI environment,
// and constructs the selected resolver engine.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	if envFile := c.String("env-file"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	log := logger.New(c.Bool("verbose"))

	repoPath := c.String("repo")
	if repoPath == "" {
		repoPath = "."
	}
	remote := c.String("remote")
	if remote == "" {
		remote = cfg.Remote
	}
	if db := c.String("default-branch"); db != "" {
		cfg.DefaultBranch = db
	}

	env := ci.FromEnv()
	branch := c.String("branch")
	if branch == "" {
		branch = env.Branch
	}

	engine := c.String("engine")
	if engine == "" {
		engine = cfg.Engine
	}
	resolver, err := newResolver(engine, repoPath)
	if err != nil {
		return nil, err
	}

	if env.IsBuildkite() {
		log.Debug().
			Str("pipeline", env.Pipeline).
			Str("build", env.BuildNumber).
			Str("branch", env.Branch).
			Msg("buildkite environment detected")
	}

	return &CommandContext{
		Config:   cfg,
		RepoPath: repoPath,
		Remote:   remote,
		Branch:   branch,
		Env:      env,
		Resolver: resolver,
		Log:      log,
	}, nil
}

// CompareOptions assembles the comparison options for the given commit.
func (ctx *CommandContext) CompareOptions(commit string) git.CompareOptions {
	return git.CompareOptions{
		Commit:        commit,
		CurrentBranch: ctx.Branch,
		Remote:        ctx.Remote,
		DefaultBranch: ctx.Config.DefaultBranch,
		Include:       ctx.Config.Filters.Include,
		Exclude:       ctx.Config.Filters.Exclude,
		Log:           &ctx.Log,
	}
}

func newResolver(engine, repoPath string) (git.Resolver, error) {
	opts := git.ResolverOptions{RepoPath: repoPath}
	switch engine {
	case "", "gitcli":
		return git.NewCLIResolver(opts), nil
	case "gogit":
		return git.NewGoGitResolver(opts)
	default:
		return nil, fmt.Errorf("unknown engine %q (expected gitcli or gogit)", engine)
	}
}
