package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/urfave/cli/v2"

	"github.com/pipeline-tools/diffscope/config"
	"github.com/pipeline-tools/diffscope/internal/output"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "diffscope",
		Usage:   "Report files changed between a commit and its pipeline comparison base",
		Version: "1.1.0",
		Commands: []*cli.Command{
			ChangedCmd(),
			BaseCmd(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
		},
		Action: defaultAction,
	}
}

// Common flags shared across commands
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Path to Git repository",
			Value:   ".",
		},
		&cli.StringFlag{
			Name:  "remote",
			Usage: "Remote queried for the advertised HEAD branch",
		},
		&cli.StringFlag{
			Name:    "branch",
			Aliases: []string{"b"},
			Usage:   "Branch being built (default: BUILDKITE_BRANCH)",
		},
		&cli.StringFlag{
			Name:  "default-branch",
			Usage: "Skip remote HEAD discovery and use this branch",
		},
		&cli.StringFlag{
			Name:    "engine",
			Aliases: []string{"e"},
			Usage:   "Resolver engine (gitcli, gogit)",
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Glob patterns to include (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns to exclude (can be specified multiple times)",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json, null)",
			Value:   "console",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
		&cli.StringFlag{
			Name:  "env-file",
			Usage: "Load environment variables from this dotenv file first",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path to configuration file",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Log resolution steps to stderr",
		},
	}
}

// getOutputOptions builds OutputOptions from CLI flags.
func getOutputOptions(c *cli.Context) output.OutputOptions {
	return output.OutputOptions{
		Format:     output.ParseFormat(c.String("format")),
		OutputPath: c.String("output"),
	}
}

// loadConfig loads configuration from file or defaults.
func loadConfig(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Apply filter overrides from CLI
	if includes := c.StringSlice("include"); len(includes) > 0 {
		cfg.Filters.Include = includes
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Filters.Exclude = excludes
	}

	return cfg, nil
}

// defaultAction handles the bare invocation `diffscope <commit>`, the contract
// pipeline steps rely on. Zero arguments is a usage error.
func defaultAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("argument is missing.", 1)
	}
	return changedAction(c)
}

// exitCode maps an error to the process exit code. Failures of the git binary
// surface with whatever code git exited with; everything else exits 1.
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code > 0 {
			return code
		}
	}
	return 1
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}
