package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/pipeline-tools/diffscope/internal/git"
	"github.com/pipeline-tools/diffscope/internal/output"
)

// ChangedCmd returns the changed command.
func ChangedCmd() *cli.Command {
	return &cli.Command{
		Name:      "changed",
		Usage:     "List files changed between a commit and its comparison base",
		ArgsUsage: "<commit-ref>",
		Flags:     commonFlags(),
		Action:    changedAction,
	}
}

func changedAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("argument is missing.", 1)
	}
	commit := c.Args().Get(0)

	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	cmp, err := git.Compare(c.Context, ctx.Resolver, ctx.CompareOptions(commit))
	if err != nil {
		return err
	}

	opts := getOutputOptions(c)
	writer := output.NewReportWriter(opts.Format)
	return writer.Write(cmp, opts)
}
