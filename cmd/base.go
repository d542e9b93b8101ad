package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/pipeline-tools/diffscope/internal/git"
)

// BaseCmd returns the base command, which prints only the resolved comparison
// base. Some selection scripts run their own diff and just need the revision.
func BaseCmd() *cli.Command {
	return &cli.Command{
		Name:      "base",
		Usage:     "Print the comparison base for a commit without diffing",
		ArgsUsage: "<commit-ref>",
		Flags:     commonFlags(),
		Action:    baseAction,
	}
}

func baseAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("argument is missing.", 1)
	}
	commit := c.Args().Get(0)

	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	base, kind, err := git.ResolveBase(c.Context, ctx.Resolver, ctx.CompareOptions(commit))
	if err != nil {
		return err
	}

	ctx.Log.Debug().Stringer("kind", kind).Msg("base resolved")
	fmt.Println(base)
	return nil
}
