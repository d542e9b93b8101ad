package output

import (
	"bufio"
	"fmt"

	"github.com/fatih/color"

	"github.com/pipeline-tools/diffscope/internal/git"
)

// ConsoleWriter prints the comparison in the format pipeline-selection
// scripts consume: a header line naming the two revisions, then one changed
// path per line in diff order. Renames and copies contribute two lines,
// old path first.
type ConsoleWriter struct{}

// Write outputs the comparison report.
func (w *ConsoleWriter) Write(cmp *git.Comparison, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	buf := bufio.NewWriter(out)

	// color.Fprintf degrades to plain bytes when stdout is not a terminal,
	// so CI consumers always see the bare header. File output is always
	// plain: the TTY check only speaks for stdout.
	if options.OutputPath == "" {
		header := color.New(color.FgCyan)
		if _, err := header.Fprintf(buf, "diff between %s and %s\n", cmp.Commit, cmp.Base); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(buf, "diff between %s and %s\n", cmp.Commit, cmp.Base); err != nil {
			return err
		}
	}

	for _, entry := range cmp.Files {
		if entry.Kind.HasTwoPaths() {
			if _, err := buf.WriteString(entry.OldPath + "\n"); err != nil {
				return err
			}
		}
		if _, err := buf.WriteString(entry.Path + "\n"); err != nil {
			return err
		}
	}

	return buf.Flush()
}
