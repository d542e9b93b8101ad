package output

import (
	"bufio"

	"github.com/pipeline-tools/diffscope/internal/git"
)

// NullWriter emits NUL-separated paths with no header, safe to pipe into
// `xargs -0` regardless of what characters the paths contain.
type NullWriter struct{}

// Write outputs the changed paths separated by NUL bytes.
func (w *NullWriter) Write(cmp *git.Comparison, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	buf := bufio.NewWriter(out)
	for _, entry := range cmp.Files {
		if entry.Kind.HasTwoPaths() {
			if _, err := buf.WriteString(entry.OldPath); err != nil {
				return err
			}
			if err := buf.WriteByte(0); err != nil {
				return err
			}
		}
		if _, err := buf.WriteString(entry.Path); err != nil {
			return err
		}
		if err := buf.WriteByte(0); err != nil {
			return err
		}
	}
	return buf.Flush()
}
