package output

import (
	"io"
	"os"

	"github.com/pipeline-tools/diffscope/internal/git"
)

// Compile-time interface conformance checks.
var (
	_ ReportWriter = (*ConsoleWriter)(nil)
	_ ReportWriter = (*JSONWriter)(nil)
	_ ReportWriter = (*NullWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole OutputFormat = "console"
	FormatJSON    OutputFormat = "json"
	FormatNull    OutputFormat = "null"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	OutputPath string // empty means stdout
}

// ReportWriter writes a comparison report.
type ReportWriter interface {
	Write(cmp *git.Comparison, options OutputOptions) error
}

// NewReportWriter returns the writer for the given format.
func NewReportWriter(format OutputFormat) ReportWriter {
	switch format {
	case FormatJSON:
		return &JSONWriter{}
	case FormatNull:
		return &NullWriter{}
	default:
		return &ConsoleWriter{}
	}
}

// ParseFormat parses an output format flag value.
func ParseFormat(s string) OutputFormat {
	switch s {
	case "json":
		return FormatJSON
	case "null", "nul", "z":
		return FormatNull
	default:
		return FormatConsole
	}
}

func openOutputWriter(outputPath string) (io.Writer, *os.File, error) {
	if outputPath == "" {
		return os.Stdout, nil, nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}
