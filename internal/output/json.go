package output

import (
	"encoding/json"

	"github.com/pipeline-tools/diffscope/internal/git"
)

// JSONWriter writes comparison reports as JSON for structured consumers.
type JSONWriter struct{}

// JSONReport is the JSON output structure for a comparison.
type JSONReport struct {
	Commit        string     `json:"commit"`
	Base          string     `json:"base"`
	BaseKind      string     `json:"baseKind"`
	DefaultBranch string     `json:"defaultBranch"`
	TotalFiles    int        `json:"totalFiles"`
	Files         []JSONFile `json:"files"`
}

// JSONFile is the JSON output structure for a single changed file.
type JSONFile struct {
	Path    string `json:"path"`
	OldPath string `json:"oldPath,omitempty"`
	Status  string `json:"status"`
}

// Write outputs the comparison report as JSON.
func (w *JSONWriter) Write(cmp *git.Comparison, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	report := JSONReport{
		Commit:        cmp.Commit,
		Base:          cmp.Base,
		BaseKind:      cmp.BaseKind.String(),
		DefaultBranch: cmp.DefaultBranch,
		TotalFiles:    len(cmp.Files),
		Files:         make([]JSONFile, 0, len(cmp.Files)),
	}
	for _, entry := range cmp.Files {
		report.Files = append(report.Files, JSONFile{
			Path:    entry.Path,
			OldPath: entry.OldPath,
			Status:  entry.Kind.String(),
		})
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
