package reporter

import (
	"encoding/json"
	"io"

	"github.com/pthm/tonelint/internal/analyzer"
	"github.com/pthm/tonelint/internal/clarity"
)

// JSONReporter outputs results as JSON
type JSONReporter struct {
	w io.Writer
}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{w: w}
}

// JSONOutput represents the JSON output format
type JSONOutput struct {
	Messages []JSONMessage     `json:"messages"`
	Summary  *analyzer.Metrics `json:"summary"`
}

// JSONMessage is one analyzed message with its clarity findings spelled out
type JSONMessage struct {
	analyzer.Report
	Findings []JSONFinding `json:"findings"`
}

// JSONFinding represents a clarity finding in JSON format
type JSONFinding struct {
	Check    string `json:"check"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// JSONRewriteOutput represents the JSON output of a rewrite run
type JSONRewriteOutput struct {
	Rewrites []Rewrite `json:"rewrites"`
}

// Report outputs reports as JSON
func (r *JSONReporter) Report(reports []analyzer.Report) error {
	output := JSONOutput{
		Messages: make([]JSONMessage, 0, len(reports)),
		Summary:  analyzer.ComputeMetrics(reports),
	}

	for _, rep := range reports {
		output.Messages = append(output.Messages, JSONMessage{
			Report:   rep,
			Findings: jsonFindings(rep.Clarity.Findings),
		})
	}

	return r.encode(output)
}

// ReportRewrites outputs rewrites as JSON
func (r *JSONReporter) ReportRewrites(rewrites []Rewrite) error {
	if rewrites == nil {
		rewrites = []Rewrite{}
	}
	return r.encode(JSONRewriteOutput{Rewrites: rewrites})
}

func (r *JSONReporter) encode(v any) error {
	encoder := json.NewEncoder(r.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func jsonFindings(findings []clarity.Finding) []JSONFinding {
	out := make([]JSONFinding, 0, len(findings))
	for _, f := range findings {
		out = append(out, JSONFinding{
			Check:    f.Check,
			Severity: f.Severity.String(),
			Message:  f.Message,
		})
	}
	return out
}
