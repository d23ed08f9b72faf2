package reporter

import (
	"github.com/pthm/tonelint/internal/analyzer"
	"github.com/pthm/tonelint/internal/fixer"
)

// Reporter defines the interface for outputting analysis results
type Reporter interface {
	// Report outputs the analysis of a batch of messages
	Report(reports []analyzer.Report) error

	// ReportRewrites outputs rewritten messages next to their analysis
	ReportRewrites(rewrites []Rewrite) error
}

// Rewrite pairs a message analysis with its rewrite
type Rewrite struct {
	Report analyzer.Report `json:"analysis"`
	Result fixer.Result    `json:"rewrite"`
}

// NeedsRewrite reports whether any message in the batch needs a rewrite
func NeedsRewrite(reports []analyzer.Report) bool {
	for _, r := range reports {
		if r.Tone.NeedsRewrite {
			return true
		}
	}
	return false
}
