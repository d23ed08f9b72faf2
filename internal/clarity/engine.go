// Package clarity scores how easy a short business message is to understand
// and act on. The score is 100 minus the penalties of an ordered set of
// checks, clamped to 0-100, with one issue string per check that fired.
package clarity

import (
	"math"
	"strings"
)

// Verdict is the clarity result for one message
type Verdict struct {
	Score    int       `json:"clarity_score"`
	Issues   []string  `json:"issues"`
	Summary  string    `json:"summary"`
	Findings []Finding `json:"-"`
}

// Engine runs clarity checks against text
type Engine struct {
	registry *Registry
}

// NewEngine creates an engine over registry. A nil registry uses DefaultRegistry.
func NewEngine(registry *Registry) *Engine {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Engine{registry: registry}
}

// Score rates text. Empty or whitespace-only text scores 0 with a single
// "No text provided" issue.
func (e *Engine) Score(text string) Verdict {
	if strings.TrimSpace(text) == "" {
		return Verdict{
			Score:    0,
			Issues:   []string{MsgNoText},
			Summary:  SummaryEmpty,
			Findings: []Finding{{Check: "empty", Severity: Warning, Message: MsgNoText}},
		}
	}

	card := measure(text)
	for _, check := range e.registry.Checks() {
		check.Run(card)
	}

	score := clamp(int(card.Score))
	if math.IsNaN(card.Score) {
		score = 0
	}

	issues := make([]string, 0, len(card.Findings))
	for _, f := range card.Findings {
		issues = append(issues, f.Message)
	}

	summary := SummaryUnclear
	if score >= ClearThreshold {
		summary = SummaryClear
	}

	findings := card.Findings
	if findings == nil {
		findings = []Finding{}
	}
	return Verdict{
		Score:    score,
		Issues:   issues,
		Summary:  summary,
		Findings: findings,
	}
}

func clamp(score int) int {
	return max(0, min(100, score))
}
