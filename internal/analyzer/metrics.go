package analyzer

import (
	"strings"

	"github.com/pthm/tonelint/internal/classifier"
)

// Metrics contains aggregate figures for a batch of reports
type Metrics struct {
	TotalMessages int                         `json:"total_messages"`
	TotalWords    int                         `json:"total_words"`
	ByTone        map[classifier.Label]int    `json:"by_tone"`
	ByCategory    map[classifier.Category]int `json:"by_category"`
	NeedsRewrite  int                         `json:"needs_rewrite"`
	MeanClarity   float64                     `json:"mean_clarity"`
	MinClarity    int                         `json:"min_clarity"`
	MaxClarity    int                         `json:"max_clarity"`
	ClarityIssues int                         `json:"clarity_issues"`
}

// ComputeMetrics computes metrics for a batch of reports
func ComputeMetrics(reports []Report) *Metrics {
	m := &Metrics{
		ByTone:     make(map[classifier.Label]int),
		ByCategory: make(map[classifier.Category]int),
	}
	if len(reports) == 0 {
		return m
	}

	m.MinClarity = 100
	total := 0
	for _, r := range reports {
		m.TotalMessages++
		m.TotalWords += len(strings.Fields(r.Text))

		m.ByTone[r.Tone.Label]++
		if r.Tone.ModelUsed != classifier.CategoryNone {
			m.ByCategory[r.Tone.ModelUsed]++
		}
		if r.Tone.NeedsRewrite {
			m.NeedsRewrite++
		}

		score := r.Clarity.Score
		total += score
		if score < m.MinClarity {
			m.MinClarity = score
		}
		if score > m.MaxClarity {
			m.MaxClarity = score
		}
		m.ClarityIssues += len(r.Clarity.Issues)
	}

	m.MeanClarity = float64(total) / float64(m.TotalMessages)
	return m
}
