package classifier

import (
	"math"
	"strings"
)

var (
	rewriteHint = RecommendedTone{
		Name:  "Professional & Polite",
		Emoji: "😊🙏",
		Note:  "Rewrite to remove blame and sound respectful.",
	}
	emptyVerdict = Verdict{
		Label:       Neutral,
		Confidence:  0.0,
		StyleTags:   []string{},
		Explanation: "No text provided.",
		RecommendedTone: RecommendedTone{
			Name:  "Neutral",
			Emoji: "😐",
			Note:  "Add content to analyze.",
		},
	}
)

// Analyzer fuses the heuristic classifier with per-category statistical scorers
type Analyzer struct {
	rules   *HeuristicClassifier
	router  *Router
	scorers map[Category]Scorer
}

// NewAnalyzer creates a tone analyzer. Categories missing from scorers are
// treated as unavailable. A nil tables value uses the built-in tables.
func NewAnalyzer(tables *Tables, scorers map[Category]Scorer) *Analyzer {
	s := make(map[Category]Scorer, len(scorers))
	for cat, scorer := range scorers {
		s[cat] = scorer
	}
	return &Analyzer{
		rules:   NewHeuristicClassifier(tables),
		router:  NewRouter(tables),
		scorers: s,
	}
}

// Available reports whether the scorer for cat can produce predictions
func (a *Analyzer) Available(cat Category) bool {
	scorer, ok := a.scorers[cat]
	if !ok || scorer == nil {
		return false
	}
	if p, ok := scorer.(Pair); ok {
		return p.Available()
	}
	return true
}

// Analyze returns the final tone verdict for text. Empty or whitespace-only
// text yields a fixed neutral verdict with zero confidence.
func (a *Analyzer) Analyze(text string) Verdict {
	if strings.TrimSpace(text) == "" {
		v := emptyVerdict
		v.StyleTags = []string{}
		return v
	}

	rule := a.rules.Classify(text)
	category := a.router.Route(text)

	var pred Prediction
	if scorer := a.scorers[category]; scorer != nil {
		pred = scorer.Predict(text)
	}

	label := rule.Label
	if pred.Available() {
		label = Label(pred.Label)
	}

	// The heuristic classifier always wins on harsh.
	if rule.Label == Harsh {
		label = Harsh
	} else if rule.Label == Polite && label == Neutral {
		label = Polite
	}
	// Firm is internal to the rules and never reported.
	if label == Firm {
		label = Neutral
	}
	// Unknown model labels fall back to the rule decision.
	if !label.Valid() {
		label = rule.Label
		if label == Firm {
			label = Neutral
		}
	}

	confidence := round2(math.Max(pred.Confidence, rule.Confidence))
	if math.IsNaN(confidence) {
		confidence = rule.Confidence
	}
	confidence = math.Min(1, math.Max(0, confidence))
	needsRewrite := label == Harsh

	recommended := rewriteHint
	if !needsRewrite {
		recommended = RecommendedTone{
			Name:  capitalize(string(label)),
			Emoji: "✓",
			Note:  "Tone is appropriate.",
		}
	}

	return Verdict{
		Label:           label,
		Confidence:      confidence,
		StyleTags:       rule.StyleTags,
		Explanation:     rule.Explanation,
		NeedsRewrite:    needsRewrite,
		RecommendedTone: recommended,
		ModelUsed:       category,
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
