package classifier

import (
	"fmt"
	"strings"
)

// RuleConfidence is the fixed confidence reported by the heuristic classifier
const RuleConfidence = 0.7

// HeuristicClassifier uses lexical pattern tables for tone classification
type HeuristicClassifier struct {
	tables *Tables
}

// NewHeuristicClassifier creates a new heuristic classifier.
// A nil tables value uses the built-in tables.
func NewHeuristicClassifier(tables *Tables) *HeuristicClassifier {
	if tables == nil {
		tables = DefaultTables()
	}
	return &HeuristicClassifier{tables: tables}
}

// signals records which pattern tables fired for a message
type signals struct {
	accusatory bool
	commanding bool
	polite     bool
	apology    bool
	urgent     bool
	negative   bool
}

func (c *HeuristicClassifier) detect(text string) signals {
	t := strings.ToLower(text)
	return signals{
		accusatory: matchesAny(c.tables.accusatory, t),
		commanding: matchesAny(c.tables.commanding, t),
		polite:     containsAny(t, c.tables.Polite),
		apology:    containsAny(t, c.tables.Apology),
		urgent:     containsAny(t, c.tables.Urgent),
		negative:   containsAny(t, c.tables.Negative),
	}
}

// Classify labels a message from its lexical markers. It never fails;
// text without any markers is neutral.
func (c *HeuristicClassifier) Classify(text string) RuleVerdict {
	s := c.detect(text)

	var label Label
	var reason string
	switch {
	case s.accusatory:
		label, reason = Harsh, "contains accusatory language"
	case s.negative && !s.polite:
		label, reason = Harsh, "negative wording without softening"
	case s.commanding && !s.polite:
		label, reason = Firm, "commanding language"
	case s.polite || s.apology:
		label, reason = Polite, "polite or apologetic phrasing"
	default:
		label, reason = Neutral, "factual language"
	}

	tags := []string{}
	if s.accusatory {
		tags = append(tags, "accusatory")
	}
	if s.commanding {
		tags = append(tags, "commanding")
	}
	if s.polite {
		tags = append(tags, "polite")
	}
	if s.apology {
		tags = append(tags, "apologetic")
	}
	if s.urgent {
		tags = append(tags, "urgent")
	}

	return RuleVerdict{
		Label:       label,
		Confidence:  RuleConfidence,
		StyleTags:   tags,
		Explanation: fmt.Sprintf("Tone classified as %s because it %s.", label, reason),
	}
}
