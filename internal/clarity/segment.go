package clarity

import (
	"regexp"
	"strings"
)

var sentenceBreak = regexp.MustCompile(`[.!?]`)

// SplitSentences splits text on '.', '!' and '?' and drops empty fragments
func SplitSentences(text string) []string {
	var out []string
	for _, s := range sentenceBreak.Split(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// measure fills the scorecard with everything the checks read
func measure(text string) *Scorecard {
	s := &Scorecard{
		Text:      text,
		Lower:     strings.ToLower(text),
		Sentences: SplitSentences(text),
		WordCount: len(strings.Fields(text)),
		Score:     100,
	}

	for _, sentence := range s.Sentences {
		if len(strings.Fields(sentence)) > longSentenceWords {
			s.LongSentences++
		}
	}

	r, err := FleschReadingEase(text)
	if err != nil {
		r = FallbackReadability
	}
	s.Readability = r

	for _, w := range vagueWords {
		if strings.Contains(s.Lower, w) {
			s.VagueHits = append(s.VagueHits, w)
		}
	}
	for _, re := range passivePatterns {
		if re.MatchString(s.Lower) {
			s.Passive = true
			break
		}
	}
	s.HasAction = containsAny(s.Lower, callToActionPhrases)
	s.Softened = containsAny(s.Lower, softeners)
	return s
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
