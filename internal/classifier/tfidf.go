package classifier

import (
	"math"
	"strings"
	"unicode"
)

// TFIDFVectorizer maps text to an L2-normalized TF-IDF vector over a fixed vocabulary
type TFIDFVectorizer struct {
	Vocabulary map[string]int `yaml:"vocabulary"`
	IDF        []float64      `yaml:"idf"`
	Lowercase  bool           `yaml:"lowercase"`
	// Norm is "l2" or "none"
	Norm string `yaml:"norm"`
}

// Dim returns the number of features
func (v *TFIDFVectorizer) Dim() int {
	return len(v.IDF)
}

// Transform implements Vectorizer. Tokens outside the vocabulary are ignored.
func (v *TFIDFVectorizer) Transform(text string) (Vector, error) {
	if len(v.Vocabulary) == 0 {
		return nil, ErrEmptyVocabulary
	}
	if v.Lowercase {
		text = strings.ToLower(text)
	}

	tf := make(map[int]int)
	for _, tok := range tokenize(text) {
		if idx, ok := v.Vocabulary[tok]; ok && idx < len(v.IDF) {
			tf[idx]++
		}
	}

	vec := make(Vector, len(tf))
	var norm float64
	for idx, count := range tf {
		w := float64(count) * v.IDF[idx]
		vec[idx] = w
		norm += w * w
	}

	if v.Norm != "none" && norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range vec {
			vec[idx] /= norm
		}
	}
	return vec, nil
}

// tokenize splits text into runs of letters and digits
func tokenize(s string) []string {
	var tokens []string
	var cur strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			cur.WriteRune(r)
		} else if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return tokens
}
