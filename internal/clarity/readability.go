package clarity

import (
	"errors"
	"math"
	"strings"
	"unicode"
)

// ErrNoWords is returned when text has nothing to measure
var ErrNoWords = errors.New("no words to measure")

// FleschReadingEase computes the Flesch reading ease index of text, rounded
// to two decimals. Higher is easier; plain business English scores 60-70.
func FleschReadingEase(text string) (float64, error) {
	var words, syllables int
	for _, tok := range strings.Fields(text) {
		w := wordChars(tok)
		if w == "" {
			continue
		}
		words++
		syllables += countSyllables(w)
	}
	if words == 0 {
		return 0, ErrNoWords
	}

	sentences := len(SplitSentences(text))
	if sentences == 0 {
		sentences = 1
	}

	asl := float64(words) / float64(sentences)
	asw := float64(syllables) / float64(words)
	score := 206.835 - 1.015*asl - 84.6*asw
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, errors.New("readability is not a finite number")
	}
	return math.Round(score*100) / 100, nil
}

// wordChars returns the lowercased letters and digits of tok, so numbers
// count as words
func wordChars(tok string) string {
	var b strings.Builder
	for _, r := range tok {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

func isVowel(r rune) bool {
	return strings.ContainsRune("aeiouy", r)
}

// countSyllables estimates syllables from vowel groups, dropping a silent
// trailing e. Every word has at least one syllable.
func countSyllables(word string) int {
	if len(word) <= 3 {
		return 1
	}

	count := 0
	prevVowel := false
	for _, r := range word {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}

	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && count > 1 {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}
