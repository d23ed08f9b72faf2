package clarity

import "regexp"

const (
	longSentenceWords   = 25
	tooLongWords        = 180
	lengthPenaltyFrom   = 150
	bulletPointWords    = 250
	bulletPenaltyFrom   = 200
	readableThreshold   = 50
	readabilityBonusMin = 65
	abruptWords         = 10

	// FallbackReadability is used when the readability index cannot be computed
	FallbackReadability = 50.0

	// ClearThreshold is the minimum score summarized as clear
	ClearThreshold = 75
)

// Issue messages, in the order checks can raise them.
const (
	MsgLongSentences   = "Some sentences are too long and hard to follow."
	MsgTooLong         = "Message is too long. Consider shortening it."
	MsgHardToRead      = "Text is difficult to read. Use simpler sentences."
	MsgVague           = "Vague wording detected. Be more specific."
	MsgPassive         = "Passive voice reduces clarity. Use active voice."
	MsgNoAction        = "No clear action or request stated."
	MsgPassiveOptional = "Passive voice detected. Consider active voice where possible (optional)."
	MsgBulletPoints    = "Message is quite long. Consider breaking into bullet points."
	MsgAbrupt          = "Message too short and abrupt."
	MsgNoText          = "No text provided"

	SummaryClear   = "Clear and easy to understand."
	SummaryUnclear = "Message could be clearer."
	SummaryEmpty   = "No content to analyze."
)

var vagueWords = []string{
	"things", "stuff", "something", "somehow", "various",
	"etc", "maybe", "kind of", "sort of", "a bit",
}

// strongVagueWords always trigger the extended vague-wording penalty
var strongVagueWords = []string{"things", "stuff"}

var callToActionPhrases = []string{
	"please", "request", "need", "require", "could you",
	"send", "provide", "update", "confirm", "fix",
}

var softeners = []string{"please", "could", "would"}

var passivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bwas\s+\w+ed\b`),
	regexp.MustCompile(`\bwere\s+\w+ed\b`),
	regexp.MustCompile(`\bis\s+\w+ed\b`),
	regexp.MustCompile(`\bhas\s+been\s+\w+ed\b`),
}
