package clarity

import "math"

// LongSentencesCheck flags sentences over 25 words
type LongSentencesCheck struct{}

func (c *LongSentencesCheck) Name() string { return "long-sentences" }

func (c *LongSentencesCheck) Description() string {
	return "Penalizes each sentence longer than 25 words"
}

func (c *LongSentencesCheck) Run(s *Scorecard) {
	if s.LongSentences > 0 {
		s.flag(c.Name(), Warning, MsgLongSentences)
	}
	s.Score -= float64(5 * s.LongSentences)
}

// MessageLengthCheck flags messages over 180 words and penalizes every
// 20 words past 150
type MessageLengthCheck struct{}

func (c *MessageLengthCheck) Name() string { return "message-length" }

func (c *MessageLengthCheck) Description() string {
	return "Penalizes overall message length"
}

func (c *MessageLengthCheck) Run(s *Scorecard) {
	if s.WordCount > tooLongWords {
		s.flag(c.Name(), Warning, MsgTooLong)
	}
	s.Score -= float64(5 * max(0, (s.WordCount-lengthPenaltyFrom)/20))
}

// ReadabilityCheck penalizes a Flesch reading ease below 50
type ReadabilityCheck struct{}

func (c *ReadabilityCheck) Name() string { return "readability" }

func (c *ReadabilityCheck) Description() string {
	return "Penalizes text that is hard to read"
}

func (c *ReadabilityCheck) Run(s *Scorecard) {
	if s.Readability < readableThreshold {
		s.flag(c.Name(), Warning, MsgHardToRead)
	}
	s.Score -= math.Max(0, readableThreshold-s.Readability)
}

// VagueWordingCheck penalizes each vague word or phrase present
type VagueWordingCheck struct{}

func (c *VagueWordingCheck) Name() string { return "vague-wording" }

func (c *VagueWordingCheck) Description() string {
	return "Penalizes vague words such as 'stuff' or 'maybe'"
}

func (c *VagueWordingCheck) Run(s *Scorecard) {
	if len(s.VagueHits) > 0 {
		s.flag(c.Name(), Suggestion, MsgVague)
	}
	s.Score -= float64(5 * len(s.VagueHits))
}

// PassiveVoiceCheck flags passive constructions
type PassiveVoiceCheck struct{}

func (c *PassiveVoiceCheck) Name() string { return "passive-voice" }

func (c *PassiveVoiceCheck) Description() string {
	return "Flags passive constructions"
}

func (c *PassiveVoiceCheck) Run(s *Scorecard) {
	if s.Passive {
		s.flag(c.Name(), Suggestion, MsgPassive)
	}
}

// CallToActionCheck flags messages that never ask for anything
type CallToActionCheck struct{}

func (c *CallToActionCheck) Name() string { return "call-to-action" }

func (c *CallToActionCheck) Description() string {
	return "Flags messages without a request or action"
}

func (c *CallToActionCheck) Run(s *Scorecard) {
	if !s.HasAction {
		s.flag(c.Name(), Suggestion, MsgNoAction)
	}
}

// PassivePenaltyCheck applies the passive-voice penalty with a softer advisory
type PassivePenaltyCheck struct{}

func (c *PassivePenaltyCheck) Name() string { return "passive-voice/advisory" }

func (c *PassivePenaltyCheck) Description() string {
	return "Penalizes passive voice by 5 points"
}

func (c *PassivePenaltyCheck) Run(s *Scorecard) {
	if !s.Passive {
		return
	}
	s.Score -= 5
	s.flag(c.Name(), Info, MsgPassiveOptional)
}

// BulletPointsCheck suggests bullet points for messages over 250 words and
// adds a penalty on top of MessageLengthCheck
type BulletPointsCheck struct{}

func (c *BulletPointsCheck) Name() string { return "message-length/bullets" }

func (c *BulletPointsCheck) Description() string {
	return "Suggests bullet points for very long messages"
}

func (c *BulletPointsCheck) Run(s *Scorecard) {
	if s.WordCount <= bulletPointWords {
		return
	}
	s.flag(c.Name(), Suggestion, MsgBulletPoints)
	s.Score -= float64(5 * max(0, (s.WordCount-bulletPenaltyFrom)/30))
}

// ReadabilityBonusCheck rewards easy text, capped at 100
type ReadabilityBonusCheck struct{}

func (c *ReadabilityBonusCheck) Name() string { return "readability/bonus" }

func (c *ReadabilityBonusCheck) Description() string {
	return "Adds 5 points when reading ease is at least 65"
}

func (c *ReadabilityBonusCheck) Run(s *Scorecard) {
	if s.Readability >= readabilityBonusMin {
		s.Score = math.Min(100, s.Score+5)
	}
}

// StrongVagueCheck adds a second vague-wording penalty when several vague
// words appear or when 'things' or 'stuff' does
type StrongVagueCheck struct{}

func (c *StrongVagueCheck) Name() string { return "vague-wording/strong" }

func (c *StrongVagueCheck) Description() string {
	return "Penalizes repeated or strongly vague wording"
}

func (c *StrongVagueCheck) Run(s *Scorecard) {
	strong := len(s.VagueHits) >= 2
	for _, hit := range s.VagueHits {
		for _, w := range strongVagueWords {
			if hit == w {
				strong = true
			}
		}
	}
	if !strong {
		return
	}
	s.flag(c.Name(), Suggestion, MsgVague)
	s.Score -= float64(4 * len(s.VagueHits))
}

// AbruptCheck penalizes very short messages without softening words
type AbruptCheck struct{}

func (c *AbruptCheck) Name() string { return "abrupt" }

func (c *AbruptCheck) Description() string {
	return "Penalizes messages under 10 words without please/could/would"
}

func (c *AbruptCheck) Run(s *Scorecard) {
	if s.WordCount >= abruptWords || s.Softened {
		return
	}
	s.flag(c.Name(), Warning, MsgAbrupt)
	s.Score -= 25
}
