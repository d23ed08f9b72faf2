package fixer

import (
	"fmt"
	"strings"
)

// SystemInstruction frames every rewrite request
const SystemInstruction = "You are a senior business communication expert. " +
	"Rewrite emails to be professional, polite, and concise. " +
	"Use active voice and a clear call-to-action. " +
	"Never add new facts or explanations. " +
	"Return only the rewritten email."

var toneGuidance = map[string]string{
	"harsh":   "Professional and calm. Remove anger/blame.",
	"firm":    "Professional and firm. Keep urgency. Do not soften too much.",
	"polite":  "Professional and polite.",
	"neutral": "Professional and neutral.",
}

// ToneGuidance returns the instruction for tone; unknown tones get the
// polite guidance
func ToneGuidance(tone string) string {
	if g, ok := toneGuidance[tone]; ok {
		return g
	}
	return toneGuidance["polite"]
}

// BuildPrompt renders the user prompt for req
func BuildPrompt(req Request) string {
	var sb strings.Builder
	sb.WriteString("Rewrite this message professionally.\n")
	sb.WriteString("Keep it under 2 lines.\n")
	sb.WriteString("Keep the urgency and firmness of the original message.\n")
	sb.WriteString("Do not make it too soft.\n")
	if len(req.ClarityIssues) > 0 {
		sb.WriteString("Also fix these clarity issues: ")
		sb.WriteString(strings.Join(req.ClarityIssues, ", "))
		sb.WriteString(".\n")
	}
	fmt.Fprintf(&sb, "Tone guidance: %s\n\n", ToneGuidance(req.Tone))
	fmt.Fprintf(&sb, "Message: \"%s\"", req.Text)
	return sb.String()
}
