package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pthm/tonelint/internal/analyzer"
	"github.com/pthm/tonelint/internal/clarity"
	"github.com/pthm/tonelint/internal/classifier"
)

// ToneTool handles the analyze_tone MCP tool.
type ToneTool struct {
	analyzer *analyzer.Analyzer
}

// NewToneTool creates a ToneTool.
func NewToneTool(a *analyzer.Analyzer) *ToneTool {
	return &ToneTool{analyzer: a}
}

// Definition returns the MCP tool definition for analyze_tone.
func (t *ToneTool) Definition() mcp.Tool {
	return mcp.NewTool("analyze_tone",
		mcp.WithDescription("Classify the tone of a message as harsh, polite or neutral and say whether it needs a rewrite."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The message text to analyze"),
		),
	)
}

// Handle processes the analyze_tone tool call.
func (t *ToneTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	if strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError("'text' is required"), nil
	}

	var sb strings.Builder
	writeTone(&sb, t.analyzer.Tone(text))
	return mcp.NewToolResultText(sb.String()), nil
}

// ClarityTool handles the analyze_clarity MCP tool.
type ClarityTool struct {
	analyzer *analyzer.Analyzer
}

// NewClarityTool creates a ClarityTool.
func NewClarityTool(a *analyzer.Analyzer) *ClarityTool {
	return &ClarityTool{analyzer: a}
}

// Definition returns the MCP tool definition for analyze_clarity.
func (t *ClarityTool) Definition() mcp.Tool {
	return mcp.NewTool("analyze_clarity",
		mcp.WithDescription("Score how clear a message is from 0 to 100 and list what makes it hard to act on."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The message text to analyze"),
		),
	)
}

// Handle processes the analyze_clarity tool call.
func (t *ClarityTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	if strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError("'text' is required"), nil
	}

	var sb strings.Builder
	writeClarity(&sb, t.analyzer.Clarity(text))
	return mcp.NewToolResultText(sb.String()), nil
}

// MessageTool handles the analyze_message MCP tool.
type MessageTool struct {
	analyzer *analyzer.Analyzer
}

// NewMessageTool creates a MessageTool.
func NewMessageTool(a *analyzer.Analyzer) *MessageTool {
	return &MessageTool{analyzer: a}
}

// Definition returns the MCP tool definition for analyze_message.
func (t *MessageTool) Definition() mcp.Tool {
	return mcp.NewTool("analyze_message",
		mcp.WithDescription(
			"Run both the tone and clarity checks on a message. Call this before sending an email or "+
				"support reply and revise the draft when a rewrite is recommended.",
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The message text to analyze"),
		),
	)
}

// Handle processes the analyze_message tool call.
func (t *MessageTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	if strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError("'text' is required"), nil
	}

	r := t.analyzer.Analyze(text)

	var sb strings.Builder
	writeTone(&sb, r.Tone)
	sb.WriteString("\n")
	writeClarity(&sb, r.Clarity)
	return mcp.NewToolResultText(sb.String()), nil
}

func writeTone(sb *strings.Builder, v classifier.Verdict) {
	sb.WriteString("## Tone\n\n")
	sb.WriteString(fmt.Sprintf("- **Label**: %s (confidence %.2f)\n", v.Label, v.Confidence))
	if len(v.StyleTags) > 0 {
		sb.WriteString(fmt.Sprintf("- **Style**: %s\n", strings.Join(v.StyleTags, ", ")))
	}
	if v.ModelUsed != classifier.CategoryNone {
		sb.WriteString(fmt.Sprintf("- **Model**: %s\n", v.ModelUsed))
	}
	sb.WriteString(fmt.Sprintf("- **Needs rewrite**: %t\n", v.NeedsRewrite))
	sb.WriteString(fmt.Sprintf("- **Recommended**: %s %s %s\n",
		v.RecommendedTone.Emoji, v.RecommendedTone.Name, v.RecommendedTone.Note))
	if v.Explanation != "" {
		sb.WriteString(fmt.Sprintf("\n%s\n", v.Explanation))
	}
}

func writeClarity(sb *strings.Builder, v clarity.Verdict) {
	sb.WriteString("## Clarity\n\n")
	sb.WriteString(fmt.Sprintf("- **Score**: %d/100\n", v.Score))
	sb.WriteString(fmt.Sprintf("- **Summary**: %s\n", v.Summary))
	if len(v.Issues) == 0 {
		sb.WriteString("- **Issues**: none\n")
		return
	}
	sb.WriteString("- **Issues**:\n")
	for _, issue := range v.Issues {
		sb.WriteString(fmt.Sprintf("  - %s\n", issue))
	}
}
