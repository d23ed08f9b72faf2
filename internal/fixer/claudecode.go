package fixer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	claudecode "github.com/severity1/claude-agent-sdk-go"
)

// DefaultClaudeCodeModel is used when no rewrite model is configured
const DefaultClaudeCodeModel = "sonnet"

// ClaudeCodeProvider generates rewrites through the local Claude Code CLI
type ClaudeCodeProvider struct {
	model string
}

// NewClaudeCodeProvider creates a provider backed by the Claude Code CLI
func NewClaudeCodeProvider(model string) *ClaudeCodeProvider {
	if model == "" {
		model = DefaultClaudeCodeModel
	}
	return &ClaudeCodeProvider{model: model}
}

// Model returns the configured model name
func (p *ClaudeCodeProvider) Model() string {
	return p.model
}

// Generate runs a single-turn query and returns the assistant text.
// The system instruction is sent as the opening paragraph of the prompt.
func (p *ClaudeCodeProvider) Generate(ctx context.Context, system, prompt string) (string, error) {
	iterator, err := claudecode.Query(ctx, system+"\n\n"+prompt,
		claudecode.WithModel(p.model),
		claudecode.WithMaxTurns(1),
	)
	if err != nil {
		if claudecode.IsCLINotFoundError(err) {
			return "", fmt.Errorf("claude code CLI not found: %w", err)
		}
		return "", fmt.Errorf("claude code error: %w", err)
	}
	defer iterator.Close()

	var responseBuilder strings.Builder
	for {
		message, err := iterator.Next(ctx)
		if err != nil {
			if errors.Is(err, claudecode.ErrNoMoreMessages) {
				break
			}
			return "", fmt.Errorf("error reading claude response: %w", err)
		}

		if assistantMsg, ok := message.(*claudecode.AssistantMessage); ok {
			for _, block := range assistantMsg.Content {
				if textBlock, ok := block.(*claudecode.TextBlock); ok {
					responseBuilder.WriteString(textBlock.Text)
				}
			}
		}
	}

	responseText := responseBuilder.String()
	if responseText == "" {
		return "", fmt.Errorf("empty response from claude code")
	}
	return responseText, nil
}
