// Package fixer produces tone-adjusted rewrites of a message through an
// external text generation provider.
package fixer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

// ErrEmptyText is returned when there is nothing to rewrite
var ErrEmptyText = errors.New("text is required")

// FailureText replaces the rewrite when generation fails
const FailureText = "Error: Unable to process request."

const (
	defaultRetries   = 5
	defaultBaseDelay = 2 * time.Second
)

// Provider generates text from a system instruction and a user prompt
type Provider interface {
	// Model names the underlying model, reported with every result
	Model() string

	// Generate returns the generated text
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Options configures the fixer behavior
type Options struct {
	// DryRun renders the prompt without calling the provider
	DryRun bool

	// Retries is the total number of attempts for transient failures
	Retries int

	// BaseDelay is the first backoff delay; each retry doubles it
	BaseDelay time.Duration
}

// Request describes one rewrite
type Request struct {
	Text          string   `json:"text"`
	Tone          string   `json:"tone"`
	ClarityIssues []string `json:"clarity_issues"`
}

// Result is the outcome of a rewrite
type Result struct {
	RewrittenText string `json:"rewritten_text"`
	Success       bool   `json:"success"`
	Model         string `json:"model,omitempty"`
	Prompt        string `json:"prompt,omitempty"`
}

// Fixer rewrites messages
type Fixer struct {
	provider Provider
	opts     Options
}

// New creates a new Fixer
func New(provider Provider, opts Options) *Fixer {
	if opts.Retries < 1 {
		opts.Retries = defaultRetries
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = defaultBaseDelay
	}
	return &Fixer{provider: provider, opts: opts}
}

// Rewrite rewrites req.Text in the requested tone. Empty text returns
// ErrEmptyText with an unsuccessful, empty result. Generation failures
// return the failure text alongside the error.
func (f *Fixer) Rewrite(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.Text) == "" {
		return Result{}, ErrEmptyText
	}

	prompt := BuildPrompt(req)
	model := ""
	if f.provider != nil {
		model = f.provider.Model()
	}

	if f.opts.DryRun {
		return Result{Model: model, Prompt: prompt}, nil
	}
	if f.provider == nil {
		return Result{RewrittenText: FailureText, Model: model}, errors.New("no rewrite provider configured")
	}

	out, err := f.generate(ctx, prompt)
	if err != nil {
		slog.Error("rewrite failed", "model", model, "err", err)
		return Result{RewrittenText: FailureText, Model: model}, fmt.Errorf("rewrite failed: %w", err)
	}

	return Result{
		RewrittenText: strings.TrimSpace(out),
		Success:       true,
		Model:         model,
	}, nil
}

// generate calls the provider, retrying transient failures with
// exponential backoff
func (f *Fixer) generate(ctx context.Context, prompt string) (string, error) {
	b := retry.NewExponential(f.opts.BaseDelay)
	b = retry.WithMaxRetries(uint64(f.opts.Retries-1), b)

	var out string
	attempt := 0
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		text, err := f.provider.Generate(ctx, SystemInstruction, prompt)
		if err != nil {
			if IsTransient(err) && attempt < f.opts.Retries {
				slog.Warn("rewrite provider busy, retrying",
					"model", f.provider.Model(), "attempt", attempt, "retries", f.opts.Retries, "err", err)
				return retry.RetryableError(err)
			}
			return err
		}
		out = text
		return nil
	})
	return out, err
}

// IsTransient reports whether err looks like an overload or rate limit
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	msg := strings.ToUpper(err.Error())
	for _, marker := range []string{"503", "OVERLOADED", "UNAVAILABLE", "429", "LIMIT"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// NormalizeTone maps free-form tone names onto harsh, firm, polite or neutral
func NormalizeTone(tone string) string {
	switch strings.ToLower(strings.TrimSpace(tone)) {
	case "harsh", "angry", "rude":
		return "harsh"
	case "firm", "urgent":
		return "firm"
	case "polite", "apologetic", "friendly":
		return "polite"
	default:
		return "neutral"
	}
}

// NewProvider builds the provider named by the rewrite_provider setting
func NewProvider(name, apiKey, model string, maxTokens int) (Provider, error) {
	switch name {
	case "", "anthropic":
		p, err := NewAnthropicProvider(apiKey, model, maxTokens)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "claude-code":
		return NewClaudeCodeProvider(model), nil
	default:
		return nil, fmt.Errorf("unknown rewrite provider: %s", name)
	}
}
