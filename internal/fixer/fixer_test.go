package fixer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeProvider replays a scripted sequence of errors, then succeeds
type fakeProvider struct {
	mu      sync.Mutex
	errs    []error
	reply   string
	calls   int
	prompts []string
}

func (p *fakeProvider) Model() string { return "fake-model" }

func (p *fakeProvider) Generate(ctx context.Context, system, prompt string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	p.prompts = append(p.prompts, prompt)
	if len(p.errs) > 0 {
		err := p.errs[0]
		p.errs = p.errs[1:]
		return "", err
	}
	return p.reply, nil
}

func fastOptions() Options {
	return Options{Retries: 5, BaseDelay: time.Millisecond}
}

func TestRewrite(t *testing.T) {
	p := &fakeProvider{reply: "  Could you share an update by Friday?  \n"}
	f := New(p, fastOptions())

	res, err := f.Rewrite(context.Background(), Request{Text: "Why is this late?", Tone: "harsh"})
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}
	if !res.Success {
		t.Error("Success = false, want true")
	}
	if res.RewrittenText != "Could you share an update by Friday?" {
		t.Errorf("RewrittenText = %q", res.RewrittenText)
	}
	if res.Model != "fake-model" {
		t.Errorf("Model = %q", res.Model)
	}
	if p.calls != 1 {
		t.Errorf("calls = %d, want 1", p.calls)
	}
}

func TestRewriteEmpty(t *testing.T) {
	p := &fakeProvider{}
	f := New(p, fastOptions())

	for _, text := range []string{"", "  \n"} {
		res, err := f.Rewrite(context.Background(), Request{Text: text})
		if !errors.Is(err, ErrEmptyText) {
			t.Errorf("Rewrite(%q) error = %v, want ErrEmptyText", text, err)
		}
		if res.Success || res.RewrittenText != "" {
			t.Errorf("Rewrite(%q) = %+v, want empty unsuccessful result", text, res)
		}
	}
	if p.calls != 0 {
		t.Errorf("provider called %d times for empty text", p.calls)
	}
}

func TestRewriteRetriesTransient(t *testing.T) {
	p := &fakeProvider{
		errs: []error{
			errors.New("503 Service Unavailable"),
			errors.New("model is overloaded"),
			errors.New("429 rate limit"),
		},
		reply: "Done.",
	}
	f := New(p, fastOptions())

	res, err := f.Rewrite(context.Background(), Request{Text: "Send it now", Tone: "firm"})
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}
	if !res.Success || res.RewrittenText != "Done." {
		t.Errorf("Rewrite() = %+v", res)
	}
	if p.calls != 4 {
		t.Errorf("calls = %d, want 4", p.calls)
	}
}

func TestRewriteGivesUp(t *testing.T) {
	tests := []struct {
		name  string
		errs  []error
		calls int
	}{
		{
			name:  "permanent error fails immediately",
			errs:  []error{errors.New("invalid api key")},
			calls: 1,
		},
		{
			name: "transient errors exhaust retries",
			errs: []error{
				errors.New("503"), errors.New("503"), errors.New("503"),
				errors.New("503"), errors.New("503"), errors.New("503"),
			},
			calls: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{errs: tt.errs, reply: "unused"}
			f := New(p, fastOptions())

			res, err := f.Rewrite(context.Background(), Request{Text: "hello"})
			if err == nil {
				t.Fatal("Rewrite() expected error")
			}
			if res.Success || res.RewrittenText != FailureText {
				t.Errorf("Rewrite() = %+v, want failure text", res)
			}
			if p.calls != tt.calls {
				t.Errorf("calls = %d, want %d", p.calls, tt.calls)
			}
		})
	}
}

func TestRewriteDryRun(t *testing.T) {
	p := &fakeProvider{}
	opts := fastOptions()
	opts.DryRun = true
	f := New(p, opts)

	res, err := f.Rewrite(context.Background(), Request{Text: "hello", Tone: "neutral"})
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}
	if p.calls != 0 {
		t.Errorf("provider called %d times in dry run", p.calls)
	}
	if !strings.Contains(res.Prompt, `Message: "hello"`) {
		t.Errorf("Prompt = %q", res.Prompt)
	}
}

func TestRewriteNoProvider(t *testing.T) {
	res, err := New(nil, fastOptions()).Rewrite(context.Background(), Request{Text: "hello"})
	if err == nil || res.RewrittenText != FailureText {
		t.Errorf("Rewrite() = %+v, %v", res, err)
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(Request{
		Text:          "Fix this now.",
		Tone:          "harsh",
		ClarityIssues: []string{"No clear action or request stated.", "Message too short and abrupt."},
	})

	for _, want := range []string{
		"Rewrite this message professionally.",
		"Also fix these clarity issues: No clear action or request stated., Message too short and abrupt..",
		"Tone guidance: Professional and calm. Remove anger/blame.",
		`Message: "Fix this now."`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}

	if strings.Contains(BuildPrompt(Request{Text: "x"}), "clarity issues") {
		t.Error("prompt mentions clarity issues when there are none")
	}
}

func TestToneGuidance(t *testing.T) {
	tests := map[string]string{
		"harsh":   "Professional and calm. Remove anger/blame.",
		"firm":    "Professional and firm. Keep urgency. Do not soften too much.",
		"polite":  "Professional and polite.",
		"neutral": "Professional and neutral.",
		"sarcasm": "Professional and polite.",
	}
	for tone, want := range tests {
		if got := ToneGuidance(tone); got != want {
			t.Errorf("ToneGuidance(%q) = %q, want %q", tone, got, want)
		}
	}
}

func TestNormalizeTone(t *testing.T) {
	tests := map[string]string{
		"harsh":      "harsh",
		"Angry":      "harsh",
		"rude":       "harsh",
		"firm":       "firm",
		"URGENT":     "firm",
		"polite":     "polite",
		"apologetic": "polite",
		"friendly":   "polite",
		"neutral":    "neutral",
		"":           "neutral",
		"sarcastic":  "neutral",
	}
	for in, want := range tests {
		if got := NormalizeTone(in); got != want {
			t.Errorf("NormalizeTone(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("503 Service Unavailable"), true},
		{errors.New("Overloaded"), true},
		{errors.New("rate limit exceeded"), true},
		{errors.New("status 429"), true},
		{errors.New("invalid request"), false},
		{context.Canceled, false},
	}
	for _, tt := range tests {
		if got := IsTransient(tt.err); got != tt.want {
			t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestNewProvider(t *testing.T) {
	if _, err := NewProvider("anthropic", "", "", 0); err == nil {
		t.Error("anthropic provider without key expected error")
	}
	p, err := NewProvider("anthropic", "sk-test", "", 0)
	if err != nil || p.Model() != DefaultAnthropicModel {
		t.Errorf("NewProvider(anthropic) = %v, %v", p, err)
	}
	p, err = NewProvider("claude-code", "", "", 0)
	if err != nil || p.Model() != DefaultClaudeCodeModel {
		t.Errorf("NewProvider(claude-code) = %v, %v", p, err)
	}
	if _, err := NewProvider("gemini", "", "", 0); err == nil {
		t.Error("unknown provider expected error")
	}
}
