package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pthm/tonelint/internal/analyzer"
	"github.com/pthm/tonelint/internal/clarity"
)

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

type tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

func TestDefinitions(t *testing.T) {
	a := analyzer.New(nil, nil)
	tests := []struct {
		tool tool
		name string
	}{
		{NewToneTool(a), "analyze_tone"},
		{NewClarityTool(a), "analyze_clarity"},
		{NewMessageTool(a), "analyze_message"},
	}
	for _, tt := range tests {
		def := tt.tool.Definition()
		if def.Name != tt.name {
			t.Errorf("Definition().Name = %q, want %q", def.Name, tt.name)
		}
		if len(def.InputSchema.Required) != 1 || def.InputSchema.Required[0] != "text" {
			t.Errorf("%s required = %v, want [text]", tt.name, def.InputSchema.Required)
		}
	}
}

func TestMissingText(t *testing.T) {
	a := analyzer.New(nil, nil)
	for _, tl := range []tool{NewToneTool(a), NewClarityTool(a), NewMessageTool(a)} {
		for _, args := range []map[string]interface{}{{}, {"text": "   "}} {
			res, err := tl.Handle(context.Background(), makeReq(args))
			if err != nil {
				t.Fatalf("Handle() error = %v", err)
			}
			if !res.IsError {
				t.Errorf("%s with %v: expected tool error", tl.Definition().Name, args)
			}
		}
	}
}

func TestToneTool(t *testing.T) {
	tl := NewToneTool(analyzer.New(nil, nil))

	res, err := tl.Handle(context.Background(), makeReq(map[string]interface{}{"text": "Why haven't you responded?"}))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	out := resultText(res)
	for _, want := range []string{"## Tone", "**Label**: harsh", "**Needs rewrite**: true"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestClarityTool(t *testing.T) {
	tl := NewClarityTool(analyzer.New(nil, nil))

	text := "This is urgent, please send the report by Friday, thank you."
	res, err := tl.Handle(context.Background(), makeReq(map[string]interface{}{"text": text}))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	out := resultText(res)
	for _, want := range []string{"**Score**: 100/100", clarity.SummaryClear, "**Issues**: none"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMessageTool(t *testing.T) {
	tl := NewMessageTool(analyzer.New(nil, nil))

	res, err := tl.Handle(context.Background(), makeReq(map[string]interface{}{"text": "stuff"}))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	out := resultText(res)
	for _, want := range []string{"## Tone", "## Clarity", clarity.MsgAbrupt} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestNew(t *testing.T) {
	s := New(analyzer.New(nil, nil), "test")
	if s == nil {
		t.Fatal("New() returned nil")
	}
}
