package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "tonelint.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// clock returns a fake now that advances one minute per call
func clock(start time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		n++
		return start.Add(time.Duration(n) * time.Minute)
	}
}

func TestSaveAndHistory(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	s.now = clock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))

	first := &Analysis{UserID: "u1", Text: "Thanks!", Tone: "polite", Confidence: 0.7, ClarityScore: 75,
		ClarityIssues: []string{"Message too short and abrupt."}}
	second := &Analysis{UserID: "u1", Text: "Why haven't you replied?", Tone: "harsh", ClarityScore: 50}
	other := &Analysis{UserID: "u2", Text: "Hello", Tone: "neutral"}

	for _, a := range []*Analysis{first, second, other} {
		if err := s.Save(ctx, a); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}
	if first.ID == "" || first.ID == second.ID {
		t.Errorf("IDs not assigned: %q, %q", first.ID, second.ID)
	}

	entries, err := s.History(ctx, "u1")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].ID != second.ID || entries[1].ID != first.ID {
		t.Errorf("history not newest first: %q, %q", entries[0].ID, entries[1].ID)
	}
	if !reflect.DeepEqual(entries[1].ClarityIssues, first.ClarityIssues) {
		t.Errorf("ClarityIssues = %v, want %v", entries[1].ClarityIssues, first.ClarityIssues)
	}
	if entries[0].ClarityIssues == nil || len(entries[0].ClarityIssues) != 0 {
		t.Errorf("ClarityIssues = %#v, want empty slice", entries[0].ClarityIssues)
	}
	if got := entries[1].CreatedAt.Format("2006-01-02 15:04"); got != "2025-03-01 09:01" {
		t.Errorf("CreatedAt = %s", got)
	}
}

func TestHistoryTruncatesText(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	long := strings.Repeat("a", 130)
	if err := s.Save(ctx, &Analysis{UserID: "u1", Text: long, Tone: "neutral"}); err != nil {
		t.Fatal(err)
	}

	entries, err := s.History(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Repeat("a", 120) + "..."
	if entries[0].Text != want {
		t.Errorf("Text = %q, want %q", entries[0].Text, want)
	}
}

func TestHistoryEmpty(t *testing.T) {
	entries, err := openTestStore(t).History(context.Background(), "nobody")
	if err != nil {
		t.Fatal(err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("History() = %#v, want empty slice", entries)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	for _, user := range []string{"u1", "u1", "u2"} {
		if err := s.Save(ctx, &Analysis{UserID: user, Text: "x", Tone: "neutral"}); err != nil {
			t.Fatal(err)
		}
	}

	n, err := s.Clear(ctx, "u1")
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Clear() removed %d, want 2", n)
	}

	d, err := s.Dashboard(ctx, "u2")
	if err != nil {
		t.Fatal(err)
	}
	if d.Total != 1 {
		t.Errorf("u2 total = %d, want 1", d.Total)
	}
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	for _, tone := range []string{"polite", "polite", "harsh", "neutral", "neutral", "neutral"} {
		if err := s.Save(ctx, &Analysis{UserID: "u1", Text: "x", Tone: tone}); err != nil {
			t.Fatal(err)
		}
	}

	d, err := s.Dashboard(ctx, "u1")
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	want := Dashboard{Total: 6, Polite: 2, Neutral: 3, Harsh: 1}
	if d != want {
		t.Errorf("Dashboard() = %+v, want %+v", d, want)
	}
}

func TestSetRewrite(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	a := &Analysis{UserID: "u1", Text: "Send it now", Tone: "neutral"}
	if err := s.Save(ctx, a); err != nil {
		t.Fatal(err)
	}
	if err := s.SetRewrite(ctx, a.ID, "Could you send it today?"); err != nil {
		t.Errorf("SetRewrite() error = %v", err)
	}
	if err := s.SetRewrite(ctx, "missing", "x"); err == nil {
		t.Error("SetRewrite() of unknown id expected error")
	}
}

func TestMissingUser(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if err := s.Save(ctx, &Analysis{Text: "x"}); !errors.Is(err, ErrMissingUser) {
		t.Errorf("Save() error = %v, want ErrMissingUser", err)
	}
	if _, err := s.History(ctx, ""); !errors.Is(err, ErrMissingUser) {
		t.Errorf("History() error = %v, want ErrMissingUser", err)
	}
	if _, err := s.Clear(ctx, ""); !errors.Is(err, ErrMissingUser) {
		t.Errorf("Clear() error = %v, want ErrMissingUser", err)
	}
	if _, err := s.Dashboard(ctx, ""); !errors.Is(err, ErrMissingUser) {
		t.Errorf("Dashboard() error = %v, want ErrMissingUser", err)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is longer", 4, "this..."},
		{"héllo wörld", 5, "héllo..."},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
