package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pthm/tonelint/internal/analyzer"
	"github.com/pthm/tonelint/internal/fixer"
	"github.com/pthm/tonelint/internal/store"
)

type stubProvider struct {
	reply string
}

func (p stubProvider) Model() string { return "stub" }

func (p stubProvider) Generate(ctx context.Context, system, prompt string) (string, error) {
	return p.reply, nil
}

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.Open(filepath.Join(t.TempDir(), "tonelint.db"))
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	t.Cleanup(func() { st.Close() })

	f := fixer.New(stubProvider{reply: "Could you send the report today?"}, fixer.Options{})
	return New(analyzer.New(nil, nil), st, f), st
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding %q: %v", w.Body.String(), err)
	}
}

func TestAnalyzeRealtime(t *testing.T) {
	s, st := newTestServer(t)

	w := do(t, s, http.MethodPost, "/analyze/realtime",
		`{"text": "Why haven't you responded?", "user_id": 42}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Tone struct {
			Label        string `json:"label"`
			NeedsRewrite bool   `json:"needs_rewrite"`
		} `json:"tone"`
		Clarity struct {
			Score  int      `json:"clarity_score"`
			Issues []string `json:"issues"`
		} `json:"clarity"`
	}
	decode(t, w, &resp)
	if resp.Tone.Label != "harsh" || !resp.Tone.NeedsRewrite {
		t.Errorf("tone = %+v, want harsh needing rewrite", resp.Tone)
	}
	if resp.Clarity.Issues == nil {
		t.Error("clarity issues missing")
	}

	d, err := st.Dashboard(context.Background(), "42")
	if err != nil {
		t.Fatal(err)
	}
	if d.Total != 1 || d.Harsh != 1 {
		t.Errorf("dashboard after analyze = %+v, want one harsh", d)
	}
}

func TestAnalyzeRealtimeMissingFields(t *testing.T) {
	s, _ := newTestServer(t)

	for _, body := range []string{
		`{"text": "hello"}`,
		`{"user_id": "u1"}`,
		`{"text": "   ", "user_id": "u1"}`,
		`not json`,
	} {
		w := do(t, s, http.MethodPost, "/analyze/realtime", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("POST %s: status = %d, want 400", body, w.Code)
			continue
		}
		var resp map[string]string
		decode(t, w, &resp)
		if resp["error"] != "Missing text or user" {
			t.Errorf("POST %s: error = %q", body, resp["error"])
		}
	}
}

func TestRewrite(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodPost, "/rewrite",
		`{"text": "Send the report now.", "tone": "Friendly", "clarity_issues": ["Unclear request or call to action."]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var res fixer.Result
	decode(t, w, &res)
	if !res.Success || res.RewrittenText != "Could you send the report today?" {
		t.Errorf("result = %+v", res)
	}
}

func TestRewriteMissingText(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodPost, "/rewrite", `{"tone": "polite"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp map[string]any
	decode(t, w, &resp)
	want := map[string]any{"success": false, "rewritten_text": "", "error": "Text is required"}
	if !reflect.DeepEqual(resp, want) {
		t.Errorf("body = %v, want %v", resp, want)
	}
}

func TestRewriteInvalidBody(t *testing.T) {
	s, _ := newTestServer(t)

	for _, body := range []string{`not json`, `{"text": 42}`} {
		w := do(t, s, http.MethodPost, "/rewrite", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("POST %s: status = %d, want 400", body, w.Code)
			continue
		}
		var resp map[string]any
		decode(t, w, &resp)
		want := map[string]any{"success": false, "rewritten_text": "", "error": "Invalid JSON body"}
		if !reflect.DeepEqual(resp, want) {
			t.Errorf("POST %s: body = %v, want %v", body, resp, want)
		}
	}
}

func TestRewriteWithoutProvider(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := New(analyzer.New(nil, nil), nil, nil)

	w := do(t, s, http.MethodPost, "/rewrite", `{"text": "hello"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var res fixer.Result
	decode(t, w, &res)
	if res.Success || res.RewrittenText != fixer.FailureText {
		t.Errorf("result = %+v, want failure text", res)
	}
}

func TestHistoryAndClear(t *testing.T) {
	s, _ := newTestServer(t)

	for _, text := range []string{"Thanks for the update.", "Why is this late?"} {
		body := `{"text": "` + text + `", "user_id": "u1"}`
		if w := do(t, s, http.MethodPost, "/analyze/realtime", body); w.Code != http.StatusOK {
			t.Fatalf("analyze status = %d", w.Code)
		}
	}

	w := do(t, s, http.MethodGet, "/history?user_id=u1", "")
	var entries []historyEntry
	decode(t, w, &entries)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Text != "Why is this late?" {
		t.Errorf("newest entry = %q", entries[0].Text)
	}
	if len(entries[0].Time) != len(HistoryTimeFormat) {
		t.Errorf("time = %q, want layout %s", entries[0].Time, HistoryTimeFormat)
	}

	w = do(t, s, http.MethodDelete, "/history/clear?user_id=u1", "")
	var msg map[string]string
	decode(t, w, &msg)
	if w.Code != http.StatusOK || msg["message"] != "History cleared successfully" {
		t.Errorf("clear = %d %v", w.Code, msg)
	}

	w = do(t, s, http.MethodGet, "/history?user_id=u1", "")
	decode(t, w, &entries)
	if len(entries) != 0 {
		t.Errorf("got %d entries after clear, want 0", len(entries))
	}
}

func TestHistoryWithoutUser(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodGet, "/history", "")
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("GET /history = %d %s, want 200 []", w.Code, w.Body.String())
	}

	w = do(t, s, http.MethodDelete, "/history/clear", "")
	var resp map[string]string
	decode(t, w, &resp)
	if w.Code != http.StatusBadRequest || resp["error"] != "User ID required" {
		t.Errorf("DELETE /history/clear = %d %v", w.Code, resp)
	}
}

func TestDashboard(t *testing.T) {
	s, _ := newTestServer(t)

	for _, text := range []string{"Thank you so much for your help!", "Why haven't you responded?", "The meeting is at 3pm."} {
		body := `{"text": "` + text + `", "user_id": "u1"}`
		do(t, s, http.MethodPost, "/analyze/realtime", body)
	}

	w := do(t, s, http.MethodGet, "/dashboard?user_id=u1", "")
	var d store.Dashboard
	decode(t, w, &d)
	if d.Total != 3 || d.Polite+d.Neutral+d.Harsh != 3 {
		t.Errorf("dashboard = %+v, want 3 analyses", d)
	}

	w = do(t, s, http.MethodGet, "/dashboard", "")
	decode(t, w, &d)
	if d != (store.Dashboard{}) {
		t.Errorf("dashboard without user = %+v, want zeros", d)
	}
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodGet, "/healthz", "")
	var resp struct {
		Status string          `json:"status"`
		Models map[string]bool `json:"models"`
	}
	decode(t, w, &resp)
	if resp.Status != "ok" {
		t.Errorf("status = %q", resp.Status)
	}
	if len(resp.Models) != 2 || resp.Models["business_email"] {
		t.Errorf("models = %v, want two unloaded scorers", resp.Models)
	}
}
