package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pthm/tonelint/internal/fixer"
	"github.com/pthm/tonelint/internal/store"
)

// userID accepts a JSON string or number
type userID string

func (u *userID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*u = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*u = userID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*u = userID(n.String())
	return nil
}

type analyzeRequest struct {
	Text   string `json:"text"`
	UserID userID `json:"user_id"`
}

type rewriteRequest struct {
	Text          string   `json:"text"`
	Tone          string   `json:"tone"`
	ClarityIssues []string `json:"clarity_issues"`
}

type historyEntry struct {
	Text          string   `json:"text"`
	Tone          string   `json:"tone"`
	ClarityIssues []string `json:"clarityIssues"`
	Time          string   `json:"time"`
}

func (s *Server) analyzeRealtime(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing text or user"})
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing text or user"})
		return
	}

	report := s.analyzer.Analyze(text)

	if s.store != nil {
		err := s.store.Save(c.Request.Context(), &store.Analysis{
			UserID:        string(req.UserID),
			Text:          text,
			Tone:          string(report.Tone.Label),
			Confidence:    report.Tone.Confidence,
			Explanation:   report.Tone.Explanation,
			ClarityScore:  report.Clarity.Score,
			ClarityIssues: report.Clarity.Issues,
		})
		if err != nil {
			slog.Error("saving analysis", "user", req.UserID, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save analysis"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"tone":    report.Tone,
		"clarity": report.Clarity,
	})
}

func (s *Server) rewrite(c *gin.Context) {
	var req rewriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid rewrite request", "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "rewritten_text": "", "error": "Invalid JSON body"})
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "rewritten_text": "", "error": "Text is required"})
		return
	}

	res, err := s.fixer.Rewrite(c.Request.Context(), fixer.Request{
		Text:          text,
		Tone:          fixer.NormalizeTone(req.Tone),
		ClarityIssues: req.ClarityIssues,
	})
	if err != nil {
		slog.Warn("rewrite request failed", "err", err)
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) history(c *gin.Context) {
	user := c.Query("user_id")
	if user == "" || s.store == nil {
		c.JSON(http.StatusOK, []historyEntry{})
		return
	}

	entries, err := s.store.History(c.Request.Context(), user)
	if err != nil {
		slog.Error("loading history", "user", user, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}

	out := make([]historyEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, historyEntry{
			Text:          e.Text,
			Tone:          e.Tone,
			ClarityIssues: e.ClarityIssues,
			Time:          e.CreatedAt.Format(HistoryTimeFormat),
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) clearHistory(c *gin.Context) {
	user := c.Query("user_id")
	if user == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID required"})
		return
	}

	if s.store != nil {
		n, err := s.store.Clear(c.Request.Context(), user)
		if err != nil {
			slog.Error("clearing history", "user", user, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear history"})
			return
		}
		slog.Info("history cleared", "user", user, "removed", n)
	}
	c.JSON(http.StatusOK, gin.H{"message": "History cleared successfully"})
}

func (s *Server) dashboard(c *gin.Context) {
	user := c.Query("user_id")
	if user == "" || s.store == nil {
		c.JSON(http.StatusOK, store.Dashboard{})
		return
	}

	d, err := s.store.Dashboard(c.Request.Context(), user)
	if err != nil {
		slog.Error("loading dashboard", "user", user, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}
	c.JSON(http.StatusOK, d)
}
