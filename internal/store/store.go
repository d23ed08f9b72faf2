// Package store keeps a per-user history of message analyses in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrMissingUser is returned when an operation needs a user ID and got none
var ErrMissingUser = errors.New("user ID required")

// PreviewLength is the number of characters of message text kept in history listings
const PreviewLength = 120

// timeFormat sorts lexically in chronological order
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

var openDB = sql.Open

// Analysis is one stored analysis
type Analysis struct {
	ID            string
	UserID        string
	Text          string
	Tone          string
	Confidence    float64
	Explanation   string
	ClarityScore  int
	ClarityIssues []string
	RewrittenText string
	CreatedAt     time.Time
}

// HistoryEntry is a shortened analysis for listings
type HistoryEntry struct {
	ID            string    `json:"id"`
	Text          string    `json:"text"`
	Tone          string    `json:"tone"`
	ClarityScore  int       `json:"clarity_score"`
	ClarityIssues []string  `json:"clarity_issues"`
	CreatedAt     time.Time `json:"created_at"`
}

// Dashboard counts a user's analyses by tone
type Dashboard struct {
	Total   int `json:"total"`
	Polite  int `json:"polite"`
	Neutral int `json:"neutral"`
	Harsh   int `json:"harsh"`
}

// Store persists analyses
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path and runs migrations
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("store: create data dir: %w", err)
		}
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS email_analyses (
			id             TEXT PRIMARY KEY,
			user_id        TEXT    NOT NULL,
			email_text     TEXT    NOT NULL,
			tone           TEXT,
			confidence     REAL,
			explanation    TEXT,
			clarity_score  INTEGER,
			clarity_issues TEXT,
			rewritten_text TEXT,
			created_at     TEXT    NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_email_analyses_user
			ON email_analyses(user_id, created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save stores a, filling in ID and CreatedAt when unset
func (s *Store) Save(ctx context.Context, a *Analysis) error {
	if a.UserID == "" {
		return ErrMissingUser
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now()
	}

	issues := a.ClarityIssues
	if issues == nil {
		issues = []string{}
	}
	issuesJSON, err := json.Marshal(issues)
	if err != nil {
		return fmt.Errorf("store: encode clarity issues: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO email_analyses
			(id, user_id, email_text, tone, confidence, explanation, clarity_score, clarity_issues, rewritten_text, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.Text, a.Tone, a.Confidence, a.Explanation, a.ClarityScore,
		string(issuesJSON), nullableString(a.RewrittenText), a.CreatedAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("store: save analysis: %w", err)
	}
	return nil
}

// SetRewrite records the rewritten text for a stored analysis
func (s *Store) SetRewrite(ctx context.Context, id, text string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE email_analyses SET rewritten_text = ? WHERE id = ?`, nullableString(text), id)
	if err != nil {
		return fmt.Errorf("store: set rewrite: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store: analysis %s: %w", id, sql.ErrNoRows)
	}
	return nil
}

// History lists a user's analyses newest first, text shortened to PreviewLength
func (s *Store) History(ctx context.Context, userID string) ([]HistoryEntry, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, email_text, tone, clarity_score, clarity_issues, created_at
		 FROM email_analyses
		 WHERE user_id = ?
		 ORDER BY created_at DESC, rowid DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("store: query history: %w", err)
	}
	defer rows.Close()

	entries := []HistoryEntry{}
	for rows.Next() {
		var (
			e            HistoryEntry
			tone, issues sql.NullString
			score        sql.NullInt64
			created      string
		)
		if err := rows.Scan(&e.ID, &e.Text, &tone, &score, &issues, &created); err != nil {
			return nil, fmt.Errorf("store: scan history: %w", err)
		}
		e.Text = Truncate(e.Text, PreviewLength)
		e.Tone = tone.String
		e.ClarityScore = int(score.Int64)
		e.ClarityIssues = decodeIssues(issues.String)
		if e.CreatedAt, err = time.Parse(timeFormat, created); err != nil {
			return nil, fmt.Errorf("store: parse created_at %q: %w", created, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear deletes all of a user's analyses and returns how many were removed
func (s *Store) Clear(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, ErrMissingUser
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM email_analyses WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("store: clear history: %w", err)
	}
	return res.RowsAffected()
}

// Dashboard counts a user's analyses per tone
func (s *Store) Dashboard(ctx context.Context, userID string) (Dashboard, error) {
	var d Dashboard
	if userID == "" {
		return d, ErrMissingUser
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT COALESCE(tone, ''), COUNT(*) FROM email_analyses WHERE user_id = ? GROUP BY tone`, userID)
	if err != nil {
		return d, fmt.Errorf("store: query dashboard: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tone string
		var n int
		if err := rows.Scan(&tone, &n); err != nil {
			return d, fmt.Errorf("store: scan dashboard: %w", err)
		}
		d.Total += n
		switch tone {
		case "polite":
			d.Polite = n
		case "neutral":
			d.Neutral = n
		case "harsh":
			d.Harsh = n
		}
	}
	return d, rows.Err()
}

// Truncate shortens s to max characters with an ellipsis
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

func decodeIssues(s string) []string {
	issues := []string{}
	if s == "" {
		return issues
	}
	if err := json.Unmarshal([]byte(s), &issues); err != nil {
		return []string{}
	}
	return issues
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
