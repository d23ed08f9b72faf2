package classifier

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var builtinTables []byte

var defaultTables = mustLoadTables(builtinTables)

// Tables holds the lexical pattern tables used by the heuristic classifier
// and the router. Tables are read-only once loaded.
type Tables struct {
	// Accusatory are regexes for blame or rhetorical-question phrasing
	Accusatory []string `yaml:"accusatory"`

	// Commanding are regexes for imperative urgency
	Commanding []string `yaml:"commanding"`

	Polite   []string `yaml:"polite"`
	Apology  []string `yaml:"apology"`
	Urgent   []string `yaml:"urgent"`
	Negative []string `yaml:"negative"`

	// SupportKeywords route a message to the customer support scorer
	SupportKeywords []string `yaml:"support_keywords"`

	accusatory []*regexp.Regexp
	commanding []*regexp.Regexp
}

// DefaultTables returns the built-in tables
func DefaultTables() *Tables {
	return defaultTables
}

// LoadTables parses and compiles tables from YAML
func LoadTables(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse tables: %w", err)
	}
	if err := t.compile(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadTablesFile loads tables from a YAML file on disk
func LoadTablesFile(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tables %s: %w", path, err)
	}
	t, err := LoadTables(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func (t *Tables) compile() error {
	required := map[string][]string{
		"accusatory":       t.Accusatory,
		"commanding":       t.Commanding,
		"polite":           t.Polite,
		"apology":          t.Apology,
		"urgent":           t.Urgent,
		"negative":         t.Negative,
		"support_keywords": t.SupportKeywords,
	}
	for name, entries := range required {
		if len(entries) == 0 {
			return fmt.Errorf("table %q is empty", name)
		}
	}

	var err error
	if t.accusatory, err = compileAll(t.Accusatory); err != nil {
		return fmt.Errorf("accusatory: %w", err)
	}
	if t.commanding, err = compileAll(t.Commanding); err != nil {
		return fmt.Errorf("commanding: %w", err)
	}
	return nil
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

func mustLoadTables(data []byte) *Tables {
	t, err := LoadTables(data)
	if err != nil {
		panic(fmt.Sprintf("builtin tables: %v", err))
	}
	return t
}

func matchesAny(patterns []*regexp.Regexp, text string) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
