package parser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Message is a single piece of text to analyze
type Message struct {
	ID   string `yaml:"id" json:"id,omitempty"`
	User string `yaml:"user" json:"user,omitempty"`
	Text string `yaml:"text" json:"text"`
}

// ParsedFile represents a parsed message source
type ParsedFile struct {
	Path        string
	Content     []byte
	FileType    FileType
	Messages    []Message
	Frontmatter map[string]interface{} // YAML frontmatter from markdown files
}

// FileType represents the format of a message source
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeMarkdown
	FileTypeJSON
	FileTypeYAML
)

func (t FileType) String() string {
	switch t {
	case FileTypeMarkdown:
		return "markdown"
	case FileTypeJSON:
		return "json"
	case FileTypeYAML:
		return "yaml"
	default:
		return "plain"
	}
}

// Parser defines the interface for turning a source into messages
type Parser interface {
	Parse(path string, content []byte) (*ParsedFile, error)
	CanParse(path string) bool
}

// StdinPath is the path that reads messages from standard input
const StdinPath = "-"

// Parse reads and parses a file using the appropriate parser
func Parse(path string) (*ParsedFile, error) {
	if path == StdinPath {
		return ParseReader(path, os.Stdin)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseContent(path, content)
}

// ParseReader parses everything read from r. The name selects the parser
// the same way a file path would; "-" is treated as plain text.
func ParseReader(name string, r io.Reader) (*ParsedFile, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return ParseContent(name, content)
}

// ParseContent parses content already in memory
func ParseContent(path string, content []byte) (*ParsedFile, error) {
	parsed, err := getParser(path).Parse(path, content)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	for i := range parsed.Messages {
		if parsed.Messages[i].ID == "" {
			parsed.Messages[i].ID = messageID(path, i, len(parsed.Messages))
		}
	}
	return parsed, nil
}

// ParseText wraps inline text as a single message
func ParseText(text string) *ParsedFile {
	return &ParsedFile{
		Path:     "inline",
		Content:  []byte(text),
		FileType: FileTypeUnknown,
		Messages: []Message{{ID: "inline", Text: text}},
	}
}

func messageID(path string, i, total int) string {
	base := filepath.Base(path)
	if path == StdinPath {
		base = "stdin"
	}
	if total == 1 {
		return base
	}
	return fmt.Sprintf("%s#%d", base, i+1)
}

// getParser returns the appropriate parser for a file
func getParser(path string) Parser {
	switch GetFileType(path) {
	case FileTypeMarkdown:
		return &MarkdownParser{}
	case FileTypeJSON:
		return &JSONParser{}
	case FileTypeYAML:
		return &YAMLParser{}
	default:
		return &PlainParser{}
	}
}

// GetFileType returns the FileType for a given path
func GetFileType(path string) FileType {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".md", ".markdown":
		return FileTypeMarkdown
	case ".json":
		return FileTypeJSON
	case ".yaml", ".yml":
		return FileTypeYAML
	default:
		return FileTypeUnknown
	}
}

// ParseFrontmatter extracts YAML frontmatter from content between --- delimiters
// Returns the parsed frontmatter and the remaining content without frontmatter
func ParseFrontmatter(content []byte) (map[string]interface{}, []byte) {
	s := string(content)

	// Must start with ---
	if !strings.HasPrefix(s, "---") {
		return nil, content
	}

	// Find the closing ---
	rest := s[3:]
	endIdx := strings.Index(rest, "\n---")
	if endIdx == -1 {
		return nil, content
	}

	frontmatterStr := strings.TrimSpace(rest[:endIdx])

	var frontmatter map[string]interface{}
	if err := yaml.Unmarshal([]byte(frontmatterStr), &frontmatter); err != nil {
		return nil, content
	}

	// Return remaining content after frontmatter
	remaining := rest[endIdx+4:] // +4 for "\n---"
	remaining = strings.TrimPrefix(remaining, "\n")

	return frontmatter, []byte(remaining)
}

// messagesFrom normalizes a decoded batch document. Accepted shapes are a
// list of strings, a list of message objects, a single message object, or
// an object with a "messages" list.
func messagesFrom(data interface{}) ([]Message, error) {
	switch v := data.(type) {
	case nil:
		return nil, nil
	case string:
		return []Message{{Text: v}}, nil
	case []interface{}:
		msgs := make([]Message, 0, len(v))
		for i, item := range v {
			m, err := messageFrom(item)
			if err != nil {
				return nil, fmt.Errorf("message %d: %w", i+1, err)
			}
			msgs = append(msgs, m)
		}
		return msgs, nil
	case map[string]interface{}:
		if list, ok := v["messages"]; ok {
			return messagesFrom(list)
		}
		m, err := messageFrom(v)
		if err != nil {
			return nil, err
		}
		return []Message{m}, nil
	default:
		return nil, fmt.Errorf("unsupported document of type %T", data)
	}
}

func messageFrom(item interface{}) (Message, error) {
	switch v := item.(type) {
	case string:
		return Message{Text: v}, nil
	case map[string]interface{}:
		text, ok := v["text"].(string)
		if !ok {
			return Message{}, fmt.Errorf("missing text field")
		}
		return Message{
			ID:   stringField(v, "id"),
			User: stringField(v, "user"),
			Text: text,
		}, nil
	default:
		return Message{}, fmt.Errorf("unsupported message of type %T", item)
	}
}

func stringField(m map[string]interface{}, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
