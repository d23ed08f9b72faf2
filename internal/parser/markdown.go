package parser

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser parses markdown message bodies into plain text.
// A document with headings yields one message per top-level section,
// titled by its heading; otherwise the whole body is one message.
type MarkdownParser struct{}

// CanParse returns true if this parser can handle the file
func (p *MarkdownParser) CanParse(path string) bool {
	return GetFileType(path) == FileTypeMarkdown
}

// Parse parses a markdown file into messages
func (p *MarkdownParser) Parse(path string, content []byte) (*ParsedFile, error) {
	frontmatter, body := ParseFrontmatter(content)

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(body))

	msgs := p.extractMessages(doc, body)

	user := stringField(frontmatter, "user")
	for i := range msgs {
		if msgs[i].User == "" {
			msgs[i].User = user
		}
	}
	if id := stringField(frontmatter, "id"); id != "" && len(msgs) == 1 {
		msgs[0].ID = id
	}

	return &ParsedFile{
		Path:        path,
		Content:     content, // Keep original content
		FileType:    FileTypeMarkdown,
		Messages:    msgs,
		Frontmatter: frontmatter,
	}, nil
}

// extractMessages splits the document at its shallowest heading level
func (p *MarkdownParser) extractMessages(doc ast.Node, source []byte) []Message {
	level := 0
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok && (level == 0 || h.Level < level) {
			level = h.Level
		}
	}

	var msgs []Message
	var current *Message
	var sb strings.Builder

	flush := func() {
		body := strings.TrimSpace(sb.String())
		sb.Reset()
		if current == nil {
			if body != "" {
				msgs = append(msgs, Message{Text: body})
			}
			return
		}
		current.Text = body
		if body != "" {
			msgs = append(msgs, *current)
		}
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok && h.Level == level {
			flush()
			current = &Message{ID: strings.TrimSpace(plainText(h, source))}
			continue
		}
		sb.WriteString(plainText(n, source))
		sb.WriteString("\n")
	}
	flush()

	return msgs
}

// plainText renders the inline text under n, dropping markup
func plainText(n ast.Node, source []byte) string {
	var sb strings.Builder

	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if node.Type() == ast.TypeBlock && node != n && !strings.HasSuffix(sb.String(), "\n") {
				sb.WriteString("\n")
			}
			return ast.WalkContinue, nil
		}

		switch v := node.(type) {
		case *ast.Text:
			sb.Write(v.Segment.Value(source))
			if v.HardLineBreak() {
				sb.WriteString("\n")
			} else if v.SoftLineBreak() {
				sb.WriteString(" ")
			}
		case *ast.String:
			sb.Write(v.Value)
		case *ast.AutoLink:
			sb.Write(v.Label(source))
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimRight(sb.String(), "\n")
}
