package parser

// PlainParser treats the whole file as one message
type PlainParser struct{}

// CanParse returns true (fallback parser)
func (p *PlainParser) CanParse(path string) bool {
	return true
}

// Parse parses a plain text file
func (p *PlainParser) Parse(path string, content []byte) (*ParsedFile, error) {
	return &ParsedFile{
		Path:     path,
		Content:  content,
		FileType: FileTypeUnknown,
		Messages: []Message{{Text: string(content)}},
	}, nil
}
