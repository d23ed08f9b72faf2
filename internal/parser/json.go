package parser

import (
	"encoding/json"
)

// JSONParser parses JSON message batches
type JSONParser struct{}

// CanParse returns true if this parser can handle the file
func (p *JSONParser) CanParse(path string) bool {
	return GetFileType(path) == FileTypeJSON
}

// Parse parses a JSON batch
func (p *JSONParser) Parse(path string, content []byte) (*ParsedFile, error) {
	var data interface{}
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, err
	}

	msgs, err := messagesFrom(data)
	if err != nil {
		return nil, err
	}

	return &ParsedFile{
		Path:     path,
		Content:  content,
		FileType: FileTypeJSON,
		Messages: msgs,
	}, nil
}
