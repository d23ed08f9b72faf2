package parser

import (
	"gopkg.in/yaml.v3"
)

// YAMLParser parses YAML message batches
type YAMLParser struct{}

// CanParse returns true if this parser can handle the file
func (p *YAMLParser) CanParse(path string) bool {
	return GetFileType(path) == FileTypeYAML
}

// Parse parses a YAML batch
func (p *YAMLParser) Parse(path string, content []byte) (*ParsedFile, error) {
	var data interface{}
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}

	msgs, err := messagesFrom(data)
	if err != nil {
		return nil, err
	}

	return &ParsedFile{
		Path:     path,
		Content:  content,
		FileType: FileTypeYAML,
		Messages: msgs,
	}, nil
}
