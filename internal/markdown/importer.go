package markdown

import (
	"errors"
	"fmt"
	"os"

	"github.com/vibecircle/journal/richtext"
)

var (
	// ErrTitleMissing marks an imported file without a title in its
	// frontmatter header.
	ErrTitleMissing = errors.New("markdown: frontmatter title is required")

	// ErrBodyEmpty marks an imported file whose body converts to nothing.
	ErrBodyEmpty = errors.New("markdown: body is empty")
)

// ImportedPost is a markdown file parsed into metadata and rich content.
type ImportedPost struct {
	Meta PostMeta
	Body richtext.Nodes
}

// ParsePost splits and converts a complete markdown post file.
func ParsePost(source []byte) (*ImportedPost, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}
	if meta.Title == "" {
		return nil, ErrTitleMissing
	}
	nodes, err := Convert(body)
	if err != nil {
		return nil, fmt.Errorf("markdown: convert body: %w", err)
	}
	if len(nodes) == 0 {
		return nil, ErrBodyEmpty
	}
	return &ImportedPost{Meta: meta, Body: nodes}, nil
}

// LoadPost reads and parses a markdown post file from disk.
func LoadPost(path string) (*ImportedPost, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("markdown: read %s: %w", path, err)
	}
	post, err := ParsePost(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return post, nil
}
