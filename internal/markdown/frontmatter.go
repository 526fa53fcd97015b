package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// PostMeta is the frontmatter header of an imported markdown post file.
type PostMeta struct {
	Title          string   `yaml:"title"`
	Subtitle       string   `yaml:"subtitle"`
	Slug           string   `yaml:"slug"`
	Author         string   `yaml:"author"`
	AuthorRole     string   `yaml:"authorRole"`
	AuthorAvatar   string   `yaml:"authorAvatar"`
	AuthorBio      string   `yaml:"authorBio"`
	Category       string   `yaml:"category"`
	CategoryColor  string   `yaml:"categoryColor"`
	Tags           []string `yaml:"tags"`
	PublishedAt    string   `yaml:"publishedAt"`
	Featured       bool     `yaml:"featured"`
	Emoji          string   `yaml:"emoji"`
	ThumbGradStart string   `yaml:"thumbGradStart"`
	ThumbGradEnd   string   `yaml:"thumbGradEnd"`
}

// ParseFrontMatter splits an imported file into its metadata header and the
// markdown body without delimiters.
func ParseFrontMatter(source []byte) (PostMeta, []byte, error) {
	var meta PostMeta
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return PostMeta{}, nil, fmt.Errorf("markdown: parse frontmatter: %w", err)
	}
	return meta, body, nil
}
