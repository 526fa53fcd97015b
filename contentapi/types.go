package contentapi

import (
	"bytes"
	"encoding/json"

	"github.com/vibecircle/journal/richtext"
)

// PostDocument is the raw post shape returned by the content service. It
// carries both schema generations: reference-resolved fields projected at
// query time (subtitle, category title/color, author fields) and the flat
// legacy fields older records still use (sub, cat, plain-string author).
// The view-model normalizer in the posts package collapses the two.
type PostDocument struct {
	ID             string   `json:"_id,omitempty"`
	LegacyID       string   `json:"id,omitempty"`
	Title          string   `json:"title"`
	Slug           string   `json:"slug"`
	Subtitle       string   `json:"subtitle,omitempty"`
	Sub            string   `json:"sub,omitempty"`
	CoverImageURL  string   `json:"coverImageUrl,omitempty"`
	Body           Body     `json:"body"`
	PublishedAt    string   `json:"publishedAt,omitempty"`
	Featured       bool     `json:"featured,omitempty"`
	Emoji          string   `json:"emoji,omitempty"`
	ThumbGrad      []string `json:"thumbGrad,omitempty"`
	ThumbGradStart string   `json:"thumbGradStart,omitempty"`
	ThumbGradEnd   string   `json:"thumbGradEnd,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	Category       string   `json:"category,omitempty"`
	Cat            string   `json:"cat,omitempty"`
	CategoryColor  string   `json:"categoryColor,omitempty"`
	CatColor       string   `json:"catColor,omitempty"`
	Author         string   `json:"author,omitempty"`
	AuthorName     string   `json:"authorName,omitempty"`
	AuthorRole     string   `json:"authorRole,omitempty"`
	AuthorAvatar   string   `json:"authorAvatar,omitempty"`
	AuthorImageURL string   `json:"authorImageUrl,omitempty"`
}

// AuthorDocument is the raw author shape returned by author queries.
type AuthorDocument struct {
	ID                  string `json:"_id,omitempty"`
	Name                string `json:"name"`
	Role                string `json:"role,omitempty"`
	Avatar              string `json:"avatar,omitempty"`
	ImageURL            string `json:"imageUrl,omitempty"`
	Bio                 string `json:"bio,omitempty"`
	PostCount           int    `json:"postCount,omitempty"`
	LatestCategory      string `json:"latestCategory,omitempty"`
	LatestCategoryColor string `json:"latestCategoryColor,omitempty"`
}

// Body holds a post body in whichever representation the document carries:
// a structured rich content tree or a legacy plain-text string. Exactly one
// side is populated.
type Body struct {
	Nodes  richtext.Nodes
	Legacy string
}

// IsStructured reports whether the body carries the rich content tree.
func (b Body) IsStructured() bool {
	return len(b.Nodes) > 0
}

// IsEmpty reports whether neither representation carries content.
func (b Body) IsEmpty() bool {
	return len(b.Nodes) == 0 && b.Legacy == ""
}

// UnmarshalJSON accepts a string (legacy), an array of typed nodes
// (structured), or null. Any other shape decodes to an empty body rather
// than failing; body content is loosely validated upstream.
func (b *Body) UnmarshalJSON(data []byte) error {
	*b = Body{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	switch trimmed[0] {
	case '"':
		return json.Unmarshal(trimmed, &b.Legacy)
	case '[':
		nodes, err := richtext.Decode(trimmed)
		if err != nil {
			return err
		}
		b.Nodes = nodes
		return nil
	default:
		return nil
	}
}

// MarshalJSON emits whichever representation is populated, preferring the
// structured tree.
func (b Body) MarshalJSON() ([]byte, error) {
	if b.IsStructured() {
		return json.Marshal(b.Nodes)
	}
	return json.Marshal(b.Legacy)
}

// AssetDocument describes an uploaded binary asset.
type AssetDocument struct {
	ID               string `json:"_id"`
	URL              string `json:"url"`
	OriginalFilename string `json:"originalFilename,omitempty"`
}
