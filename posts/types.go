package posts

import (
	"github.com/vibecircle/journal/contentapi"
)

// PostAuthor is the denormalized author byline carried on a post.
type PostAuthor struct {
	Name        string `json:"name"`
	Role        string `json:"role,omitempty"`
	AvatarGlyph string `json:"avatarGlyph,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// PostCategory is the denormalized category label carried on a post.
type PostCategory struct {
	Title    string `json:"title"`
	ColorHex string `json:"colorHex,omitempty"`
}

// Gradient is the two-color thumbnail gradient.
type Gradient struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Post is the canonical view model every raw document shape normalizes
// into. Body carries exactly one representation, structured or legacy
// plain text, and ReadTime is derived from whichever is present.
type Post struct {
	ID            string          `json:"id"`
	Slug          string          `json:"slug"`
	Title         string          `json:"title"`
	Subtitle      string          `json:"subtitle,omitempty"`
	Author        PostAuthor      `json:"author"`
	Category      PostCategory    `json:"category"`
	Tags          []string        `json:"tags"`
	PublishedAt   string          `json:"publishedAt,omitempty"`
	Date          string          `json:"date,omitempty"`
	Published     string          `json:"published,omitempty"`
	Featured      bool            `json:"featured"`
	Emoji         string          `json:"emoji,omitempty"`
	CoverImageURL string          `json:"coverImageUrl,omitempty"`
	Gradient      Gradient        `json:"thumbnailGradient"`
	Body          contentapi.Body `json:"body"`
	BodyText      string          `json:"bodyText,omitempty"`
	ReadTime      string          `json:"readTime"`
}

// Author is the standalone author model used on author pages.
type Author struct {
	Name                string `json:"name"`
	Slug                string `json:"slug,omitempty"`
	Role                string `json:"role,omitempty"`
	AvatarGlyph         string `json:"avatarGlyph,omitempty"`
	ImageURL            string `json:"imageUrl,omitempty"`
	Bio                 string `json:"bio,omitempty"`
	PostCount           int    `json:"postCount,omitempty"`
	LatestCategory      string `json:"latestCategory,omitempty"`
	LatestCategoryColor string `json:"latestCategoryColor,omitempty"`
}

// Category is the standalone category model.
type Category struct {
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	ColorHex string `json:"colorHex,omitempty"`
}
