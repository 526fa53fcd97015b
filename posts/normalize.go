package posts

import (
	"time"

	"github.com/vibecircle/journal/contentapi"
	"github.com/vibecircle/journal/richtext"
)

// Documented view-model defaults applied during normalization.
const (
	DefaultRole          = "Contributor"
	DefaultAvatarGlyph   = "✍️"
	DefaultEmoji         = "📝"
	DefaultCategoryColor = "#FF6B00"
	DefaultGradientStart = "#FF6B00"
	DefaultGradientEnd   = "#FF2D78"
)

// dateFormat is the fixed human-readable form used on post cards and
// detail pages.
const dateFormat = "Jan 02, 2006"

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FormatDate renders an ISO timestamp in the fixed display form. Absent
// or unparsable input formats to an empty string, never an error.
func FormatDate(iso string) string {
	if iso == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, iso); err == nil {
			return parsed.Format(dateFormat)
		}
	}
	return ""
}

// Normalize maps a raw document of either shape into the canonical Post.
// Field resolution is first-defined-wins: the reference-resolved field,
// then the legacy flat field, then the documented default.
func Normalize(doc contentapi.PostDocument) Post {
	gradient := Gradient{Start: DefaultGradientStart, End: DefaultGradientEnd}
	switch {
	case len(doc.ThumbGrad) == 2 && doc.ThumbGrad[0] != "" && doc.ThumbGrad[1] != "":
		gradient = Gradient{Start: doc.ThumbGrad[0], End: doc.ThumbGrad[1]}
	case doc.ThumbGradStart != "" && doc.ThumbGradEnd != "":
		gradient = Gradient{Start: doc.ThumbGradStart, End: doc.ThumbGradEnd}
	}

	post := Post{
		ID:       coalesce(doc.ID, doc.LegacyID),
		Slug:     doc.Slug,
		Title:    doc.Title,
		Subtitle: coalesce(doc.Subtitle, doc.Sub),
		Author: PostAuthor{
			Name:     coalesce(doc.AuthorName, doc.Author),
			Role:     doc.AuthorRole,
			ImageURL: doc.AuthorImageURL,
		},
		Category: PostCategory{
			Title:    coalesce(doc.Category, doc.Cat),
			ColorHex: coalesce(doc.CategoryColor, doc.CatColor),
		},
		Tags:          doc.Tags,
		PublishedAt:   doc.PublishedAt,
		Featured:      doc.Featured,
		Emoji:         doc.Emoji,
		CoverImageURL: doc.CoverImageURL,
		Gradient:      gradient,
		Body:          doc.Body,
	}
	post.Author.AvatarGlyph = doc.AuthorAvatar
	return Canonicalize(post)
}

// Canonicalize fills documented defaults and recomputes the derived fields
// of a Post. It is idempotent: canonicalizing an already-canonical post
// yields an identical value.
func Canonicalize(p Post) Post {
	if p.Author.Role == "" {
		p.Author.Role = DefaultRole
	}
	if p.Author.AvatarGlyph == "" {
		p.Author.AvatarGlyph = DefaultAvatarGlyph
	}
	if p.Emoji == "" {
		p.Emoji = DefaultEmoji
	}
	if p.Gradient.Start == "" || p.Gradient.End == "" {
		p.Gradient = Gradient{Start: DefaultGradientStart, End: DefaultGradientEnd}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}

	p.Date = FormatDate(p.PublishedAt)
	if len(p.PublishedAt) >= 10 {
		p.Published = p.PublishedAt[:10]
	} else {
		p.Published = ""
	}

	if p.Body.IsStructured() {
		p.BodyText = richtext.PlainText(p.Body.Nodes)
	} else {
		p.BodyText = p.Body.Legacy
	}
	p.ReadTime = richtext.ReadTimeFromText(p.BodyText)
	return p
}

// AuthorFromDocument maps a raw author document into the author model.
func AuthorFromDocument(doc contentapi.AuthorDocument) Author {
	author := Author{
		Name:                doc.Name,
		Slug:                Slugify(doc.Name),
		Role:                doc.Role,
		AvatarGlyph:         doc.Avatar,
		ImageURL:            doc.ImageURL,
		Bio:                 doc.Bio,
		PostCount:           doc.PostCount,
		LatestCategory:      doc.LatestCategory,
		LatestCategoryColor: doc.LatestCategoryColor,
	}
	if author.Role == "" {
		author.Role = DefaultRole
	}
	if author.AvatarGlyph == "" {
		author.AvatarGlyph = DefaultAvatarGlyph
	}
	return author
}

// AuthorsFromPosts derives the distinct byline authors from a post list,
// first occurrence wins, preserving post order. Posts without an author
// name are skipped. PostCount counts every attributed post.
func AuthorsFromPosts(list []Post) []Author {
	index := make(map[string]int)
	authors := make([]Author, 0, len(list))
	for _, p := range list {
		name := p.Author.Name
		if name == "" {
			continue
		}
		if at, seen := index[name]; seen {
			authors[at].PostCount++
			continue
		}
		index[name] = len(authors)
		authors = append(authors, Author{
			Name:        name,
			Slug:        Slugify(name),
			Role:        p.Author.Role,
			AvatarGlyph: p.Author.AvatarGlyph,
			ImageURL:    p.Author.ImageURL,
			PostCount:   1,
		})
	}
	return authors
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
