package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vibecircle/journal/contentapi"
	publishcmd "github.com/vibecircle/journal/internal/commands/publish"
	"github.com/vibecircle/journal/internal/logging"
	"github.com/vibecircle/journal/internal/markdown"
	"github.com/vibecircle/journal/internal/schema"
	"github.com/vibecircle/journal/pkg/interfaces"
	"github.com/vibecircle/journal/posts"
	"github.com/vibecircle/journal/richtext"
)

// Publisher composes and persists documents on the content service. It
// owns the upsert rules: authors and categories are matched by
// name-derived slug or exact name so formatting differences never create
// duplicates.
type Publisher struct {
	writer *contentapi.WriteClient
	logger interfaces.Logger
	now    func() time.Time
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithPublisherLogger attaches a logger.
func WithPublisherLogger(logger interfaces.Logger) PublisherOption {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithPublisherNow overrides the clock used for default publish dates.
func WithPublisherNow(now func() time.Time) PublisherOption {
	return func(p *Publisher) {
		if now != nil {
			p.now = now
		}
	}
}

// NewPublisher builds a publisher over the given write client.
func NewPublisher(writer *contentapi.WriteClient, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		writer: writer,
		logger: logging.NoOp(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// UploadImage forwards an asset upload to the content service.
func (p *Publisher) UploadImage(ctx context.Context, filename, contentType string, data io.Reader) (*contentapi.AssetDocument, error) {
	return p.writer.UploadImage(ctx, filename, contentType, data)
}

func imageRef(asset *contentapi.AssetDocument) map[string]any {
	return map[string]any{
		"_type": "image",
		"asset": map[string]any{"_type": "reference", "_ref": asset.ID},
	}
}

// EnsureAuthor finds an author by slug or exact name, patching the fields
// the caller supplied, or creates one with documented defaults. It returns
// the author document id.
func (p *Publisher) EnsureAuthor(ctx context.Context, cmd publishcmd.SaveAuthorCommand) (string, error) {
	id, _, err := p.upsertAuthor(ctx, cmd, false)
	return id, err
}

// SaveAuthor upserts a full author profile, overwriting existing fields.
// It reports whether a new document was created.
func (p *Publisher) SaveAuthor(ctx context.Context, cmd publishcmd.SaveAuthorCommand) (string, bool, error) {
	return p.upsertAuthor(ctx, cmd, true)
}

func (p *Publisher) upsertAuthor(ctx context.Context, cmd publishcmd.SaveAuthorCommand, overwrite bool) (string, bool, error) {
	name := strings.TrimSpace(cmd.Name)
	slug := posts.Slugify(name)

	existing, err := p.writer.FindAuthorID(ctx, slug, name)
	if err != nil {
		return "", false, fmt.Errorf("admin: find author: %w", err)
	}
	if existing != "" {
		set := map[string]any{}
		if overwrite {
			set["name"] = name
			set["slug"] = map[string]any{"_type": "slug", "current": slug}
			set["role"] = defaultString(cmd.Role, posts.DefaultRole)
			set["avatarEmoji"] = defaultString(cmd.AvatarEmoji, posts.DefaultAvatarGlyph)
			set["bio"] = cmd.Bio
		} else {
			if cmd.Role != "" {
				set["role"] = cmd.Role
			}
			if cmd.AvatarEmoji != "" {
				set["avatarEmoji"] = cmd.AvatarEmoji
			}
			if cmd.Bio != "" {
				set["bio"] = cmd.Bio
			}
		}
		if cmd.PhotoAsset != nil && cmd.PhotoAsset.ID != "" {
			set["photo"] = imageRef(cmd.PhotoAsset)
		}
		if err := p.writer.Patch(ctx, existing, set); err != nil {
			return "", false, fmt.Errorf("admin: patch author: %w", err)
		}
		return existing, false, nil
	}

	doc := map[string]any{
		"_type":       "author",
		"name":        name,
		"slug":        map[string]any{"_type": "slug", "current": slug},
		"role":        defaultString(cmd.Role, posts.DefaultRole),
		"avatarEmoji": defaultString(cmd.AvatarEmoji, posts.DefaultAvatarGlyph),
		"bio":         cmd.Bio,
	}
	if cmd.PhotoAsset != nil && cmd.PhotoAsset.ID != "" {
		doc["photo"] = imageRef(cmd.PhotoAsset)
	}
	if err := schema.ValidateAuthor(doc); err != nil {
		return "", false, err
	}
	id, err := p.writer.Create(ctx, doc)
	if err != nil {
		return "", false, fmt.Errorf("admin: create author: %w", err)
	}
	p.logger.Info("author created", "id", id, "slug", slug)
	return id, true, nil
}

// EnsureCategory finds a category by slug or exact title, patching its
// color when supplied, or creates one with the default color. It returns
// the category document id.
func (p *Publisher) EnsureCategory(ctx context.Context, title, color string) (string, error) {
	title = strings.TrimSpace(title)
	slug := posts.Slugify(title)

	existing, err := p.writer.FindCategoryID(ctx, slug, title)
	if err != nil {
		return "", fmt.Errorf("admin: find category: %w", err)
	}
	if existing != "" {
		if color != "" {
			if err := p.writer.Patch(ctx, existing, map[string]any{"color": color}); err != nil {
				return "", fmt.Errorf("admin: patch category: %w", err)
			}
		}
		return existing, nil
	}

	doc := map[string]any{
		"_type": "category",
		"title": title,
		"slug":  map[string]any{"_type": "slug", "current": slug},
		"color": defaultString(color, posts.DefaultCategoryColor),
	}
	if err := schema.ValidateCategory(doc); err != nil {
		return "", err
	}
	id, err := p.writer.Create(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("admin: create category: %w", err)
	}
	p.logger.Info("category created", "id", id, "slug", slug)
	return id, nil
}

// CreatePost publishes one admin submission: the free-text body is parsed
// into rich content blocks, image assets become image nodes appended after
// the text, and author/category are upserted before the post references
// them. Returns the new post document id.
func (p *Publisher) CreatePost(ctx context.Context, cmd publishcmd.CreatePostCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}
	body := richtext.ParseLegacy(cmd.Body)
	return p.publish(ctx, cmd, body)
}

// PublishImported publishes a post parsed from a markdown file.
func (p *Publisher) PublishImported(ctx context.Context, post *markdown.ImportedPost) (string, error) {
	meta := post.Meta
	cmd := publishcmd.CreatePostCommand{
		Title:          meta.Title,
		Subtitle:       defaultString(meta.Subtitle, meta.Title),
		Tags:           meta.Tags,
		AuthorName:     meta.Author,
		AuthorRole:     meta.AuthorRole,
		AuthorAvatar:   meta.AuthorAvatar,
		AuthorBio:      meta.AuthorBio,
		Category:       meta.Category,
		CategoryColor:  meta.CategoryColor,
		Emoji:          meta.Emoji,
		Featured:       meta.Featured,
		ThumbGradStart: meta.ThumbGradStart,
		ThumbGradEnd:   meta.ThumbGradEnd,
		PublishedAt:    meta.PublishedAt,
	}
	if err := cmd.Validate(); err != nil {
		return "", err
	}
	return p.publish(ctx, cmd, post.Body)
}

func (p *Publisher) publish(ctx context.Context, cmd publishcmd.CreatePostCommand, body richtext.Nodes) (string, error) {
	authorID, err := p.EnsureAuthor(ctx, publishcmd.SaveAuthorCommand{
		Name:        cmd.AuthorName,
		Role:        cmd.AuthorRole,
		AvatarEmoji: cmd.AuthorAvatar,
		Bio:         cmd.AuthorBio,
		PhotoAsset:  cmd.AuthorPhotoAsset,
	})
	if err != nil {
		return "", err
	}

	categoryID, err := p.EnsureCategory(ctx, cmd.Category, cmd.CategoryColor)
	if err != nil {
		return "", err
	}

	bodyValues, err := nodesToValues(body)
	if err != nil {
		return "", err
	}
	for _, asset := range cmd.BodyImageAssets {
		if asset.ID == "" {
			continue
		}
		block := imageRef(&asset)
		block["alt"] = defaultString(asset.OriginalFilename, "image")
		bodyValues = append(bodyValues, block)
	}

	title := strings.TrimSpace(cmd.Title)
	doc := map[string]any{
		"_type":          "post",
		"title":          title,
		"subtitle":       strings.TrimSpace(cmd.Subtitle),
		"slug":           map[string]any{"_type": "slug", "current": posts.Slugify(title)},
		"author":         map[string]any{"_type": "reference", "_ref": authorID},
		"category":       map[string]any{"_type": "reference", "_ref": categoryID},
		"tags":           cleanTags(cmd.Tags),
		"publishedAt":    defaultString(cmd.PublishedAt, p.now().UTC().Format(time.RFC3339)),
		"featured":       cmd.Featured,
		"emoji":          defaultString(strings.TrimSpace(cmd.Emoji), posts.DefaultEmoji),
		"thumbGradStart": defaultString(strings.TrimSpace(cmd.ThumbGradStart), posts.DefaultGradientStart),
		"thumbGradEnd":   defaultString(strings.TrimSpace(cmd.ThumbGradEnd), posts.DefaultGradientEnd),
		"body":           bodyValues,
	}
	if cmd.CoverAsset != nil && cmd.CoverAsset.ID != "" {
		cover := imageRef(cmd.CoverAsset)
		cover["alt"] = title
		doc["coverImage"] = cover
	}

	if err := schema.ValidatePost(doc); err != nil {
		return "", err
	}

	id, err := p.writer.Create(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("admin: create post: %w", err)
	}
	p.logger.Info("post created", "id", id, "title", title)
	return id, nil
}

// nodesToValues re-encodes rich content nodes into the plain JSON values
// the mutation payload and schema validator work with.
func nodesToValues(nodes richtext.Nodes) ([]any, error) {
	if len(nodes) == 0 {
		return []any{}, nil
	}
	encoded, err := json.Marshal(nodes)
	if err != nil {
		return nil, fmt.Errorf("admin: encode body: %w", err)
	}
	var values []any
	if err := json.Unmarshal(encoded, &values); err != nil {
		return nil, fmt.Errorf("admin: decode body: %w", err)
	}
	return values, nil
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
