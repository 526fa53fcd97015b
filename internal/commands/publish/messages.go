package publishcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/vibecircle/journal/contentapi"
)

const (
	createPostMessageType      = "journal.publish.create_post"
	saveAuthorMessageType      = "journal.publish.save_author"
	importDirectoryMessageType = "journal.publish.import_directory"
	migrateLegacyMessageType   = "journal.publish.migrate_legacy"
)

func requiredTrimmed(code, msg string) validation.Rule {
	return validation.By(func(value any) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return validation.NewError(code, msg)
		}
		return nil
	})
}

// CreatePostCommand carries one admin post submission: text fields plus
// any assets already uploaded to the content service.
type CreatePostCommand struct {
	Title          string   `json:"title"`
	Subtitle       string   `json:"subtitle"`
	Body           string   `json:"body"`
	Tags           []string `json:"tags,omitempty"`
	AuthorName     string   `json:"author_name"`
	AuthorRole     string   `json:"author_role,omitempty"`
	AuthorAvatar   string   `json:"author_avatar,omitempty"`
	AuthorBio      string   `json:"author_bio,omitempty"`
	Category       string   `json:"category"`
	CategoryColor  string   `json:"category_color,omitempty"`
	Emoji          string   `json:"emoji,omitempty"`
	Featured       bool     `json:"featured,omitempty"`
	ThumbGradStart string   `json:"thumb_grad_start,omitempty"`
	ThumbGradEnd   string   `json:"thumb_grad_end,omitempty"`
	PublishedAt    string   `json:"published_at,omitempty"`

	CoverAsset       *contentapi.AssetDocument  `json:"-"`
	AuthorPhotoAsset *contentapi.AssetDocument  `json:"-"`
	BodyImageAssets  []contentapi.AssetDocument `json:"-"`
}

// Type implements command.Message.
func (CreatePostCommand) Type() string { return createPostMessageType }

// Validate enforces the required admin form fields.
func (cmd CreatePostCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Title, requiredTrimmed("journal.publish.create_post.title_required", "title is required")),
		validation.Field(&cmd.Subtitle, requiredTrimmed("journal.publish.create_post.subtitle_required", "subtitle is required")),
		validation.Field(&cmd.AuthorName, requiredTrimmed("journal.publish.create_post.author_required", "author name is required")),
		validation.Field(&cmd.Category, requiredTrimmed("journal.publish.create_post.category_required", "category is required")),
	)
}

// SaveAuthorCommand upserts an author profile.
type SaveAuthorCommand struct {
	Name        string `json:"name"`
	Role        string `json:"role,omitempty"`
	AvatarEmoji string `json:"avatar_emoji,omitempty"`
	Bio         string `json:"bio,omitempty"`

	PhotoAsset *contentapi.AssetDocument `json:"-"`
}

// Type implements command.Message.
func (SaveAuthorCommand) Type() string { return saveAuthorMessageType }

// Validate enforces the author name requirement.
func (cmd SaveAuthorCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Name, requiredTrimmed("journal.publish.save_author.name_required", "author name is required")),
	)
}

// ImportDirectoryCommand publishes every markdown post file found under
// Directory.
type ImportDirectoryCommand struct {
	Directory string `json:"directory"`
	DryRun    bool   `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ImportDirectoryCommand) Type() string { return importDirectoryMessageType }

// Validate ensures a directory was supplied.
func (cmd ImportDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, requiredTrimmed("journal.publish.import_directory.directory_required", "directory is required")),
	)
}

// MigrateLegacyCommand rewrites legacy plain-text post bodies into
// structured rich content.
type MigrateLegacyCommand struct {
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (MigrateLegacyCommand) Type() string { return migrateLegacyMessageType }
