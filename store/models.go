package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/vibecircle/journal/posts"
)

// PostRecord is a locally persisted copy of a normalized post, keyed by
// slug. The canonical view model is stored whole in the payload column so
// the snapshot can answer reads without re-normalizing.
type PostRecord struct {
	bun.BaseModel `bun:"table:post_snapshots,alias:ps"`

	ID          uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	Slug        string     `bun:"slug,notnull,unique" json:"slug"`
	Category    string     `bun:"category" json:"category,omitempty"`
	Author      string     `bun:"author" json:"author,omitempty"`
	PublishedAt string     `bun:"published_at" json:"published_at,omitempty"`
	Payload     posts.Post `bun:"payload,type:jsonb,notnull" json:"payload"`
	CreatedAt   time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

func recordFromPost(p posts.Post, id uuid.UUID, now time.Time) *PostRecord {
	return &PostRecord{
		ID:          id,
		Slug:        p.Slug,
		Category:    p.Category.Title,
		Author:      p.Author.Name,
		PublishedAt: p.PublishedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
		Payload:     p,
	}
}
