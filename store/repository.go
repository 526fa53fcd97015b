package store

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewPostRecordRepository creates a repository for snapshot records. The
// slug is the natural identifier.
func NewPostRecordRepository(db *bun.DB) repository.Repository[*PostRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*PostRecord]{
		NewRecord: func() *PostRecord { return &PostRecord{} },
		GetID: func(r *PostRecord) uuid.UUID {
			return r.ID
		},
		SetID: func(r *PostRecord, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(r *PostRecord) string {
			return r.Slug
		},
	})
}
