package store

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/uptrace/bun"

	"github.com/vibecircle/journal/internal/identity"
	"github.com/vibecircle/journal/posts"
)

const snapshotNamespace = "post_snapshot"

// BunStore persists normalized posts through bun with optional read
// caching. It implements posts.Snapshot.
type BunStore struct {
	repo         repository.Repository[*PostRecord]
	cacheService cache.CacheService
	cachePrefix  string
	now          func() time.Time
}

// BunStoreOption configures a BunStore.
type BunStoreOption func(*BunStore)

// WithNow overrides the clock used for record timestamps.
func WithNow(now func() time.Time) BunStoreOption {
	return func(s *BunStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewBunStore creates a snapshot store without caching.
func NewBunStore(db *bun.DB, opts ...BunStoreOption) *BunStore {
	return NewBunStoreWithCache(db, nil, nil, opts...)
}

// NewBunStoreWithCache creates a snapshot store with read caching.
func NewBunStoreWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer, opts ...BunStoreOption) *BunStore {
	base := NewPostRecordRepository(db)
	var svc cache.CacheService
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
	}
	prefix := ""
	if svc != nil {
		prefix = snapshotNamespace + cache.KeySeparator
	}
	s := &BunStore{
		repo:         base,
		cacheService: svc,
		cachePrefix:  prefix,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SavePosts upserts the given posts by slug. Posts without a slug are
// skipped.
func (s *BunStore) SavePosts(ctx context.Context, list []posts.Post) error {
	now := s.now()
	for _, p := range list {
		if p.Slug == "" {
			continue
		}
		record := recordFromPost(p, identity.PostUUID(p.Slug), now)
		existing, err := s.repo.GetByIdentifier(ctx, p.Slug)
		if err != nil {
			if !goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
				return fmt.Errorf("snapshot lookup %q: %w", p.Slug, err)
			}
			if _, err := s.repo.Create(ctx, record); err != nil {
				return fmt.Errorf("snapshot create %q: %w", p.Slug, err)
			}
			continue
		}
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		if _, err := s.repo.Update(ctx, record); err != nil {
			return fmt.Errorf("snapshot update %q: %w", p.Slug, err)
		}
	}
	return s.InvalidateCache(ctx)
}

// Posts returns every snapshot post, newest first.
func (s *BunStore) Posts(ctx context.Context) ([]posts.Post, error) {
	records, _, err := s.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.published_at DESC")
		}),
	)
	if err != nil {
		return nil, err
	}
	return payloads(records), nil
}

// PostBySlug returns the snapshot post with the given slug.
func (s *BunStore) PostBySlug(ctx context.Context, slug string) (*posts.Post, error) {
	record, err := s.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, &posts.NotFoundError{Kind: "post", Key: slug}
		}
		return nil, fmt.Errorf("snapshot get %q: %w", slug, err)
	}
	p := record.Payload
	return &p, nil
}

// PostsByCategory returns snapshot posts in the named category, newest
// first.
func (s *BunStore) PostsByCategory(ctx context.Context, category string) ([]posts.Post, error) {
	records, _, err := s.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.category = ?", category).
				OrderExpr("?TableAlias.published_at DESC")
		}),
	)
	if err != nil {
		return nil, err
	}
	return payloads(records), nil
}

// PostsByAuthor returns snapshot posts attributed to the named author,
// newest first.
func (s *BunStore) PostsByAuthor(ctx context.Context, name string) ([]posts.Post, error) {
	records, _, err := s.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.author = ?", name).
				OrderExpr("?TableAlias.published_at DESC")
		}),
	)
	if err != nil {
		return nil, err
	}
	return payloads(records), nil
}

// InvalidateCache drops cached snapshot reads.
func (s *BunStore) InvalidateCache(ctx context.Context) error {
	if s.cacheService == nil || s.cachePrefix == "" {
		return nil
	}
	return s.cacheService.DeleteByPrefix(ctx, s.cachePrefix)
}

func payloads(records []*PostRecord) []posts.Post {
	out := make([]posts.Post, 0, len(records))
	for _, r := range records {
		out = append(out, r.Payload)
	}
	return out
}
