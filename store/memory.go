package store

import (
	"context"
	"sort"
	"sync"

	"github.com/vibecircle/journal/posts"
)

// MemoryStore is an in-process posts.Snapshot used in tests and when no
// database is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	bySlug map[string]posts.Post
}

// NewMemoryStore creates an empty in-memory snapshot.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		bySlug: make(map[string]posts.Post),
	}
}

// SavePosts upserts the given posts by slug. Posts without a slug are
// skipped.
func (m *MemoryStore) SavePosts(_ context.Context, list []posts.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range list {
		if p.Slug == "" {
			continue
		}
		m.bySlug[p.Slug] = p
	}
	return nil
}

// Posts returns every stored post, newest first.
func (m *MemoryStore) Posts(_ context.Context) ([]posts.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sorted(func(posts.Post) bool { return true }), nil
}

// PostBySlug returns the stored post with the given slug.
func (m *MemoryStore) PostBySlug(_ context.Context, slug string) (*posts.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.bySlug[slug]
	if !ok {
		return nil, &posts.NotFoundError{Kind: "post", Key: slug}
	}
	return &p, nil
}

// PostsByCategory returns stored posts in the named category, newest
// first.
func (m *MemoryStore) PostsByCategory(_ context.Context, category string) ([]posts.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sorted(func(p posts.Post) bool { return p.Category.Title == category }), nil
}

// PostsByAuthor returns stored posts attributed to the named author,
// newest first.
func (m *MemoryStore) PostsByAuthor(_ context.Context, name string) ([]posts.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sorted(func(p posts.Post) bool { return p.Author.Name == name }), nil
}

// Len reports the number of stored posts.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.bySlug)
}

func (m *MemoryStore) sorted(keep func(posts.Post) bool) []posts.Post {
	out := make([]posts.Post, 0, len(m.bySlug))
	for _, p := range m.bySlug {
		if keep(p) {
			out = append(out, p)
		}
	}
	// ISO timestamps order lexicographically; ties break on slug for
	// deterministic output.
	sort.Slice(out, func(i, j int) bool {
		if out[i].PublishedAt != out[j].PublishedAt {
			return out[i].PublishedAt > out[j].PublishedAt
		}
		return out[i].Slug < out[j].Slug
	})
	return out
}
