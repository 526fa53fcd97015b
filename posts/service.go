package posts

import (
	"context"
	"errors"
	"fmt"

	"github.com/vibecircle/journal/contentapi"
	"github.com/vibecircle/journal/internal/logging"
	"github.com/vibecircle/journal/pkg/interfaces"
)

// Source reads raw documents from the upstream content service.
type Source interface {
	Posts(ctx context.Context) ([]contentapi.PostDocument, error)
	PostBySlug(ctx context.Context, slug string) (*contentapi.PostDocument, error)
	PostsByCategory(ctx context.Context, category string) ([]contentapi.PostDocument, error)
	PostsByAuthor(ctx context.Context, name string) ([]contentapi.PostDocument, error)
	AuthorByName(ctx context.Context, name string) (*contentapi.AuthorDocument, error)
	Authors(ctx context.Context) ([]contentapi.AuthorDocument, error)
}

// Snapshot is a local store of normalized posts used when the upstream
// source is unreachable. Saves are best effort.
type Snapshot interface {
	SavePosts(ctx context.Context, list []Post) error
	Posts(ctx context.Context) ([]Post, error)
	PostBySlug(ctx context.Context, slug string) (*Post, error)
	PostsByCategory(ctx context.Context, category string) ([]Post, error)
	PostsByAuthor(ctx context.Context, name string) ([]Post, error)
}

// Service answers read queries with canonical view models. It normalizes
// upstream documents, keeps the snapshot warm, and falls back to it when
// the upstream is unavailable.
type Service struct {
	source   Source
	snapshot Snapshot
	logger   interfaces.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithSnapshot attaches a fallback snapshot store.
func WithSnapshot(s Snapshot) ServiceOption {
	return func(svc *Service) {
		svc.snapshot = s
	}
}

// WithServiceLogger attaches a logger.
func WithServiceLogger(logger interfaces.Logger) ServiceOption {
	return func(svc *Service) {
		if logger != nil {
			svc.logger = logger
		}
	}
}

// NewService builds a read service over the given source.
func NewService(source Source, opts ...ServiceOption) *Service {
	svc := &Service{
		source: source,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// List returns every post, newest first.
func (s *Service) List(ctx context.Context) ([]Post, error) {
	docs, err := s.source.Posts(ctx)
	if err != nil {
		return s.fallbackList(ctx, err, func(ctx context.Context) ([]Post, error) {
			return s.snapshot.Posts(ctx)
		})
	}
	return s.normalizeAndRemember(ctx, docs), nil
}

// GetBySlug returns the post with the given slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	doc, err := s.source.PostBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, contentapi.ErrNotFound) {
			return nil, &NotFoundError{Kind: "post", Key: slug}
		}
		if s.snapshot != nil && errors.Is(err, contentapi.ErrUnavailable) {
			s.logger.Warn("content source unavailable, reading snapshot", "slug", slug, "error", err)
			cached, cacheErr := s.snapshot.PostBySlug(ctx, slug)
			if cacheErr != nil {
				return nil, cacheErr
			}
			return cached, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	post := Normalize(*doc)
	return &post, nil
}

// ListByCategory returns posts in the named category, newest first.
func (s *Service) ListByCategory(ctx context.Context, category string) ([]Post, error) {
	docs, err := s.source.PostsByCategory(ctx, category)
	if err != nil {
		return s.fallbackList(ctx, err, func(ctx context.Context) ([]Post, error) {
			return s.snapshot.PostsByCategory(ctx, category)
		})
	}
	return normalizeAll(docs), nil
}

// ListByAuthor returns posts attributed to the named author, newest first.
func (s *Service) ListByAuthor(ctx context.Context, name string) ([]Post, error) {
	docs, err := s.source.PostsByAuthor(ctx, name)
	if err != nil {
		return s.fallbackList(ctx, err, func(ctx context.Context) ([]Post, error) {
			return s.snapshot.PostsByAuthor(ctx, name)
		})
	}
	return normalizeAll(docs), nil
}

// GetAuthor returns the author with the exact name.
func (s *Service) GetAuthor(ctx context.Context, name string) (*Author, error) {
	doc, err := s.source.AuthorByName(ctx, name)
	if err != nil {
		if errors.Is(err, contentapi.ErrNotFound) {
			return nil, &NotFoundError{Kind: "author", Key: name}
		}
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	author := AuthorFromDocument(*doc)
	return &author, nil
}

// Authors returns all authors, ordered by name upstream. When the source
// is unavailable the byline authors are derived from snapshot posts.
func (s *Service) Authors(ctx context.Context) ([]Author, error) {
	docs, err := s.source.Authors(ctx)
	if err != nil {
		if s.snapshot != nil && errors.Is(err, contentapi.ErrUnavailable) {
			s.logger.Warn("content source unavailable, deriving authors from snapshot", "error", err)
			cached, cacheErr := s.snapshot.Posts(ctx)
			if cacheErr != nil {
				return nil, cacheErr
			}
			return AuthorsFromPosts(cached), nil
		}
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	authors := make([]Author, 0, len(docs))
	for _, doc := range docs {
		authors = append(authors, AuthorFromDocument(doc))
	}
	return authors, nil
}

func (s *Service) fallbackList(ctx context.Context, cause error, read func(context.Context) ([]Post, error)) ([]Post, error) {
	if s.snapshot != nil && errors.Is(cause, contentapi.ErrUnavailable) {
		s.logger.Warn("content source unavailable, reading snapshot", "error", cause)
		return read(ctx)
	}
	return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, cause)
}

func (s *Service) normalizeAndRemember(ctx context.Context, docs []contentapi.PostDocument) []Post {
	list := normalizeAll(docs)
	if s.snapshot != nil {
		if err := s.snapshot.SavePosts(ctx, list); err != nil {
			s.logger.Warn("snapshot save failed", "error", err)
		}
	}
	return list
}

func normalizeAll(docs []contentapi.PostDocument) []Post {
	list := make([]Post, 0, len(docs))
	for _, doc := range docs {
		list = append(list, Normalize(doc))
	}
	return list
}
