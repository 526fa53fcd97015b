package posts_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/vibecircle/journal/contentapi"
	"github.com/vibecircle/journal/posts"
)

type fakeSource struct {
	posts   []contentapi.PostDocument
	authors []contentapi.AuthorDocument
	err     error
}

func (f *fakeSource) Posts(ctx context.Context) ([]contentapi.PostDocument, error) {
	return f.posts, f.err
}

func (f *fakeSource) PostBySlug(ctx context.Context, slug string) (*contentapi.PostDocument, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.posts {
		if f.posts[i].Slug == slug {
			return &f.posts[i], nil
		}
	}
	return nil, fmt.Errorf("%w: post %q", contentapi.ErrNotFound, slug)
}

func (f *fakeSource) PostsByCategory(ctx context.Context, category string) ([]contentapi.PostDocument, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []contentapi.PostDocument
	for _, doc := range f.posts {
		if doc.Category == category || doc.Cat == category {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (f *fakeSource) PostsByAuthor(ctx context.Context, name string) ([]contentapi.PostDocument, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []contentapi.PostDocument
	for _, doc := range f.posts {
		if doc.AuthorName == name || doc.Author == name {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (f *fakeSource) AuthorByName(ctx context.Context, name string) (*contentapi.AuthorDocument, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.authors {
		if f.authors[i].Name == name {
			return &f.authors[i], nil
		}
	}
	return nil, fmt.Errorf("%w: author %q", contentapi.ErrNotFound, name)
}

func (f *fakeSource) Authors(ctx context.Context) ([]contentapi.AuthorDocument, error) {
	return f.authors, f.err
}

type fakeSnapshot struct {
	saved []posts.Post
}

func (f *fakeSnapshot) SavePosts(ctx context.Context, list []posts.Post) error {
	f.saved = append([]posts.Post(nil), list...)
	return nil
}

func (f *fakeSnapshot) Posts(ctx context.Context) ([]posts.Post, error) {
	return f.saved, nil
}

func (f *fakeSnapshot) PostBySlug(ctx context.Context, slug string) (*posts.Post, error) {
	for i := range f.saved {
		if f.saved[i].Slug == slug {
			return &f.saved[i], nil
		}
	}
	return nil, &posts.NotFoundError{Kind: "post", Key: slug}
}

func (f *fakeSnapshot) PostsByCategory(ctx context.Context, category string) ([]posts.Post, error) {
	var out []posts.Post
	for _, p := range f.saved {
		if p.Category.Title == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeSnapshot) PostsByAuthor(ctx context.Context, name string) ([]posts.Post, error) {
	var out []posts.Post
	for _, p := range f.saved {
		if p.Author.Name == name {
			out = append(out, p)
		}
	}
	return out, nil
}

func TestServiceListNormalizesAndWarmsSnapshot(t *testing.T) {
	source := &fakeSource{posts: []contentapi.PostDocument{structuredDoc(), legacyDoc()}}
	snapshot := &fakeSnapshot{}
	svc := posts.NewService(source, posts.WithSnapshot(snapshot))

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d posts, want 2", len(list))
	}
	if list[0].ReadTime == "" || list[1].Author.Role != posts.DefaultRole {
		t.Errorf("posts not normalized: %+v", list)
	}
	if len(snapshot.saved) != 2 {
		t.Errorf("snapshot holds %d posts, want 2", len(snapshot.saved))
	}
}

func TestServiceFallsBackWhenSourceUnavailable(t *testing.T) {
	ctx := context.Background()
	healthy := &fakeSource{posts: []contentapi.PostDocument{structuredDoc()}}
	snapshot := &fakeSnapshot{}
	if _, err := posts.NewService(healthy, posts.WithSnapshot(snapshot)).List(ctx); err != nil {
		t.Fatalf("warmup: %v", err)
	}

	down := &fakeSource{err: fmt.Errorf("%w: connection refused", contentapi.ErrUnavailable)}
	svc := posts.NewService(down, posts.WithSnapshot(snapshot))

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List with snapshot: %v", err)
	}
	if len(list) != 1 || list[0].Slug != "signal-over-noise" {
		t.Fatalf("snapshot fallback returned %+v", list)
	}

	got, err := svc.GetBySlug(ctx, "signal-over-noise")
	if err != nil {
		t.Fatalf("GetBySlug with snapshot: %v", err)
	}
	if got.Title != "Signal Over Noise" {
		t.Errorf("title = %q", got.Title)
	}

	authors, err := svc.Authors(ctx)
	if err != nil {
		t.Fatalf("Authors with snapshot: %v", err)
	}
	if len(authors) != 1 || authors[0].Name != "Rae Calder" {
		t.Errorf("derived authors = %+v", authors)
	}
}

func TestServiceUnavailableWithoutSnapshot(t *testing.T) {
	down := &fakeSource{err: fmt.Errorf("%w: connection refused", contentapi.ErrUnavailable)}
	svc := posts.NewService(down)

	_, err := svc.List(context.Background())
	if !errors.Is(err, posts.ErrSourceUnavailable) {
		t.Fatalf("err = %v, want ErrSourceUnavailable", err)
	}
}

func TestServiceNotFoundMapping(t *testing.T) {
	source := &fakeSource{posts: []contentapi.PostDocument{structuredDoc()}}
	svc := posts.NewService(source)

	_, err := svc.GetBySlug(context.Background(), "nope")
	if !errors.Is(err, posts.ErrPostNotFound) {
		t.Fatalf("err = %v, want ErrPostNotFound", err)
	}
	var nf *posts.NotFoundError
	if !errors.As(err, &nf) || nf.Key != "nope" {
		t.Fatalf("err = %v, want NotFoundError carrying the slug", err)
	}

	_, err = svc.GetAuthor(context.Background(), "Nobody")
	if !errors.Is(err, posts.ErrAuthorNotFound) {
		t.Fatalf("err = %v, want ErrAuthorNotFound", err)
	}
}

func TestServiceListByCategoryAndAuthor(t *testing.T) {
	source := &fakeSource{posts: []contentapi.PostDocument{structuredDoc(), legacyDoc()}}
	svc := posts.NewService(source)
	ctx := context.Background()

	byCat, err := svc.ListByCategory(ctx, "Vibe Theory")
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if len(byCat) != 1 || byCat[0].Slug != "signal-over-noise" {
		t.Errorf("byCat = %+v", byCat)
	}

	byAuthor, err := svc.ListByAuthor(ctx, "Anonymous Friend")
	if err != nil {
		t.Fatalf("ListByAuthor: %v", err)
	}
	if len(byAuthor) != 1 || byAuthor[0].Slug != "old-dispatch" {
		t.Errorf("byAuthor = %+v", byAuthor)
	}
}
