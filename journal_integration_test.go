package journal_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	journal "github.com/vibecircle/journal"
)

// upstream fakes just enough of the content service for the module to run
// end to end: the query endpoint serves a fixed post list and the mutate
// endpoint acknowledges every mutation.
func upstream(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.Contains(r.URL.Path, "/data/query/"):
			query := r.URL.Query().Get("query")
			var result any
			switch {
			case strings.Contains(query, `_type=="author"`), strings.Contains(query, `_type=="category"`):
				result = nil
			case strings.Contains(query, "slug.current == $slug"):
				result = fixturePost()
			case strings.Contains(query, `_type == "author"`):
				result = []any{}
			case strings.Contains(query, `_type == "post"`):
				result = []any{fixturePost()}
			default:
				result = []any{}
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"result": result})
		case strings.Contains(r.URL.Path, "/data/mutate/"):
			_ = json.NewEncoder(w).Encode(map[string]any{
				"results": []map[string]any{{"id": "doc-1"}},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func fixturePost() map[string]any {
	return map[string]any{
		"_id":         "post-1",
		"title":       "Night Markets Are Back",
		"slug":        "night-markets-are-back",
		"sub":         "Street food and neon",
		"body":        "First paragraph.\n\nSecond paragraph.",
		"publishedAt": "2025-03-10T08:00:00Z",
		"category":    "City Energy",
		"authorName":  "Maya Chen",
	}
}

func newModule(t *testing.T) *journal.Module {
	t.Helper()
	srv := upstream(t)

	cfg := journal.DefaultConfig()
	cfg.Content.BaseURL = srv.URL
	cfg.Content.Token = "sk-token"
	cfg.Store.Driver = "memory"
	cfg.Admin.Enabled = true
	cfg.Admin.Secret = "hunter2"
	cfg.Logging.Provider = "noop"

	m, err := journal.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestModuleServesNormalizedPosts(t *testing.T) {
	m := newModule(t)
	handler, err := m.Handler()
	if err != nil {
		t.Fatalf("Handler: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var listing struct {
		Posts []journal.Post `json:"posts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listing); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(listing.Posts) != 1 {
		t.Fatalf("posts = %d, want 1", len(listing.Posts))
	}
	post := listing.Posts[0]
	if post.Slug != "night-markets-are-back" {
		t.Errorf("slug = %q", post.Slug)
	}
	if post.Author.Name != "Maya Chen" || post.Author.Role != "Contributor" {
		t.Errorf("author = %+v", post.Author)
	}
	if post.Published != "2025-03-10" {
		t.Errorf("published = %q", post.Published)
	}
	if post.ReadTime == "" {
		t.Error("read time not derived")
	}
}

func TestModuleWiresAdminSurface(t *testing.T) {
	m := newModule(t)

	if m.Publisher() == nil {
		t.Error("publisher not wired")
	}
	if m.Migrator() == nil {
		t.Error("migrator not wired")
	}
	if m.Importer() == nil {
		t.Error("importer not wired")
	}

	handler, err := m.Handler()
	if err != nil {
		t.Fatalf("Handler: %v", err)
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/posts", strings.NewReader(""))
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated admin status = %d, want 401", rec.Code)
	}
}

func TestModuleBuildsSiteLinks(t *testing.T) {
	m := newModule(t)

	url, err := m.Links().Post("night-markets-are-back")
	if err != nil {
		t.Fatalf("Post link: %v", err)
	}
	if url != "http://localhost:8080/post/night-markets-are-back" {
		t.Errorf("url = %q", url)
	}
}
