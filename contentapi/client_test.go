package contentapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vibecircle/journal/contentapi"
)

func newTestClient(t *testing.T, handler http.Handler) (*contentapi.Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := contentapi.New(contentapi.Config{
		BaseURL: server.URL,
		Dataset: "production",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client, server
}

func TestClientPostsDecodesEnvelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2024-01-01/data/query/production" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("query") == "" {
			t.Error("expected query parameter")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":[{"_id":"p1","title":"One","slug":"one","body":"plain text"},{"_id":"p2","title":"Two","slug":"two","body":[{"_type":"block","style":"h2","children":[{"_type":"span","text":"Heading"}]}]}]}`))
	}))

	docs, err := client.Posts(context.Background())
	if err != nil {
		t.Fatalf("Posts: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d docs, want 2", len(docs))
	}
	if docs[0].Body.IsStructured() || docs[0].Body.Legacy != "plain text" {
		t.Errorf("doc 0 body = %+v, want legacy string", docs[0].Body)
	}
	if !docs[1].Body.IsStructured() {
		t.Fatalf("doc 1 body = %+v, want structured", docs[1].Body)
	}
}

func TestClientPostBySlugSendsJSONParam(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("$slug"); got != `"city-energy"` {
			t.Errorf("$slug = %q, want JSON-quoted value", got)
		}
		w.Write([]byte(`{"result":{"_id":"p1","title":"City Energy","slug":"city-energy","body":null}}`))
	}))

	doc, err := client.PostBySlug(context.Background(), "city-energy")
	if err != nil {
		t.Fatalf("PostBySlug: %v", err)
	}
	if doc.Title != "City Energy" {
		t.Errorf("title = %q", doc.Title)
	}
	if !doc.Body.IsEmpty() {
		t.Errorf("body = %+v, want empty for null", doc.Body)
	}
}

func TestClientPostBySlugNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":null}`))
	}))

	_, err := client.PostBySlug(context.Background(), "missing")
	if !errors.Is(err, contentapi.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestClientServerErrorIsUnavailable(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))

	_, err := client.Posts(context.Background())
	if !errors.Is(err, contentapi.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestClientConnectionErrorIsUnavailable(t *testing.T) {
	client, server := newTestClient(t, http.NotFoundHandler())
	server.Close()

	_, err := client.Posts(context.Background())
	if !errors.Is(err, contentapi.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestClientBadRequestIsPlainError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad query", http.StatusBadRequest)
	}))

	_, err := client.Posts(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, contentapi.ErrUnavailable) || errors.Is(err, contentapi.ErrNotFound) {
		t.Fatalf("err = %v, want neither sentinel", err)
	}
}

func TestClientSendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sekret" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(`{"result":[]}`))
	}))
	defer server.Close()

	client, err := contentapi.New(contentapi.Config{BaseURL: server.URL, Dataset: "production", Token: "sekret"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := client.Authors(context.Background()); err != nil {
		t.Fatalf("Authors: %v", err)
	}
}

func TestNewRequiresProjectOrBaseURL(t *testing.T) {
	if _, err := contentapi.New(contentapi.Config{Dataset: "production"}); err == nil {
		t.Fatal("expected config error without project id or base url")
	}
}

func TestBodyJSONRoundTrip(t *testing.T) {
	for _, raw := range []string{
		`"legacy body text"`,
		`[{"_type":"block","_key":"k1","style":"normal","markDefs":[],"children":[{"_type":"span","_key":"s1","text":"hi","marks":[]}]}]`,
	} {
		var body contentapi.Body
		if err := json.Unmarshal([]byte(raw), &body); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		out, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var a, b any
		if err := json.Unmarshal([]byte(raw), &a); err != nil {
			t.Fatal(err)
		}
		if err := json.Unmarshal(out, &b); err != nil {
			t.Fatal(err)
		}
		aj, _ := json.Marshal(a)
		bj, _ := json.Marshal(b)
		if string(aj) != string(bj) {
			t.Errorf("round trip changed body:\n in: %s\nout: %s", aj, bj)
		}
	}
}
