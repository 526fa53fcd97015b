package schema_test

import (
	"errors"
	"testing"

	"github.com/vibecircle/journal/internal/schema"
)

func validPostDoc() map[string]any {
	return map[string]any{
		"_type":    "post",
		"title":    "Signal Over Noise",
		"subtitle": "A field guide",
		"slug":     map[string]any{"_type": "slug", "current": "signal-over-noise"},
		"author":   map[string]any{"_type": "reference", "_ref": "author-1"},
		"category": map[string]any{"_type": "reference", "_ref": "category-1"},
		"tags":     []string{"media", "trends"},
		"featured": false,
		"body": []map[string]any{
			{"_type": "block", "style": "normal"},
		},
		"thumbGradStart": "#FF6B00",
		"thumbGradEnd":   "#FF2D78",
	}
}

func TestValidatePostAccepts(t *testing.T) {
	if err := schema.ValidatePost(validPostDoc()); err != nil {
		t.Fatalf("valid post rejected: %v", err)
	}
}

func TestValidatePostRejectsMissingFields(t *testing.T) {
	doc := validPostDoc()
	delete(doc, "subtitle")
	err := schema.ValidatePost(doc)
	if !errors.Is(err, schema.ErrDocumentInvalid) {
		t.Fatalf("err = %v, want ErrDocumentInvalid", err)
	}
	var docErr *schema.DocumentError
	if !errors.As(err, &docErr) || docErr.Kind != "post" || len(docErr.Issues) == 0 {
		t.Fatalf("err = %v, want DocumentError with issues", err)
	}
}

func TestValidatePostRejectsBadSlugAndColor(t *testing.T) {
	doc := validPostDoc()
	doc["slug"] = map[string]any{"_type": "slug", "current": "Not A Slug"}
	if err := schema.ValidatePost(doc); !errors.Is(err, schema.ErrDocumentInvalid) {
		t.Errorf("bad slug accepted")
	}

	doc = validPostDoc()
	doc["thumbGradStart"] = "orange"
	if err := schema.ValidatePost(doc); !errors.Is(err, schema.ErrDocumentInvalid) {
		t.Errorf("bad color accepted")
	}
}

func TestValidateAuthor(t *testing.T) {
	doc := map[string]any{
		"_type":       "author",
		"name":        "Rae Calder",
		"slug":        map[string]any{"_type": "slug", "current": "rae-calder"},
		"role":        "Staff Writer",
		"avatarEmoji": "🛰️",
		"bio":         "",
	}
	if err := schema.ValidateAuthor(doc); err != nil {
		t.Fatalf("valid author rejected: %v", err)
	}
	delete(doc, "name")
	if err := schema.ValidateAuthor(doc); !errors.Is(err, schema.ErrDocumentInvalid) {
		t.Error("author without name accepted")
	}
}

func TestValidateCategory(t *testing.T) {
	doc := map[string]any{
		"_type": "category",
		"title": "Vibe Theory",
		"slug":  map[string]any{"_type": "slug", "current": "vibe-theory"},
		"color": "#00D4FF",
	}
	if err := schema.ValidateCategory(doc); err != nil {
		t.Fatalf("valid category rejected: %v", err)
	}
	doc["color"] = "blue"
	if err := schema.ValidateCategory(doc); !errors.Is(err, schema.ErrDocumentInvalid) {
		t.Error("category with bad color accepted")
	}
}
