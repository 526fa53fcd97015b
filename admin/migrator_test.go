package admin

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/vibecircle/journal/contentapi"
	"github.com/vibecircle/journal/internal/logging"
)

func TestMigrateLegacyPatchesStringBodies(t *testing.T) {
	fake := &fakeContentService{
		posts: []map[string]any{
			{"_id": "post-1", "title": "Legacy", "slug": "legacy", "body": "Intro.\n\nOutro."},
			{"_id": "post-2", "title": "Structured", "slug": "structured", "body": []any{
				map[string]any{"_type": "block", "_key": "b0", "style": "normal", "children": []any{
					map[string]any{"_type": "span", "_key": "s0", "text": "Already done."},
				}},
			}},
			{"_id": "post-3", "title": "Empty", "slug": "empty", "body": ""},
			{"title": "No id", "slug": "no-id", "body": "Orphan."},
		},
	}

	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)
	reader, err := contentapi.New(contentapi.Config{BaseURL: srv.URL, Dataset: "production"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	writer, err := contentapi.NewWriter(contentapi.Config{BaseURL: srv.URL, Dataset: "production", Token: "write-token"})
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	migrator := NewMigrator(reader, writer, logging.NoOp())

	report, err := migrator.MigrateLegacy(context.Background(), true)
	if err != nil {
		t.Fatalf("MigrateLegacy dry run: %v", err)
	}
	if !report.DryRun || report.Migrated != 1 || report.Skipped != 3 {
		t.Errorf("dry run report = %+v", report)
	}
	if len(fake.patches) != 0 {
		t.Errorf("dry run wrote %d patches", len(fake.patches))
	}

	report, err = migrator.MigrateLegacy(context.Background(), false)
	if err != nil {
		t.Fatalf("MigrateLegacy: %v", err)
	}
	if report.Migrated != 1 {
		t.Errorf("report = %+v", report)
	}
	if len(fake.patches) != 1 {
		t.Fatalf("patches = %d, want 1", len(fake.patches))
	}
	patch := fake.patches[0]
	if patch["id"] != "post-1" {
		t.Errorf("patched id = %v", patch["id"])
	}
	set, _ := patch["set"].(map[string]any)
	body, _ := set["body"].([]any)
	if len(body) != 2 {
		t.Errorf("converted body blocks = %d, want 2", len(body))
	}
}

func TestImportDirectoryPublishesMarkdownFiles(t *testing.T) {
	dir := t.TempDir()
	valid := `---
title: Rooftop Gardens
author: Maya Chen
category: City Energy
---

Gardens are taking over rooftops.
`
	broken := `---
author: Nobody
---

A post with no title.
`
	if err := os.WriteFile(filepath.Join(dir, "01-gardens.md"), []byte(valid), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "02-broken.md"), []byte(broken), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	fake := &fakeContentService{}
	publisher, _ := newTestPublisher(t, fake)
	importer := NewImporter(publisher, logging.NoOp())

	report, err := importer.ImportDirectory(context.Background(), dir, false)
	if err != nil {
		t.Fatalf("ImportDirectory: %v", err)
	}
	if len(report.Imported) != 1 || report.Imported[0] != "01-gardens.md" {
		t.Errorf("imported = %v", report.Imported)
	}
	if len(report.Skipped) != 1 || report.Skipped[0] != "02-broken.md" {
		t.Errorf("skipped = %v", report.Skipped)
	}
	if len(report.Errors) != 1 {
		t.Errorf("errors = %v", report.Errors)
	}

	// author + category + post
	if len(fake.creates) != 3 {
		t.Fatalf("creates = %d, want 3", len(fake.creates))
	}
	post := fake.lastCreate(t)
	if post["_type"] != "post" || post["title"] != "Rooftop Gardens" {
		t.Errorf("post doc = %v", post)
	}
	if post["subtitle"] != "Rooftop Gardens" {
		t.Errorf("subtitle should default to title, got %v", post["subtitle"])
	}
}

func TestImportDirectoryDryRun(t *testing.T) {
	dir := t.TempDir()
	content := `---
title: Quiet Hours
author: Sam Ortiz
category: Vibe Theory
---

The city after midnight.
`
	if err := os.WriteFile(filepath.Join(dir, "quiet.md"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	fake := &fakeContentService{}
	publisher, _ := newTestPublisher(t, fake)
	importer := NewImporter(publisher, logging.NoOp())

	report, err := importer.ImportDirectory(context.Background(), dir, true)
	if err != nil {
		t.Fatalf("ImportDirectory: %v", err)
	}
	if len(report.Imported) != 1 {
		t.Errorf("report = %+v", report)
	}
	if len(fake.creates) != 0 {
		t.Errorf("dry run wrote %d documents", len(fake.creates))
	}
}
