package richtext_test

import (
	"strings"
	"testing"

	"github.com/vibecircle/journal/richtext"
)

func TestParseLegacySplitsHeadingsAndParagraphs(t *testing.T) {
	body := "Intro **Nut Graf** lives here.\n\n**Section One**\n\nBody text."

	nodes := richtext.ParseLegacy(body)
	if len(nodes) != 3 {
		t.Fatalf("expected 3 blocks got %d", len(nodes))
	}

	first, ok := nodes[0].(*richtext.Block)
	if !ok || first.Style != richtext.StyleNormal {
		t.Fatalf("expected first block to be a normal block, got %#v", nodes[0])
	}
	if len(first.Spans) != 3 {
		t.Fatalf("expected 3 spans got %d", len(first.Spans))
	}
	if first.Spans[0].Text != "Intro " || len(first.Spans[0].Marks) != 0 {
		t.Fatalf("unexpected leading span %#v", first.Spans[0])
	}
	if first.Spans[1].Text != "Nut Graf" || len(first.Spans[1].Marks) != 1 || first.Spans[1].Marks[0] != richtext.MarkStrong {
		t.Fatalf("unexpected strong span %#v", first.Spans[1])
	}
	if first.Spans[2].Text != " lives here." {
		t.Fatalf("unexpected trailing span %#v", first.Spans[2])
	}

	heading, ok := nodes[1].(*richtext.Block)
	if !ok || heading.Style != richtext.StyleH3 {
		t.Fatalf("expected h3 heading, got %#v", nodes[1])
	}
	if heading.Text() != "Section One" {
		t.Fatalf("expected heading text stripped of markers, got %q", heading.Text())
	}

	last, ok := nodes[2].(*richtext.Block)
	if !ok || last.Style != richtext.StyleNormal || last.Text() != "Body text." {
		t.Fatalf("unexpected final block %#v", nodes[2])
	}
}

func TestParseLegacyRoundTripsBoldSpans(t *testing.T) {
	paragraphs := []string{
		"plain paragraph without emphasis",
		"**leading** then text",
		"text then **trailing**",
		"**a** mix of **several** bold **runs**",
		"adjacent **one****two** spans",
	}

	for _, para := range paragraphs {
		nodes := richtext.ParseLegacy(para)
		if len(nodes) != 1 {
			t.Fatalf("paragraph %q: expected single block got %d", para, len(nodes))
		}
		block := nodes[0].(*richtext.Block)
		want := strings.ReplaceAll(para, "**", "")
		if got := block.Text(); got != want {
			t.Fatalf("paragraph %q: round trip got %q want %q", para, got, want)
		}
	}
}

func TestParseLegacyHeadingRequiresWrappedPair(t *testing.T) {
	// "****" is too short to be a heading and must stay a normal block.
	nodes := richtext.ParseLegacy("****")
	if len(nodes) != 1 {
		t.Fatalf("expected 1 block got %d", len(nodes))
	}
	if block := nodes[0].(*richtext.Block); block.Style != richtext.StyleNormal {
		t.Fatalf("expected normal style got %q", block.Style)
	}
}

func TestParseLegacyDropsEmptyParagraphs(t *testing.T) {
	nodes := richtext.ParseLegacy("first\n\n\n\n   \n\nsecond")
	if len(nodes) != 2 {
		t.Fatalf("expected 2 blocks got %d", len(nodes))
	}
}

func TestParseLegacyEmptyBody(t *testing.T) {
	if nodes := richtext.ParseLegacy("   \n \n"); len(nodes) != 0 {
		t.Fatalf("expected no blocks got %d", len(nodes))
	}
}

func TestParseLegacyKeysAreStable(t *testing.T) {
	body := "one\n\ntwo"
	first := richtext.ParseLegacy(body)
	second := richtext.ParseLegacy(body)
	for i := range first {
		a := first[i].(*richtext.Block)
		b := second[i].(*richtext.Block)
		if a.Key == "" || a.Key != b.Key {
			t.Fatalf("block %d: expected stable non-empty key, got %q and %q", i, a.Key, b.Key)
		}
	}
}
