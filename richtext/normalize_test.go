package richtext_test

import (
	"testing"

	"github.com/vibecircle/journal/richtext"
)

func listItem(key, text string, kind richtext.ListKind) *richtext.Block {
	return &richtext.Block{
		Key:      key,
		Style:    richtext.StyleNormal,
		ListItem: kind,
		Spans:    []richtext.Span{{Key: key + "-s0", Text: text}},
	}
}

func paragraph(key, text string) *richtext.Block {
	return &richtext.Block{
		Key:   key,
		Style: richtext.StyleNormal,
		Spans: []richtext.Span{{Key: key + "-s0", Text: text}},
	}
}

func TestNormalizeGroupsAdjacentListItems(t *testing.T) {
	nodes := richtext.Nodes{
		paragraph("p1", "intro"),
		listItem("l1", "first", richtext.ListBullet),
		listItem("l2", "second", richtext.ListBullet),
		listItem("l3", "third", richtext.ListBullet),
		paragraph("p2", "outro"),
	}

	out := richtext.Normalize(nodes)
	if len(out) != 3 {
		t.Fatalf("expected 3 nodes got %d", len(out))
	}

	group, ok := out[1].(*richtext.ListGroup)
	if !ok {
		t.Fatalf("expected list group got %#v", out[1])
	}
	if group.Kind != richtext.ListBullet {
		t.Fatalf("expected bullet group got %q", group.Kind)
	}
	if len(group.Items) != 3 {
		t.Fatalf("expected 3 items got %d", len(group.Items))
	}
	for i, key := range []string{"l1", "l2", "l3"} {
		if group.Items[i].Key != key {
			t.Fatalf("item %d: expected key %q got %q", i, key, group.Items[i].Key)
		}
	}
}

func TestNormalizeKindChangeClosesGroup(t *testing.T) {
	nodes := richtext.Nodes{
		listItem("b1", "bullet", richtext.ListBullet),
		listItem("n1", "number", richtext.ListNumber),
		listItem("n2", "number", richtext.ListNumber),
	}

	out := richtext.Normalize(nodes)
	if len(out) != 2 {
		t.Fatalf("expected 2 groups got %d", len(out))
	}

	first := out[0].(*richtext.ListGroup)
	if first.Kind != richtext.ListBullet || len(first.Items) != 1 {
		t.Fatalf("unexpected first group %#v", first)
	}
	second := out[1].(*richtext.ListGroup)
	if second.Kind != richtext.ListNumber || len(second.Items) != 2 {
		t.Fatalf("unexpected second group %#v", second)
	}
}

func TestNormalizeInterruptionClosesGroup(t *testing.T) {
	nodes := richtext.Nodes{
		listItem("l1", "one", richtext.ListBullet),
		&richtext.Image{Key: "img", AssetURL: "https://cdn.example.com/a.png"},
		listItem("l2", "two", richtext.ListBullet),
	}

	out := richtext.Normalize(nodes)
	if len(out) != 3 {
		t.Fatalf("expected 3 nodes got %d", len(out))
	}
	if _, ok := out[0].(*richtext.ListGroup); !ok {
		t.Fatalf("expected leading group got %#v", out[0])
	}
	if _, ok := out[1].(*richtext.Image); !ok {
		t.Fatalf("expected image passthrough got %#v", out[1])
	}
	if group := out[2].(*richtext.ListGroup); len(group.Items) != 1 || group.Items[0].Key != "l2" {
		t.Fatalf("expected trailing single-item group got %#v", group)
	}
}

func TestNormalizeFlushesTrailingGroup(t *testing.T) {
	nodes := richtext.Nodes{
		paragraph("p1", "text"),
		listItem("l1", "one", richtext.ListNumber),
		listItem("l2", "two", richtext.ListNumber),
	}

	out := richtext.Normalize(nodes)
	if len(out) != 2 {
		t.Fatalf("expected 2 nodes got %d", len(out))
	}
	group, ok := out[1].(*richtext.ListGroup)
	if !ok || group.Kind != richtext.ListNumber || len(group.Items) != 2 {
		t.Fatalf("expected trailing number group got %#v", out[1])
	}
}

func TestNormalizePassthroughWithoutLists(t *testing.T) {
	nodes := richtext.Nodes{
		paragraph("p1", "a"),
		&richtext.Callout{Key: "c1", Kind: "info", Text: "note"},
		paragraph("p2", "b"),
	}

	out := richtext.Normalize(nodes)
	if len(out) != 3 {
		t.Fatalf("expected 3 nodes got %d", len(out))
	}
	for i := range nodes {
		if out[i] != nodes[i] {
			t.Fatalf("node %d: expected passthrough", i)
		}
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	if out := richtext.Normalize(nil); len(out) != 0 {
		t.Fatalf("expected empty output got %d nodes", len(out))
	}
}
