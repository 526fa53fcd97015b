package richtext_test

import (
	"encoding/json"
	"testing"

	"github.com/vibecircle/journal/richtext"
)

const sampleBody = `[
  {"_type":"block","_key":"b1","style":"normal","markDefs":[{"_key":"m1","_type":"link","href":"https://vibecircle.app","blank":true}],
   "children":[{"_type":"span","_key":"s1","text":"visit ","marks":[]},{"_type":"span","_key":"s2","text":"the app","marks":["m1","strong"]}]},
  {"_type":"block","_key":"b2","style":"h2","children":[{"_type":"span","_key":"s3","text":"Heading","marks":[]}]},
  {"_type":"image","_key":"i1","asset":{"url":"https://cdn.example.com/pic.png"},"alt":"pic","caption":"a caption"},
  {"_type":"callout","_key":"c1","type":"TIP","text":"stay hydrated"},
  {"_type":"mystery","_key":"x1","payload":"ignored"},
  "not even an object"
]`

func TestDecodeSkipsUnknownNodes(t *testing.T) {
	nodes, err := richtext.Decode([]byte(sampleBody))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(nodes) != 4 {
		t.Fatalf("expected 4 nodes got %d", len(nodes))
	}

	block := nodes[0].(*richtext.Block)
	if def, ok := block.MarkDef("m1"); !ok || def.Href != "https://vibecircle.app" || !def.Blank {
		t.Fatalf("unexpected mark def %#v", def)
	}
	if len(block.Spans) != 2 || block.Spans[1].Marks[0] != "m1" {
		t.Fatalf("unexpected spans %#v", block.Spans)
	}

	if heading := nodes[1].(*richtext.Block); heading.Style != richtext.StyleH2 {
		t.Fatalf("expected h2 got %q", heading.Style)
	}

	img := nodes[2].(*richtext.Image)
	if img.AssetURL != "https://cdn.example.com/pic.png" || img.Caption != "a caption" {
		t.Fatalf("unexpected image %#v", img)
	}

	callout := nodes[3].(*richtext.Callout)
	if callout.Kind != "tip" || callout.Text != "stay hydrated" {
		t.Fatalf("unexpected callout %#v", callout)
	}
}

func TestDecodeUnknownStyleFallsBackToNormal(t *testing.T) {
	nodes, err := richtext.Decode([]byte(`[{"_type":"block","_key":"b1","style":"h7","children":[{"_type":"span","_key":"s1","text":"x"}]}]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if block := nodes[0].(*richtext.Block); block.Style != richtext.StyleNormal {
		t.Fatalf("expected fallback to normal got %q", block.Style)
	}
}

func TestNodesJSONRoundTripPreservesOrder(t *testing.T) {
	original, err := richtext.Decode([]byte(sampleBody))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	encoded, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded richtext.Nodes
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(decoded) != len(original) {
		t.Fatalf("expected %d nodes got %d", len(original), len(decoded))
	}
	keys := func(nodes richtext.Nodes) []string {
		var out []string
		for _, node := range nodes {
			switch v := node.(type) {
			case *richtext.Block:
				out = append(out, v.Key)
			case *richtext.Image:
				out = append(out, v.Key)
			case *richtext.Callout:
				out = append(out, v.Key)
			}
		}
		return out
	}
	a, b := keys(original), keys(decoded)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("node order changed at %d: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestMarshalFlattensListGroups(t *testing.T) {
	nodes := richtext.Nodes{
		&richtext.ListGroup{
			Kind: richtext.ListBullet,
			Items: []*richtext.Block{
				listItem("l1", "one", richtext.ListBullet),
				listItem("l2", "two", richtext.ListBullet),
			},
		},
	}

	encoded, err := json.Marshal(nodes)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded richtext.Nodes
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected flattened items got %d nodes", len(decoded))
	}
	for i, key := range []string{"l1", "l2"} {
		block := decoded[i].(*richtext.Block)
		if block.Key != key || block.ListItem != richtext.ListBullet {
			t.Fatalf("item %d: unexpected block %#v", i, block)
		}
	}
}
