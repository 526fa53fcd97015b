package richtext

import (
	"encoding/json"
	"strings"
)

// Decode parses a raw JSON array of typed content nodes as emitted by the
// content service. Unrecognized or malformed entries are skipped, never
// surfaced as errors; only syntactically invalid JSON fails.
func Decode(data []byte) (Nodes, error) {
	var items []any
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return FromAny(items), nil
}

// FromAny converts a decoded JSON array into a content tree. It is total:
// entries that do not match a known node shape are dropped.
func FromAny(items []any) Nodes {
	nodes := make(Nodes, 0, len(items))
	for _, item := range items {
		raw, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if node := fromMap(raw); node != nil {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

func fromMap(raw map[string]any) Node {
	switch stringField(raw, "_type") {
	case "block":
		return blockFromMap(raw)
	case "image":
		return imageFromMap(raw)
	case "callout":
		return calloutFromMap(raw)
	default:
		return nil
	}
}

func blockFromMap(raw map[string]any) *Block {
	block := &Block{
		Key:      stringField(raw, "_key"),
		Style:    NormalizeStyle(stringField(raw, "style")),
		ListItem: listKind(stringField(raw, "listItem")),
	}

	if defs, ok := raw["markDefs"].([]any); ok {
		for _, entry := range defs {
			def, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			block.MarkDefs = append(block.MarkDefs, MarkDef{
				Key:   stringField(def, "_key"),
				Type:  stringField(def, "_type"),
				Href:  stringField(def, "href"),
				Blank: boolField(def, "blank"),
			})
		}
	}

	children, _ := raw["children"].([]any)
	for _, entry := range children {
		child, ok := entry.(map[string]any)
		if !ok || stringField(child, "_type") != "span" {
			continue
		}
		span := Span{
			Key:  stringField(child, "_key"),
			Text: stringField(child, "text"),
		}
		if marks, ok := child["marks"].([]any); ok {
			for _, mark := range marks {
				if name, ok := mark.(string); ok && name != "" {
					span.Marks = append(span.Marks, name)
				}
			}
		}
		block.Spans = append(block.Spans, span)
	}

	return block
}

func imageFromMap(raw map[string]any) *Image {
	img := &Image{
		Key:     stringField(raw, "_key"),
		Alt:     stringField(raw, "alt"),
		Caption: stringField(raw, "caption"),
	}
	if asset, ok := raw["asset"].(map[string]any); ok {
		img.AssetURL = stringField(asset, "url")
	}
	if img.AssetURL == "" {
		img.AssetURL = stringField(raw, "assetUrl")
	}
	return img
}

func calloutFromMap(raw map[string]any) *Callout {
	return &Callout{
		Key:  stringField(raw, "_key"),
		Kind: strings.ToLower(stringField(raw, "type")),
		Text: stringField(raw, "text"),
	}
}

func listKind(value string) ListKind {
	switch ListKind(strings.TrimSpace(value)) {
	case ListBullet:
		return ListBullet
	case ListNumber:
		return ListNumber
	default:
		return ListNone
	}
}

func stringField(raw map[string]any, key string) string {
	value, _ := raw[key].(string)
	return value
}

func boolField(raw map[string]any, key string) bool {
	value, _ := raw[key].(bool)
	return value
}

// MarshalJSON emits the wire shape consumed by the content service. Derived
// ListGroup containers are flattened back to their items so encode/decode
// round-trips preserve node order.
func (n Nodes) MarshalJSON() ([]byte, error) {
	out := make([]map[string]any, 0, len(n))
	for _, node := range n {
		switch v := node.(type) {
		case *Block:
			out = append(out, blockToMap(v))
		case *Image:
			entry := map[string]any{
				"_type": "image",
				"_key":  v.Key,
				"asset": map[string]any{"url": v.AssetURL},
			}
			if v.Alt != "" {
				entry["alt"] = v.Alt
			}
			if v.Caption != "" {
				entry["caption"] = v.Caption
			}
			out = append(out, entry)
		case *Callout:
			out = append(out, map[string]any{
				"_type": "callout",
				"_key":  v.Key,
				"type":  v.Kind,
				"text":  v.Text,
			})
		case *ListGroup:
			for _, item := range v.Items {
				out = append(out, blockToMap(item))
			}
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the wire shape, skipping unknown node types.
func (n *Nodes) UnmarshalJSON(data []byte) error {
	nodes, err := Decode(data)
	if err != nil {
		return err
	}
	*n = nodes
	return nil
}

func blockToMap(b *Block) map[string]any {
	entry := map[string]any{
		"_type": "block",
		"_key":  b.Key,
		"style": string(b.Style),
	}
	if b.ListItem != ListNone {
		entry["listItem"] = string(b.ListItem)
	}
	if len(b.MarkDefs) > 0 {
		defs := make([]map[string]any, 0, len(b.MarkDefs))
		for _, def := range b.MarkDefs {
			encoded := map[string]any{
				"_key":  def.Key,
				"_type": def.Type,
			}
			if def.Href != "" {
				encoded["href"] = def.Href
			}
			if def.Blank {
				encoded["blank"] = true
			}
			defs = append(defs, encoded)
		}
		entry["markDefs"] = defs
	}
	children := make([]map[string]any, 0, len(b.Spans))
	for _, span := range b.Spans {
		child := map[string]any{
			"_type": "span",
			"_key":  span.Key,
			"text":  span.Text,
		}
		marks := span.Marks
		if marks == nil {
			marks = []string{}
		}
		child["marks"] = marks
		children = append(children, child)
	}
	entry["children"] = children
	return entry
}
