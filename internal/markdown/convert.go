package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/vibecircle/journal/internal/identity"
	"github.com/vibecircle/journal/richtext"
)

// Convert parses a markdown body and rewrites it as rich content nodes.
// Markdown constructs without a node equivalent degrade to plain
// paragraphs; nothing is dropped silently except decorative rules.
func Convert(source []byte) (richtext.Nodes, error) {
	parser := goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser()
	root := parser.Parse(text.NewReader(source))

	c := &converter{src: source}
	for child := root.FirstChild(); child != nil; child = child.NextSibling() {
		c.blockNode(child, richtext.ListNone)
	}
	return c.nodes, nil
}

type converter struct {
	src    []byte
	nodes  richtext.Nodes
	seq    int
	images []richtext.Image
}

func (c *converter) nextKey() string {
	key := identity.NodeKey(string(c.src), c.seq)
	c.seq++
	return key
}

func (c *converter) blockNode(n ast.Node, list richtext.ListKind) {
	switch t := n.(type) {
	case *ast.Heading:
		c.appendBlock(headingStyle(t.Level), list, t)
	case *ast.Paragraph, *ast.TextBlock:
		c.appendBlock(richtext.StyleNormal, list, n)
	case *ast.Blockquote:
		c.appendQuote(t)
	case *ast.List:
		kind := richtext.ListBullet
		if t.IsOrdered() {
			kind = richtext.ListNumber
		}
		for item := t.FirstChild(); item != nil; item = item.NextSibling() {
			for child := item.FirstChild(); child != nil; child = child.NextSibling() {
				c.blockNode(child, kind)
			}
		}
	case *ast.FencedCodeBlock:
		c.appendCode(t)
	case *ast.CodeBlock:
		c.appendCode(t)
	case *ast.ThematicBreak:
		// purely decorative
	default:
		if n.Type() == ast.TypeBlock {
			c.appendBlock(richtext.StyleNormal, list, n)
		}
	}
}

func (c *converter) appendBlock(style richtext.Style, list richtext.ListKind, n ast.Node) {
	key := c.nextKey()
	spans, defs := c.inline(n, key)
	c.flushImages()
	if len(spans) == 0 {
		return
	}
	c.nodes = append(c.nodes, &richtext.Block{
		Key:      key,
		Style:    style,
		ListItem: list,
		MarkDefs: defs,
		Spans:    spans,
	})
}

func (c *converter) appendQuote(quote *ast.Blockquote) {
	key := c.nextKey()
	var spans []richtext.Span
	var defs []richtext.MarkDef
	for child := quote.FirstChild(); child != nil; child = child.NextSibling() {
		childSpans, childDefs := c.inline(child, key)
		if len(spans) > 0 && len(childSpans) > 0 {
			childSpans[0].Text = "\n" + childSpans[0].Text
		}
		spans = append(spans, childSpans...)
		defs = append(defs, childDefs...)
	}
	for i := range spans {
		spans[i].Key = identity.SpanKey(key, i)
	}
	c.flushImages()
	if len(spans) == 0 {
		return
	}
	c.nodes = append(c.nodes, &richtext.Block{
		Key:      key,
		Style:    richtext.StyleBlockquote,
		MarkDefs: defs,
		Spans:    spans,
	})
}

func (c *converter) appendCode(n interface {
	ast.Node
	Lines() *text.Segments
}) {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		sb.Write(segment.Value(c.src))
	}
	code := strings.TrimRight(sb.String(), "\n")
	if code == "" {
		return
	}
	key := c.nextKey()
	c.nodes = append(c.nodes, &richtext.Block{
		Key:   key,
		Style: richtext.StyleNormal,
		Spans: []richtext.Span{{
			Key:   identity.SpanKey(key, 0),
			Text:  code,
			Marks: []string{richtext.MarkCode},
		}},
	})
}

// inline flattens an inline tree into spans, collecting link definitions
// and hoisting images out to standalone nodes.
func (c *converter) inline(n ast.Node, blockKey string) ([]richtext.Span, []richtext.MarkDef) {
	var spans []richtext.Span
	var defs []richtext.MarkDef

	addSpan := func(content string, marks []string) {
		if content == "" {
			return
		}
		spans = append(spans, richtext.Span{Text: content, Marks: marks})
	}

	var walk func(node ast.Node, marks []string)
	walk = func(node ast.Node, marks []string) {
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			switch t := child.(type) {
			case *ast.Text:
				content := string(t.Segment.Value(c.src))
				if t.SoftLineBreak() {
					content += " "
				}
				if t.HardLineBreak() {
					content += "\n"
				}
				addSpan(content, marks)
			case *ast.String:
				addSpan(string(t.Value), marks)
			case *ast.CodeSpan:
				addSpan(plainText(t, c.src), withMark(marks, richtext.MarkCode))
			case *ast.Emphasis:
				mark := richtext.MarkEm
				if t.Level >= 2 {
					mark = richtext.MarkStrong
				}
				walk(t, withMark(marks, mark))
			case *ast.Link:
				defKey := identity.SpanKey(blockKey+"#link", len(defs))
				defs = append(defs, richtext.MarkDef{
					Key:  defKey,
					Type: richtext.MarkDefLink,
					Href: string(t.Destination),
				})
				walk(t, withMark(marks, defKey))
			case *ast.AutoLink:
				href := string(t.URL(c.src))
				defKey := identity.SpanKey(blockKey+"#link", len(defs))
				defs = append(defs, richtext.MarkDef{
					Key:  defKey,
					Type: richtext.MarkDefLink,
					Href: href,
				})
				addSpan(string(t.Label(c.src)), withMark(marks, defKey))
			case *ast.Image:
				c.images = append(c.images, richtext.Image{
					AssetURL: string(t.Destination),
					Alt:      plainText(t, c.src),
					Caption:  string(t.Title),
				})
			default:
				walk(t, marks)
			}
		}
	}
	walk(n, nil)

	for i := range spans {
		spans[i].Key = identity.SpanKey(blockKey, i)
	}
	return spans, defs
}

// flushImages appends images hoisted out of the preceding inline run as
// standalone nodes.
func (c *converter) flushImages() {
	for _, img := range c.images {
		img.Key = c.nextKey()
		appended := img
		c.nodes = append(c.nodes, &appended)
	}
	c.images = nil
}

func headingStyle(level int) richtext.Style {
	switch {
	case level <= 2:
		return richtext.StyleH2
	case level == 3:
		return richtext.StyleH3
	default:
		return richtext.StyleH4
	}
}

func withMark(marks []string, mark string) []string {
	out := make([]string, 0, len(marks)+1)
	out = append(out, marks...)
	return append(out, mark)
}

func plainText(n ast.Node, src []byte) string {
	var sb strings.Builder
	var walk func(node ast.Node)
	walk = func(node ast.Node) {
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			switch t := child.(type) {
			case *ast.Text:
				sb.Write(t.Segment.Value(src))
			case *ast.String:
				sb.Write(t.Value)
			default:
				walk(t)
			}
		}
	}
	walk(n)
	return sb.String()
}
