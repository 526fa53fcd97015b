// Package htmlrender renders normalized rich content trees to HTML.
//
// The renderer is stateless and total: unknown nodes are skipped, images
// without an asset URL render to nothing, and unresolvable link marks wrap
// nothing. Styling hooks are emitted as jr-* classes; only the accent colors
// demanded by the document (category and callout accents) are inlined.
package htmlrender

import (
	"fmt"
	"html"
	"strings"

	"github.com/vibecircle/journal/richtext"
	"github.com/vibecircle/journal/theme"
)

// Renderer converts content trees to HTML using a fixed theme.
type Renderer struct {
	theme theme.Theme
}

// New constructs a renderer for the supplied theme.
func New(t theme.Theme) *Renderer {
	return &Renderer{theme: t}
}

// Render normalizes the node sequence (grouping list items) and emits HTML.
// categoryColor is the post's category accent; when empty the theme accent
// is used.
func (r *Renderer) Render(nodes richtext.Nodes, categoryColor string) string {
	accent := strings.TrimSpace(categoryColor)
	if accent == "" {
		accent = r.theme.Accent
	}

	var sb strings.Builder
	for _, node := range richtext.Normalize(nodes) {
		switch v := node.(type) {
		case *richtext.Block:
			r.writeBlock(&sb, v, accent)
		case *richtext.ListGroup:
			r.writeListGroup(&sb, v)
		case *richtext.Image:
			r.writeImage(&sb, v)
		case *richtext.Callout:
			r.writeCallout(&sb, v, accent)
		}
	}
	return sb.String()
}

// RenderLegacy parses a first-generation plain-text body and renders it.
func (r *Renderer) RenderLegacy(body, categoryColor string) string {
	return r.Render(richtext.ParseLegacy(body), categoryColor)
}

func (r *Renderer) writeBlock(sb *strings.Builder, block *richtext.Block, accent string) {
	inner := renderSpans(block)
	switch block.Style {
	case richtext.StyleH2:
		fmt.Fprintf(sb, `<h2 class="jr-h2" style="color:%s">%s</h2>`, html.EscapeString(accent), inner)
	case richtext.StyleH3:
		fmt.Fprintf(sb, `<h3 class="jr-h3" style="color:%s">%s</h3>`, html.EscapeString(accent), inner)
	case richtext.StyleH4:
		fmt.Fprintf(sb, `<h4 class="jr-h4">%s</h4>`, inner)
	case richtext.StyleBlockquote:
		fmt.Fprintf(sb, `<blockquote class="jr-quote" style="border-left-color:%s">%s</blockquote>`, html.EscapeString(accent), inner)
	default:
		fmt.Fprintf(sb, `<p class="jr-body">%s</p>`, inner)
	}
}

func (r *Renderer) writeListGroup(sb *strings.Builder, group *richtext.ListGroup) {
	tag := "ul"
	if group.Kind == richtext.ListNumber {
		tag = "ol"
	}
	fmt.Fprintf(sb, `<%s class="jr-list">`, tag)
	for _, item := range group.Items {
		fmt.Fprintf(sb, `<li class="jr-list-item">%s</li>`, renderSpans(item))
	}
	fmt.Fprintf(sb, `</%s>`, tag)
}

func (r *Renderer) writeImage(sb *strings.Builder, img *richtext.Image) {
	if strings.TrimSpace(img.AssetURL) == "" {
		return
	}
	fmt.Fprintf(sb, `<figure class="jr-figure"><img src="%s" alt="%s">`,
		html.EscapeString(img.AssetURL), html.EscapeString(img.Alt))
	if img.Caption != "" {
		fmt.Fprintf(sb, `<figcaption class="jr-caption">%s</figcaption>`, html.EscapeString(img.Caption))
	}
	sb.WriteString(`</figure>`)
}

func (r *Renderer) writeCallout(sb *strings.Builder, callout *richtext.Callout, accent string) {
	color := r.theme.CalloutColor(callout.Kind, accent)
	kind := strings.ToUpper(strings.TrimSpace(callout.Kind))
	if kind == "" {
		kind = "INFO"
	}
	fmt.Fprintf(sb, `<aside class="jr-callout" style="border-left-color:%s">`, html.EscapeString(color))
	fmt.Fprintf(sb, `<span class="jr-callout-kind" style="color:%s">%s</span>`, html.EscapeString(color), html.EscapeString(kind))
	fmt.Fprintf(sb, `<p class="jr-callout-text">%s</p></aside>`, html.EscapeString(callout.Text))
}

// renderSpans renders a block's text runs, applying marks as nested
// wrappers. Wrapping follows the span's mark order, which keeps output
// deterministic for a given run; mark semantics are order-independent.
func renderSpans(block *richtext.Block) string {
	var sb strings.Builder
	for _, span := range block.Spans {
		sb.WriteString(renderSpan(block, span))
	}
	return sb.String()
}

func renderSpan(block *richtext.Block, span richtext.Span) string {
	out := html.EscapeString(span.Text)
	for _, mark := range span.Marks {
		switch mark {
		case richtext.MarkStrong:
			out = "<strong>" + out + "</strong>"
		case richtext.MarkEm:
			out = "<em>" + out + "</em>"
		case richtext.MarkCode:
			out = `<code class="jr-code">` + out + `</code>`
		case richtext.MarkUnderline:
			out = `<span class="jr-underline">` + out + `</span>`
		default:
			out = wrapLink(block, mark, out)
		}
	}
	return out
}

// wrapLink resolves a non-decorator mark against the block's definition
// table. A missing or non-link definition is a no-op wrapper: the text
// renders unlinked rather than failing.
func wrapLink(block *richtext.Block, mark, inner string) string {
	def, ok := block.MarkDef(mark)
	if !ok || def.Type != richtext.MarkDefLink || strings.TrimSpace(def.Href) == "" {
		return inner
	}
	if def.Blank {
		return fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer">%s</a>`,
			html.EscapeString(def.Href), inner)
	}
	return fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(def.Href), inner)
}
