package richtext

import "strings"

// Style identifies the visual treatment of a text block.
type Style string

const (
	StyleNormal     Style = "normal"
	StyleH2         Style = "h2"
	StyleH3         Style = "h3"
	StyleH4         Style = "h4"
	StyleBlockquote Style = "blockquote"
)

// NormalizeStyle maps unknown styles to the normal paragraph treatment so
// rendering stays total over loosely validated content.
func NormalizeStyle(value string) Style {
	switch Style(strings.TrimSpace(value)) {
	case StyleH2:
		return StyleH2
	case StyleH3:
		return StyleH3
	case StyleH4:
		return StyleH4
	case StyleBlockquote:
		return StyleBlockquote
	default:
		return StyleNormal
	}
}

// ListKind identifies the list membership of a block.
type ListKind string

const (
	ListNone   ListKind = ""
	ListBullet ListKind = "bullet"
	ListNumber ListKind = "number"
)

// Decorator mark names understood by the renderer. Any other mark value on a
// span is treated as a key into the owning block's mark definitions.
const (
	MarkStrong    = "strong"
	MarkEm        = "em"
	MarkCode      = "code"
	MarkUnderline = "underline"
)

// MarkDefLink is the only mark definition type the renderer resolves.
const MarkDefLink = "link"

// Node is a single entry in a rich content tree. The concrete types are
// *Block, *Image, *Callout, and the derived *ListGroup.
type Node interface {
	node()
}

// Span is a run of text with zero or more marks applied. Marks combine
// cumulatively; their order carries no semantic weight.
type Span struct {
	Key   string
	Text  string
	Marks []string
}

// MarkDef is an annotation referenced by span marks, currently always a link.
type MarkDef struct {
	Key   string
	Type  string
	Href  string
	Blank bool
}

// Block is a styled text block composed of spans. A block with a non-none
// ListItem kind is a list entry awaiting grouping.
type Block struct {
	Key      string
	Style    Style
	ListItem ListKind
	MarkDefs []MarkDef
	Spans    []Span
}

func (*Block) node() {}

// MarkDef resolves a span mark against the block's definition table.
func (b *Block) MarkDef(key string) (MarkDef, bool) {
	for _, def := range b.MarkDefs {
		if def.Key == key {
			return def, true
		}
	}
	return MarkDef{}, false
}

// Text concatenates the block's span text without any mark information.
func (b *Block) Text() string {
	var sb strings.Builder
	for _, span := range b.Spans {
		sb.WriteString(span.Text)
	}
	return sb.String()
}

// Image is a captioned figure. Images without an asset URL render to nothing.
type Image struct {
	Key      string
	AssetURL string
	Alt      string
	Caption  string
}

func (*Image) node() {}

// Callout is a highlighted aside whose accent color derives from its kind.
type Callout struct {
	Key  string
	Kind string
	Text string
}

func (*Callout) node() {}

// ListGroup is a derived container holding a maximal run of adjacent list
// items of the same kind. It is produced by Normalize and never decoded from
// raw content.
type ListGroup struct {
	Kind  ListKind
	Items []*Block
}

func (*ListGroup) node() {}

// Nodes is an ordered rich content tree.
type Nodes []Node
