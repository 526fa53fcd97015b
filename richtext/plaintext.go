package richtext

import (
	"regexp"
	"strings"

	"github.com/vibecircle/journal/internal/identity"
)

var (
	paragraphBreak = regexp.MustCompile(`\n\s*\n`)
	strongSpan     = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

// ParseLegacy converts a first-generation free-text post body into a content
// tree. Paragraphs are separated by one or more blank lines. A paragraph
// wholly wrapped in a doubled-asterisk pair becomes an h3 heading with the
// markers stripped; every other paragraph becomes a normal block whose
// inline **bold** spans carry the strong mark. Joining the resulting span
// text reproduces the paragraph with markers removed.
//
// No other mark syntax exists in the legacy representation.
func ParseLegacy(body string) Nodes {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return Nodes{}
	}

	var nodes Nodes
	for i, para := range paragraphBreak.Split(trimmed, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		key := identity.NodeKey(trimmed, i)
		if isLegacyHeading(para) {
			content := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(para, "**"), "**"))
			nodes = append(nodes, &Block{
				Key:   key,
				Style: StyleH3,
				Spans: []Span{{Key: identity.SpanKey(key, 0), Text: content}},
			})
			continue
		}
		nodes = append(nodes, &Block{
			Key:   key,
			Style: StyleNormal,
			Spans: parseStrongSpans(key, para),
		})
	}
	return nodes
}

func isLegacyHeading(para string) bool {
	return len(para) > 4 && strings.HasPrefix(para, "**") && strings.HasSuffix(para, "**")
}

// parseStrongSpans scans a paragraph for **bold** spans, emitting
// strong-marked runs for matches and unmarked runs for the gaps between
// them, in original order.
func parseStrongSpans(blockKey, para string) []Span {
	var spans []Span
	appendSpan := func(text string, marks ...string) {
		if text == "" {
			return
		}
		spans = append(spans, Span{
			Key:   identity.SpanKey(blockKey, len(spans)),
			Text:  text,
			Marks: marks,
		})
	}

	last := 0
	for _, match := range strongSpan.FindAllStringSubmatchIndex(para, -1) {
		appendSpan(para[last:match[0]])
		appendSpan(para[match[2]:match[3]], MarkStrong)
		last = match[1]
	}
	appendSpan(para[last:])

	if len(spans) == 0 {
		appendSpan(para)
	}
	return spans
}
