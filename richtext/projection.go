package richtext

import (
	"fmt"
	"math"
	"strings"
)

const wordsPerMinute = 200

// PlainText projects a content tree onto plain text: span text concatenated
// per block, blocks joined with blank-line separators, images and callouts
// and list structure ignored. ListGroup items contribute like any other
// block so projection is stable across normalization.
func PlainText(nodes Nodes) string {
	var parts []string
	for _, node := range nodes {
		switch v := node.(type) {
		case *Block:
			parts = append(parts, v.Text())
		case *ListGroup:
			for _, item := range v.Items {
				parts = append(parts, item.Text())
			}
		}
	}
	return strings.Join(parts, "\n\n")
}

// WordCount counts whitespace-delimited tokens in the trimmed text.
func WordCount(text string) int {
	return len(strings.Fields(strings.TrimSpace(text)))
}

// ReadTimeFromText maps a plain-text projection to a display string. The
// result is always at least one minute; an empty projection reads as one.
func ReadTimeFromText(text string) string {
	words := WordCount(text)
	minutes := int(math.Round(float64(words) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

// ReadTime estimates read time for a structured body.
func ReadTime(nodes Nodes) string {
	return ReadTimeFromText(PlainText(nodes))
}
