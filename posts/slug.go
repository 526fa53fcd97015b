package posts

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-slug"
)

var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a title or name: lowercase, runs of
// non-alphanumeric characters collapse to a single hyphen, and leading or
// trailing hyphens are trimmed. Unicode input is transliterated first.
func Slugify(input string) string {
	value := strings.TrimSpace(input)
	if normalized, err := slug.Normalize(value); err == nil && normalized != "" {
		value = normalized
	}
	value = slugSeparators.ReplaceAllString(strings.ToLower(value), "-")
	return strings.Trim(value, "-")
}

// IsValidSlug reports whether the value already satisfies the slug rules.
func IsValidSlug(value string) bool {
	return value != "" && slug.IsValid(value) && value == Slugify(value)
}
