package posts

import (
	"errors"
	"fmt"
)

var (
	// ErrPostNotFound marks a slug lookup that matched no post. Callers
	// render a not-found view state off it, not an error page.
	ErrPostNotFound = errors.New("posts: post not found")

	// ErrAuthorNotFound marks an author lookup that matched no author.
	ErrAuthorNotFound = errors.New("posts: author not found")

	// ErrSourceUnavailable marks reads where the upstream content service
	// failed and no local snapshot could answer instead.
	ErrSourceUnavailable = errors.New("posts: content source unavailable")
)

// NotFoundError carries the kind and key of a missed lookup while still
// matching the corresponding sentinel through errors.Is.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("posts: %s %q not found", e.Kind, e.Key)
}

// Is matches the sentinel for the missed kind.
func (e *NotFoundError) Is(target error) bool {
	switch e.Kind {
	case "post":
		return target == ErrPostNotFound
	case "author":
		return target == ErrAuthorNotFound
	}
	return false
}
