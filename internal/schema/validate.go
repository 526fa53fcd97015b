package schema

import (
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrDocumentInvalid marks a document that failed schema validation.
var ErrDocumentInvalid = errors.New("schema: document invalid")

var (
	compiledPost     = jsonschema.MustCompileString("post.json", postSchema)
	compiledAuthor   = jsonschema.MustCompileString("author.json", authorSchema)
	compiledCategory = jsonschema.MustCompileString("category.json", categorySchema)
)

// Issue captures a single validation failure with its document location.
type Issue struct {
	Location string
	Message  string
}

// DocumentError carries the issues found in one document.
type DocumentError struct {
	Kind   string
	Issues []Issue
}

func (e *DocumentError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := issue.Location
		if location == "" {
			location = "#"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return fmt.Sprintf("schema: invalid %s document: %s", e.Kind, strings.Join(parts, "; "))
}

func (e *DocumentError) Unwrap() error {
	return ErrDocumentInvalid
}

// ValidatePost checks a post document against its schema.
func ValidatePost(doc map[string]any) error {
	return validate("post", compiledPost, doc)
}

// ValidateAuthor checks an author document against its schema.
func ValidateAuthor(doc map[string]any) error {
	return validate("author", compiledAuthor, doc)
}

// ValidateCategory checks a category document against its schema.
func ValidateCategory(doc map[string]any) error {
	return validate("category", compiledCategory, doc)
}

func validate(kind string, schema *jsonschema.Schema, doc map[string]any) error {
	if doc == nil {
		doc = map[string]any{}
	}
	if err := schema.Validate(normalize(doc)); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return &DocumentError{Kind: kind, Issues: collectIssues(validationErr)}
		}
		return fmt.Errorf("%w: %v", ErrDocumentInvalid, err)
	}
	return nil
}

// normalize rewrites arbitrary nested values into the plain JSON value
// types the validator expects.
func normalize(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[k] = normalize(v)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, v := range typed {
			out[i] = normalize(v)
		}
		return out
	case []string:
		out := make([]any, len(typed))
		for i, v := range typed {
			out[i] = v
		}
		return out
	case []map[string]any:
		out := make([]any, len(typed))
		for i, v := range typed {
			out[i] = normalize(v)
		}
		return out
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	default:
		return typed
	}
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	issues := []Issue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: node.InstanceLocation,
				Message:  node.Message,
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
