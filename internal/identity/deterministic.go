package identity

import (
	"fmt"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions
// (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

func PostUUID(slug string) uuid.UUID {
	return UUID("journal:post:" + strings.ToLower(strings.TrimSpace(slug)))
}

func AuthorUUID(slug string) uuid.UUID {
	return UUID("journal:author:" + strings.ToLower(strings.TrimSpace(slug)))
}

func CategoryUUID(slug string) uuid.UUID {
	return UUID("journal:category:" + strings.ToLower(strings.TrimSpace(slug)))
}

// NodeKey derives a stable content-node key from the owning document and the
// node's position. Keys stay short because they only need to be unique within
// a single document body.
func NodeKey(docKey string, index int) string {
	uid := UUID(fmt.Sprintf("journal:node:%s:%d", strings.TrimSpace(docKey), index))
	return strings.ReplaceAll(uid.String(), "-", "")[:12]
}

// SpanKey derives a stable key for a text run inside a block.
func SpanKey(blockKey string, index int) string {
	uid := UUID(fmt.Sprintf("journal:span:%s:%d", strings.TrimSpace(blockKey), index))
	return strings.ReplaceAll(uid.String(), "-", "")[:12]
}
