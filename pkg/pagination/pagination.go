package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultLimit is the page size used when a request does not ask for one.
	DefaultLimit = 25
	// MaxLimit caps the page size any request can ask for.
	MaxLimit = 100
)

// Cursor is the keyset position of the last row on the previous page. The ID
// breaks ties between rows created in the same instant.
type Cursor struct {
	CreatedAt time.Time `json:"t"`
	ID        uuid.UUID `json:"id"`
}

// NormalizeLimit clamps limit into [1, MaxLimit], substituting DefaultLimit
// for zero or negative values.
func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	}
	return limit
}

// LimitWithBuffer adds one row to the normalized limit so callers can tell
// whether another page exists.
func LimitWithBuffer(limit int) int {
	return NormalizeLimit(limit) + 1
}

// EncodeCursor serializes the cursor into an opaque URL-safe token.
func EncodeCursor(cursor Cursor) string {
	payload, err := json.Marshal(Cursor{CreatedAt: cursor.CreatedAt.UTC(), ID: cursor.ID})
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(payload)
}

// ParseCursor decodes a token produced by EncodeCursor. A blank token means
// the first page and returns a nil cursor.
func ParseCursor(value string) (*Cursor, error) {
	token := strings.TrimSpace(value)
	if token == "" {
		return nil, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}

	var cursor Cursor
	if err := json.Unmarshal(raw, &cursor); err != nil {
		return nil, fmt.Errorf("invalid cursor payload: %w", err)
	}
	if cursor.ID == uuid.Nil && cursor.CreatedAt.IsZero() {
		return nil, fmt.Errorf("invalid cursor format")
	}
	return &cursor, nil
}
