// Package docstore reads and writes namespaced JSON subtrees by key path.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
)

// ErrInvalidPath is returned for empty or root paths where a child path is required.
var ErrInvalidPath = errors.New("invalid store path")

// Store is a key-path JSON document store. There are no transactions across
// keys; every write replaces the whole subtree at its path.
type Store interface {
	// Read returns the JSON subtree at path. The bool is false when nothing is stored there.
	Read(ctx context.Context, path string) (json.RawMessage, bool, error)
	// Write replaces the subtree at path with the JSON encoding of v.
	Write(ctx context.Context, path string, v interface{}) error
	// Push stores v under a new unique child of basePath and returns the child key.
	Push(ctx context.Context, basePath string, v interface{}) (string, error)
}

// ReadInto decodes the subtree at path into out.
func ReadInto(ctx context.Context, s Store, path string, out interface{}) (bool, error) {
	raw, ok, err := s.Read(ctx, path)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", path, err)
	}
	return true, nil
}

// NewPushKey returns a unique, time-ordered child key.
func NewPushKey() string {
	return ulid.Make().String()
}

// splitPath cleans a slash-separated path into its segments.
func splitPath(p string) []string {
	parts := strings.Split(p, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

func cleanPath(p string) string {
	return strings.Join(splitPath(p), "/")
}

func childPath(base, key string) string {
	base = cleanPath(base)
	if base == "" {
		return key
	}
	return base + "/" + key
}
