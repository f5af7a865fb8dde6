package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Memory is an in-process Store with exact subtree semantics.
type Memory struct {
	mu   sync.RWMutex
	root map[string]interface{}
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{root: make(map[string]interface{})}
}

func (m *Memory) Read(_ context.Context, path string) (json.RawMessage, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var node interface{} = m.root
	for _, seg := range splitPath(path) {
		children, ok := node.(map[string]interface{})
		if !ok {
			return nil, false, nil
		}
		if node, ok = children[seg]; !ok {
			return nil, false, nil
		}
	}

	if node == nil {
		return nil, false, nil
	}
	if children, ok := node.(map[string]interface{}); ok && len(children) == 0 {
		return nil, false, nil
	}

	raw, err := json.Marshal(node)
	if err != nil {
		return nil, false, fmt.Errorf("encode %s: %w", path, err)
	}
	return raw, true, nil
}

func (m *Memory) Write(_ context.Context, path string, v interface{}) error {
	segments := splitPath(path)
	if len(segments) == 0 {
		return ErrInvalidPath
	}

	value, err := normalise(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	node := m.root
	for _, seg := range segments[:len(segments)-1] {
		next, ok := node[seg].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			node[seg] = next
		}
		node = next
	}

	last := segments[len(segments)-1]
	if value == nil {
		delete(node, last)
		return nil
	}
	node[last] = value
	return nil
}

func (m *Memory) Push(ctx context.Context, basePath string, v interface{}) (string, error) {
	if len(splitPath(basePath)) == 0 {
		return "", ErrInvalidPath
	}
	key := NewPushKey()
	if err := m.Write(ctx, childPath(basePath, key), v); err != nil {
		return "", err
	}
	return key, nil
}

// normalise round-trips v through JSON so stored values look exactly like
// what a remote store would hand back.
func normalise(v interface{}) (interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
