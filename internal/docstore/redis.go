package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	redisKeyDoc   = "%s:doc:%s"
	redisKeyIndex = "%s:idx:%s"
)

// Redis stores every written path as one JSON string and keeps a set of child
// segments for each ancestor, so whole-subtree reads of interior paths like
// "sales" can be reassembled without a scan.
//
// Rewriting a path does not clear documents previously written below it; the
// application only ever writes leaf records.
type Redis struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewRedis wraps an existing client. prefix namespaces every key.
func NewRedis(client *redis.Client, prefix string, logger *zap.Logger) *Redis {
	if prefix == "" {
		prefix = "launchpad"
	}
	return &Redis{
		client: client,
		prefix: prefix,
		logger: logger.Named("redis_store"),
	}
}

func (r *Redis) docKey(path string) string {
	return fmt.Sprintf(redisKeyDoc, r.prefix, path)
}

func (r *Redis) indexKey(path string) string {
	return fmt.Sprintf(redisKeyIndex, r.prefix, path)
}

func (r *Redis) Read(ctx context.Context, path string) (json.RawMessage, bool, error) {
	path = cleanPath(path)

	raw, ok, err := r.readTree(ctx, path)
	if err != nil || ok {
		return raw, ok, err
	}

	return r.readFromAncestor(ctx, path)
}

func (r *Redis) readTree(ctx context.Context, path string) (json.RawMessage, bool, error) {
	if path != "" {
		val, err := r.client.Get(ctx, r.docKey(path)).Result()
		if err == nil {
			return json.RawMessage(val), true, nil
		}
		if !errors.Is(err, redis.Nil) {
			return nil, false, fmt.Errorf("get %s: %w", path, err)
		}
	}

	children, err := r.client.SMembers(ctx, r.indexKey(path)).Result()
	if err != nil {
		return nil, false, fmt.Errorf("list children of %s: %w", path, err)
	}
	if len(children) == 0 {
		return nil, false, nil
	}
	sort.Strings(children)

	tree := make(map[string]json.RawMessage, len(children))
	for _, child := range children {
		sub, ok, err := r.readTree(ctx, childPath(path, child))
		if err != nil {
			return nil, false, err
		}
		if ok {
			tree[child] = sub
		}
	}
	if len(tree) == 0 {
		return nil, false, nil
	}

	raw, err := json.Marshal(tree)
	if err != nil {
		return nil, false, fmt.Errorf("encode %s: %w", path, err)
	}
	return raw, true, nil
}

// readFromAncestor answers a read below a written document by walking up to
// the nearest stored ancestor and descending into its JSON.
func (r *Redis) readFromAncestor(ctx context.Context, path string) (json.RawMessage, bool, error) {
	segments := splitPath(path)
	for i := len(segments) - 1; i > 0; i-- {
		ancestor := strings.Join(segments[:i], "/")
		val, err := r.client.Get(ctx, r.docKey(ancestor)).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, false, fmt.Errorf("get %s: %w", ancestor, err)
		}

		var node interface{}
		if err := json.Unmarshal([]byte(val), &node); err != nil {
			return nil, false, fmt.Errorf("decode %s: %w", ancestor, err)
		}
		for _, seg := range segments[i:] {
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
		raw, err := json.Marshal(node)
		if err != nil {
			return nil, false, fmt.Errorf("encode %s: %w", path, err)
		}
		return raw, true, nil
	}
	return nil, false, nil
}

func (r *Redis) Write(ctx context.Context, path string, v interface{}) error {
	segments := splitPath(path)
	if len(segments) == 0 {
		return ErrInvalidPath
	}
	path = strings.Join(segments, "/")

	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	// The document and its ancestor index entries land in one MULTI/EXEC.
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.docKey(path), payload, 0)
		for i := len(segments) - 1; i >= 0; i-- {
			pipe.SAdd(ctx, r.indexKey(strings.Join(segments[:i], "/")), segments[i])
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	r.logger.Debug("Document written", zap.String("path", path), zap.Int("bytes", len(payload)))
	return nil
}

func (r *Redis) Push(ctx context.Context, basePath string, v interface{}) (string, error) {
	if len(splitPath(basePath)) == 0 {
		return "", ErrInvalidPath
	}
	key := NewPushKey()
	if err := r.Write(ctx, childPath(basePath, key), v); err != nil {
		return "", err
	}
	return key, nil
}
