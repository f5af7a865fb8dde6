package docstore

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Backend names accepted by Open.
const (
	BackendFirebase = "firebase"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend       string
	FirebaseURL   string
	FirebaseAuth  string
	HTTPRetries   int
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// Open builds the configured Store. The returned close func releases any
// connections and is never nil.
func Open(ctx context.Context, opts Options, logger *zap.Logger) (Store, func() error, error) {
	noop := func() error { return nil }

	switch opts.Backend {
	case BackendFirebase:
		if opts.FirebaseURL == "" {
			return nil, noop, fmt.Errorf("firebase backend requires a database url")
		}
		return NewFirebase(opts.FirebaseURL, opts.FirebaseAuth, opts.HTTPRetries, logger), noop, nil

	case BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("connect to redis %s: %w", opts.RedisAddr, err)
		}
		return NewRedis(client, opts.RedisPrefix, logger), client.Close, nil

	case BackendMemory, "":
		logger.Warn("Using in-memory store, data will not survive a restart")
		return NewMemory(), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
