// Package cache stores encoded evaluation results. Calculator outputs are
// pure functions of their inputs and the calendar day, so a cached copy
// stays valid for the day it was computed on.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// KeyPrefix namespaces every key written by this package.
const KeyPrefix = "fincalc"

// Cache is a byte store with expiry. A miss is (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Key builds the cache key of one evaluation.
func Key(calculator, day string, fingerprint uint64) string {
	return fmt.Sprintf("%s:%s:%s:%016x", KeyPrefix, calculator, day, fingerprint)
}

// Options selects and configures a backend.
type Options struct {
	Backend  string
	Address  string
	Password string
	DB       int
	TTL      time.Duration
}

// New creates the backend named by opts.Backend. The Redis backend is
// pinged once so a bad address fails at startup.
func New(ctx context.Context, opts Options, logger *zap.Logger) (Cache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = constants.DefaultCacheTTLSeconds * time.Second
	}

	switch opts.Backend {
	case "", constants.CacheBackendNone:
		return Nop{}, nil
	case constants.CacheBackendMemory:
		logger.Debug("using in-memory cache",
			zap.String("op", "cache.New"),
			zap.Duration("ttl", ttl),
		)
		return NewMemory(ttl), nil
	case constants.CacheBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     opts.Address,
			Password: opts.Password,
			DB:       opts.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis cache at %s: %w", opts.Address, err)
		}
		logger.Debug("using redis cache",
			zap.String("op", "cache.New"),
			zap.String("address", opts.Address),
			zap.Duration("ttl", ttl),
		)
		return NewRedis(client, ttl), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (Nop) Set(context.Context, string, []byte) error         { return nil }
func (Nop) Close() error                                      { return nil }
