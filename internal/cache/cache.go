package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/ppiankov/claimcheck/internal/model"
)

// Cache defines the interface for caching search results
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from its parts, e.g. the searcher name and
// the query. Parts are joined with a separator that cannot appear in a
// single-line query.
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\n")))
	return "claimcheck:v1:" + hex.EncodeToString(hash[:])
}

// New builds the cache described by cfg: memory backed by disk when a
// disk directory is configured, memory only otherwise. It returns nil when
// caching is disabled.
func New(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}
	if cfg.DiskDir == "" {
		return NewMemoryCache(cfg.MemoryTTL, 10*time.Minute)
	}
	return NewLayeredCache(cfg.MemoryTTL, cfg.DiskDir, cfg.DiskTTL)
}
