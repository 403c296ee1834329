// Package cache provides Redis-backed caching decorators.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/redis/go-redis/v9"

	"auction_backend/internal/feature/encyclopedia/usecase"
)

// populate stores ARGV[2] under KEYS[2] only while the generation in KEYS[1]
// still equals ARGV[1], the value seen before the inner store was read.
var populate = redis.NewScript(`
local gen = redis.call('GET', KEYS[1]) or '0'
if gen ~= ARGV[1] then
  return 0
end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

// CachingEntryStorage decorates an EntryStorage with a Redis read cache.
// Reads are served from Redis when possible; writes go to the inner store
// first, then bump the generation of the affected keys and delete them.
// A reader that missed only fills the cache if no write bumped the
// generation in the meantime, so a slow reader cannot put back a body that
// a write already replaced. Redis failures are treated as cache misses and
// never fail the call.
type CachingEntryStorage struct {
	inner     usecase.EntryStorage
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.EntryStorage = (*CachingEntryStorage)(nil)

// NewCachingEntryStorage wraps inner. A nil rdb disables caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "entries".
func NewCachingEntryStorage(rdb *redis.Client, ttl time.Duration, inner usecase.EntryStorage, namespace string) *CachingEntryStorage {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "entries"
	}
	return &CachingEntryStorage{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

func (c *CachingEntryStorage) ListFiles(ctx context.Context, dir string) ([]string, error) {
	if c.rdb == nil {
		return c.inner.ListFiles(ctx, dir)
	}

	key := c.listKey(dir)
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var names []string
		if err := json.Unmarshal(b, &names); err == nil {
			return names, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	genKey := c.genKey("list", dir)
	gen, genErr := c.generation(ctx, genKey)
	names, err := c.inner.ListFiles(ctx, dir)
	if err != nil {
		return nil, err
	}
	if genErr == nil {
		if b, err := json.Marshal(names); err == nil {
			c.fill(ctx, genKey, key, gen, b)
		}
	}
	return names, nil
}

func (c *CachingEntryStorage) ReadFile(ctx context.Context, p string) ([]byte, error) {
	if c.rdb == nil {
		return c.inner.ReadFile(ctx, p)
	}

	key := c.fileKey(p)
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		return b, nil
	}

	genKey := c.genKey("file", p)
	gen, genErr := c.generation(ctx, genKey)
	data, err := c.inner.ReadFile(ctx, p)
	if err != nil {
		return nil, err
	}
	if genErr == nil {
		c.fill(ctx, genKey, key, gen, data)
	}
	return data, nil
}

func (c *CachingEntryStorage) CreateFile(ctx context.Context, p string, data []byte) error {
	if err := c.inner.CreateFile(ctx, p, data); err != nil {
		return err
	}
	c.invalidate(ctx, p)
	return nil
}

func (c *CachingEntryStorage) WriteFile(ctx context.Context, p string, data []byte) error {
	if err := c.inner.WriteFile(ctx, p, data); err != nil {
		return err
	}
	c.invalidate(ctx, p)
	return nil
}

// Purge drops every key of the namespace, e.g. after a bulk import that
// bypassed this decorator.
func (c *CachingEntryStorage) Purge(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.deleteByPattern(ctx, c.namespace+":*")
}

// invalidate bumps the generations of the cached body and the listing of
// its directory, then removes both keys.
func (c *CachingEntryStorage) invalidate(ctx context.Context, p string) {
	if c.rdb == nil {
		return
	}
	dir := path.Dir(p)
	for _, gk := range []string{c.genKey("file", p), c.genKey("list", dir)} {
		if err := c.rdb.Incr(ctx, gk).Err(); err != nil {
			slog.Warn("cache generation bump failed", "key", gk, "error", err)
		}
	}
	if err := c.rdb.Del(ctx, c.fileKey(p), c.listKey(dir)).Err(); err != nil {
		slog.Warn("cache invalidation failed", "path", p, "error", err)
	}
}

// generation returns the current generation stored at genKey; "0" if unset.
func (c *CachingEntryStorage) generation(ctx context.Context, genKey string) (string, error) {
	gen, err := c.rdb.Get(ctx, genKey).Result()
	if errors.Is(err, redis.Nil) {
		return "0", nil
	}
	return gen, err
}

// fill caches data under key unless genKey moved past gen.
func (c *CachingEntryStorage) fill(ctx context.Context, genKey, key, gen string, data []byte) {
	if err := populate.Run(ctx, c.rdb, []string{genKey, key}, gen, data, c.ttl.Milliseconds()).Err(); err != nil {
		slog.Debug("cache fill skipped", "key", key, "error", err)
	}
}

func (c *CachingEntryStorage) fileKey(p string) string {
	return fmt.Sprintf("%s:file:%s", c.namespace, safe(p))
}

func (c *CachingEntryStorage) listKey(dir string) string {
	return fmt.Sprintf("%s:list:%s", c.namespace, safe(dir))
}

func (c *CachingEntryStorage) genKey(kind, p string) string {
	return fmt.Sprintf("%s:gen:%s:%s", c.namespace, kind, safe(p))
}

// deleteByPattern deletes all keys matching pattern using SCAN.
func (c *CachingEntryStorage) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			return nil
		}
	}
}
