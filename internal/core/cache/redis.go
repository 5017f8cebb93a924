package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Cache is a read-through byte cache. Redis failures degrade to a direct
// load; they are never returned to the caller.
//
// Every Invalidate bumps a per-key generation. A load only writes back if
// no invalidation ran since it started, so a read that raced a delete
// cannot resurrect the deleted value.
type Cache struct {
	RDB *redis.Client
	TTL time.Duration
	sf  singleflight.Group

	mu      sync.Mutex
	gen     map[string]uint64
	dropped uint64 // write-backs skipped after an invalidation
}

func New(addr, pass string, db int, ttl time.Duration) *Cache {
	return &Cache{
		RDB: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		TTL: ttl,
		gen: map[string]uint64{},
	}
}

func (c *Cache) generation(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen[key]
}

func (c *Cache) GetOrLoad(ctx context.Context, key string, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if b, err := c.RDB.Get(ctx, key).Bytes(); err == nil {
		return b, nil
	}
	v, err, _ := c.sf.Do(key, func() (any, error) {
		gen := c.generation(key)
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		c.storeIfCurrent(ctx, key, b, gen)
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// storeIfCurrent writes b unless key was invalidated after gen was read.
func (c *Cache) storeIfCurrent(ctx context.Context, key string, b []byte, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen[key] != gen {
		c.dropped++
		return false
	}
	_ = c.RDB.Set(ctx, key, b, c.TTL).Err()
	return true
}

func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		c.gen[k]++
		c.sf.Forget(k)
	}
	if err := c.RDB.Del(ctx, keys...).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

func (c *Cache) Close() error { return c.RDB.Close() }
