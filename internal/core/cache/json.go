package cache

import (
	"context"
	"encoding/json"
)

// GetOrLoadJSON caches load's result as JSON. A load error is returned as
// is and nothing is cached, so misses are never remembered.
func GetOrLoadJSON[T any](
	ctx context.Context,
	c *Cache,
	key string,
	load func(ctx context.Context) (*T, error),
) (*T, error) {
	b, err := c.GetOrLoad(ctx, key, func(ctx context.Context) ([]byte, error) {
		v, e := load(ctx)
		if e != nil {
			return nil, e
		}
		return json.Marshal(v)
	})
	if err != nil {
		return nil, err
	}
	var out T
	if e := json.Unmarshal(b, &out); e != nil {
		return nil, e
	}
	return &out, nil
}
