package cache

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/ristretto"
)

// ResultCache 本地缓存，支持 TTL，顺带统计命中率
type ResultCache struct {
	cache  *ristretto.Cache
	ttl    time.Duration
	hits   atomic.Uint64
	misses atomic.Uint64
}

type Stats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
}

// NewResultCache 创建缓存
// maxCost: 最大成本，按条目计数时即最大条目数
// ttl: 默认过期时间，0 表示不过期
func NewResultCache(maxCost int64, ttl time.Duration) (*ResultCache, error) {
	counters := maxCost * 10
	if counters < 1e4 {
		counters = 1e4
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: counters,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("创建 ristretto 缓存失败: %w", err)
	}

	return &ResultCache{
		cache: cache,
		ttl:   ttl,
	}, nil
}

// Set 使用默认 TTL 写入，写入是异步的，需要立刻读到时调用 Wait
func (c *ResultCache) Set(key string, value any, cost int64) bool {
	return c.cache.SetWithTTL(key, value, cost, c.ttl)
}

func (c *ResultCache) Get(key string) (any, bool) {
	v, ok := c.cache.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Wait 等待缓冲区中的写入全部生效
func (c *ResultCache) Wait() {
	c.cache.Wait()
}

func (c *ResultCache) Clear() {
	c.cache.Clear()
}

func (c *ResultCache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

func (c *ResultCache) Close() {
	c.cache.Close()
}
