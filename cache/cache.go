// Package cache 提供泛型 LRU + TTL 缓存，
// 主要服务于 storage/cached 的读穿透仓储装饰器。
package cache

import (
	"container/list"
	"fmt"
	"sync"
	"time"
)

// Config 缓存配置。
type Config struct {
	// Name 缓存名称，用于日志与 String()。
	Name string

	// MaxEntries 最大条目数，超出后按 LRU 驱逐；0 表示不限。
	MaxEntries int

	// TTL 过期时间，自最后一次访问起算；0 表示永不过期。
	TTL time.Duration
}

// Stats 缓存统计。
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Expired   int64
	Entries   int
}

// Cache 并发安全的泛型缓存。
//
// 读路径也会更新访问时间与 LRU 位置，因此 Get 持写锁。
type Cache[K comparable, V any] struct {
	mu     sync.Mutex
	name   string
	config Config

	entries map[K]*list.Element
	order   *list.List // 最近访问的在链表头

	hits      int64
	misses    int64
	evictions int64
	expired   int64
}

type entry[K comparable, V any] struct {
	key     K
	value   V
	touched time.Time
}

// New 创建缓存实例。
func New[K comparable, V any](config Config) *Cache[K, V] {
	if config.Name == "" {
		config.Name = "cache"
	}
	return &Cache[K, V]{
		name:    config.Name,
		config:  config,
		entries: make(map[K]*list.Element),
		order:   list.New(),
	}
}

// Get 按键读取，过期条目视为未命中并被删除。
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	elem, ok := c.entries[key]
	if !ok {
		c.misses++
		return zero, false
	}

	ent := elem.Value.(*entry[K, V])
	if c.stale(ent) {
		c.remove(elem)
		c.expired++
		c.misses++
		return zero, false
	}

	ent.touched = time.Now()
	c.order.MoveToFront(elem)
	c.hits++
	return ent.value, true
}

// Set 写入或覆盖条目，必要时驱逐最久未访问的条目。
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		ent := elem.Value.(*entry[K, V])
		ent.value = value
		ent.touched = time.Now()
		c.order.MoveToFront(elem)
		return
	}

	if c.config.MaxEntries > 0 && len(c.entries) >= c.config.MaxEntries {
		if oldest := c.order.Back(); oldest != nil {
			c.remove(oldest)
			c.evictions++
		}
	}

	c.entries[key] = c.order.PushFront(&entry[K, V]{key: key, value: value, touched: time.Now()})
}

// Delete 删除条目，返回是否存在。
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return false
	}
	c.remove(elem)
	return true
}

// Clear 清空全部条目。
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]*list.Element)
	c.order = list.New()
}

// Sweep 删除所有已过期条目，返回删除数量。
func (c *Cache[K, V]) Sweep() int {
	if c.config.TTL <= 0 {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	swept := 0
	for elem := c.order.Back(); elem != nil; {
		prev := elem.Prev()
		if c.stale(elem.Value.(*entry[K, V])) {
			c.remove(elem)
			swept++
		}
		elem = prev
	}
	c.expired += int64(swept)
	return swept
}

// Len 当前条目数。
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats 返回统计快照。
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Expired:   c.expired,
		Entries:   len(c.entries),
	}
}

func (c *Cache[K, V]) String() string {
	s := c.Stats()
	return fmt.Sprintf("cache[%s] entries=%d hits=%d misses=%d evictions=%d expired=%d",
		c.name, s.Entries, s.Hits, s.Misses, s.Evictions, s.Expired)
}

func (c *Cache[K, V]) stale(ent *entry[K, V]) bool {
	return c.config.TTL > 0 && time.Since(ent.touched) >= c.config.TTL
}

func (c *Cache[K, V]) remove(elem *list.Element) {
	ent := elem.Value.(*entry[K, V])
	c.order.Remove(elem)
	delete(c.entries, ent.key)
}
