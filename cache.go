package xqregex

import (
	"container/list"
	"sync"
)

var defaultCache = NewCache(DefaultConfig())

// Cache is a least-recently-used cache of compiled patterns keyed by
// pattern and flags. It is safe for concurrent use.
type Cache struct {
	config Config

	mu    sync.Mutex
	list  *list.List                 // Least recent used patterns at the back
	items map[cacheKey]*list.Element // Mapping of keys to list elements
}

type cacheKey struct {
	pattern string
	flags   Flags
}

// Is necessary, because each list element needs to store the key in the map.
type cacheValue struct {
	re  *Regexp
	key cacheKey
}

// NewCache returns an empty cache holding up to config.CacheSize patterns.
// An invalid config is replaced by DefaultConfig.
func NewCache(config Config) *Cache {
	if config.Validate() != nil {
		config = DefaultConfig()
	}
	return &Cache{
		config: config,
		list:   list.New(),
		items:  make(map[cacheKey]*list.Element),
	}
}

// Compile returns the cached Regexp for (pattern, flags), compiling and
// caching it on a miss. Patterns that fail to compile are not cached.
func (c *Cache) Compile(pattern string, flags Flags) (*Regexp, error) {
	key := cacheKey{pattern: pattern, flags: flags}

	c.mu.Lock()
	if e, ok := c.items[key]; ok {
		c.list.MoveToFront(e)
		re := e.Value.(*cacheValue).re
		c.mu.Unlock()
		return re, nil
	}
	c.mu.Unlock()

	re, err := CompileWithConfig(pattern, flags, c.config)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another goroutine may have compiled the same pattern meanwhile.
	if e, ok := c.items[key]; ok {
		c.list.MoveToFront(e)
		return e.Value.(*cacheValue).re, nil
	}
	for c.list.Len() >= c.config.CacheSize {
		last := c.list.Back()
		delete(c.items, last.Value.(*cacheValue).key)
		c.list.Remove(last)
	}
	c.items[key] = c.list.PushFront(&cacheValue{re: re, key: key})
	return re, nil
}

// Matches parses flags, compiles pattern through the cache and matches
// input against it.
func (c *Cache) Matches(input, pattern, flags string) (bool, error) {
	f, err := ParseFlags(flags)
	if err != nil {
		return false, err
	}
	re, err := c.Compile(pattern, f)
	if err != nil {
		return false, err
	}
	return re.Match(input)
}

// Len returns the number of cached patterns.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list.Len()
}

// Purge empties the cache.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.list.Init()
	clear(c.items)
}
