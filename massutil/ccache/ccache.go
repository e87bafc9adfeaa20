package ccache

import (
	"strings"
	"sync"

	"github.com/golang/groupcache/lru"
)

// Result is a cached reverse lookup: the word found, or Found == false
// when the library holds no match.
type Result struct {
	Word  string
	Found bool
}

// LookupCache is a concurrent safe LRU of lookup results keyed by target
// digest. Keys are case-folded, so "ABC.." and "abc.." share an entry.
// A zero capacity cache stores nothing.
type LookupCache struct {
	l      sync.Mutex
	cache  *lru.Cache
	hits   uint64
	misses uint64
}

func NewLookupCache(maxEntries int) *LookupCache {
	c := &LookupCache{}
	if maxEntries > 0 {
		c.cache = lru.New(maxEntries)
	}
	return c
}

func (c *LookupCache) Get(target string) (Result, bool) {
	if c.cache == nil {
		return Result{}, false
	}
	c.l.Lock()
	defer c.l.Unlock()
	v, ok := c.cache.Get(strings.ToLower(target))
	if !ok {
		c.misses++
		return Result{}, false
	}
	c.hits++
	return v.(Result), true
}

func (c *LookupCache) Add(target string, r Result) {
	if c.cache == nil {
		return
	}
	c.l.Lock()
	c.cache.Add(strings.ToLower(target), r)
	c.l.Unlock()
}

func (c *LookupCache) Clear() {
	if c.cache == nil {
		return
	}
	c.l.Lock()
	c.cache.Clear()
	c.l.Unlock()
}

func (c *LookupCache) Len() int {
	if c.cache == nil {
		return 0
	}
	c.l.Lock()
	defer c.l.Unlock()
	return c.cache.Len()
}

// Stats returns the hit and miss counters.
func (c *LookupCache) Stats() (hits, misses uint64) {
	c.l.Lock()
	defer c.l.Unlock()
	return c.hits, c.misses
}
