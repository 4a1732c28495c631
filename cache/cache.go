// Package cache provides a concurrency-safe store for values, that are
// expensive to compute.
package cache

import "sync"

// Element can be stored in a Cache.
type Element interface {
	Hash() interface{}
}

// Cache stores Elements by their Hash.
type Cache struct {
	cache map[interface{}]Element
	cm    *sync.RWMutex

	limit int
}

// NewCache returns a Cache holding up to limit Elements. If the limit is
// reached, an arbitrary Element is evicted on Update. A limit of 0 means the
// Cache is unbounded.
func NewCache(limit int) *Cache {
	return &Cache{
		cache: make(map[interface{}]Element),
		cm:    &sync.RWMutex{},
		limit: limit,
	}
}

// Update stores e, replacing any Element with the same Hash.
func (c *Cache) Update(e Element) {
	c.cm.Lock()
	defer c.cm.Unlock()

	h := e.Hash()
	if _, ok := c.cache[h]; !ok && c.limit > 0 && len(c.cache) >= c.limit {
		for old := range c.cache {
			delete(c.cache, old)
			break
		}
	}
	c.cache[h] = e
}

// Get returns the Element stored for hash, or nil.
func (c *Cache) Get(hash interface{}) Element {
	c.cm.RLock()
	defer c.cm.RUnlock()
	return c.cache[hash]
}

// GetOrCompute returns the Element stored for hash. If there is none, compute
// is called and its result is stored, unless it fails.
func (c *Cache) GetOrCompute(hash interface{}, compute func() (Element, error)) (Element, error) {
	if e := c.Get(hash); e != nil {
		return e, nil
	}
	e, err := compute()
	if err != nil {
		return nil, err
	}
	c.Update(e)
	return e, nil
}

// Len returns the amount of stored Elements.
func (c *Cache) Len() int {
	c.cm.RLock()
	defer c.cm.RUnlock()
	return len(c.cache)
}
