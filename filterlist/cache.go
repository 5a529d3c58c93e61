package filterlist

import "sync"

// Cache is the process-wide mirror of the site API's filter list state,
// keyed by Key(type, allowed). The API stays authoritative: the cache is
// rebuilt from it at startup with Replace, and the command layer keeps it
// consistent after every successful mutation.
//
// Gateway handlers run on library goroutines, so all access goes through a
// mutex. Nothing suspends while the lock is held.
type Cache struct {
	mu    sync.Mutex
	lists map[string][]Entry
}

func NewCache() *Cache {
	return &Cache{lists: map[string][]Entry{}}
}

// Replace throws away the cached state and regroups entries under their
// keys, preserving the given order within each key.
func (c *Cache) Replace(entries []Entry) {
	lists := make(map[string][]Entry, len(entries))
	for _, e := range entries {
		k := Key(e.Type, e.Allowed)
		lists[k] = append(lists[k], e)
	}

	c.mu.Lock()
	c.lists = lists
	c.mu.Unlock()
}

// Insert appends the entry to its partition.
func (c *Cache) Insert(e Entry) {
	k := Key(e.Type, e.Allowed)

	c.mu.Lock()
	c.lists[k] = append(c.lists[k], e)
	c.mu.Unlock()
}

// Find returns the first entry in the partition whose Content matches.
func (c *Cache) Find(t Type, allowed bool, content string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.lists[Key(t, allowed)] {
		if e.Content == content {
			return e, true
		}
	}
	return Entry{}, false
}

// Remove deletes the first entry in the partition whose Content matches and
// returns it. The API enforces (type, allowed, content) uniqueness, so more
// than one match means the cache has drifted; removing one entry per call
// converges back toward the API's state.
func (c *Cache) Remove(t Type, allowed bool, content string) (Entry, bool) {
	k := Key(t, allowed)

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, e := range c.lists[k] {
		if e.Content == content {
			c.lists[k] = append(c.lists[k][:i], c.lists[k][i+1:]...)
			return e, true
		}
	}
	return Entry{}, false
}

// Entries returns a copy of the partition in insertion order.
func (c *Cache) Entries(t Type, allowed bool) []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.lists[Key(t, allowed)]
	return append([]Entry(nil), list...)
}

// Len returns the total number of cached entries across all partitions.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int
	for _, list := range c.lists {
		n += len(list)
	}
	return n
}

// Dump returns a deep copy of the cache contents, keyed like the cache
// itself. Used by the debug commands.
func (c *Cache) Dump() map[string][]Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	dump := make(map[string][]Entry, len(c.lists))
	for k, list := range c.lists {
		dump[k] = append([]Entry(nil), list...)
	}
	return dump
}
