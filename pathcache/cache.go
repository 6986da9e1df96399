// Package pathcache keeps the path -> remote id mapping of one session.
//
// Entries are only ever added. Nothing is re-validated against the remote
// drive, so an entry is correct only while nobody else changes the tree.
// The cache is not safe for concurrent use.
package pathcache

import "sort"

type Cache struct {
	ids map[string]string
}

func New() *Cache {
	return &Cache{ids: make(map[string]string)}
}

// Lookup returns the id cached for path.
func (c *Cache) Lookup(path string) (string, bool) {
	id, ok := c.ids[path]
	return id, ok
}

// Insert stores id for path. An existing entry is overwritten.
func (c *Cache) Insert(path string, id string) {
	c.ids[path] = id
}

func (c *Cache) Len() int {
	return len(c.ids)
}

// Paths returns the cached paths sorted.
func (c *Cache) Paths() []string {
	paths := make([]string, 0, len(c.ids))
	for p := range c.ids {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
