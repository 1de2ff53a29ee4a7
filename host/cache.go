package host

import (
	"sort"
	"sync"

	"github.com/wippyai/aot-runtime/errors"
)

// Cache is the process-wide module cache. Mutation discipline is "insert
// own entry, never overwrite another's": Insert fails on duplicates and
// no removal operation exists. A loaded module stays for the process
// lifetime.
type Cache struct {
	mu   sync.RWMutex
	mods map[string]*Module
}

// NewCache creates an empty module cache.
func NewCache() *Cache {
	return &Cache{
		mods: make(map[string]*Module),
	}
}

// Insert adds a module under its own name. A prior entry under the same
// name is a programming-error condition surfaced as a duplicate error.
func (c *Cache) Insert(mod *Module) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.mods[mod.Name()]; exists {
		return errors.AlreadyPresent(errors.PhaseLoad, mod.Name())
	}
	c.mods[mod.Name()] = mod
	return nil
}

// Lookup returns the cached module for an exact dotted name.
func (c *Cache) Lookup(name string) (*Module, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	mod, ok := c.mods[name]
	return mod, ok
}

// Len returns the number of cached modules.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.mods)
}

// Names returns the cached module names in sorted order.
func (c *Cache) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.mods))
	for name := range c.mods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
