// Package assets caches loaded models and hands out independent copies.
package assets

import (
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/objmodel/internal/engine/model"
)

// Key identifies a cached model by its source files.
type Key struct {
	Mesh    string
	Texture string
}

// Manager loads models through a model.Loader and caches the results.
// Every Get returns a deep copy, so callers may Release what they receive
// without affecting the cache or each other.
type Manager struct {
	loader *model.Loader
	cache  *Cache
	log    *zap.Logger
	mu     sync.Mutex // serializes loads
}

// NewManager creates a new asset manager. A nil log discards diagnostics.
func NewManager(loader *model.Loader, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		loader: loader,
		cache:  NewCache(),
		log:    log,
	}
}

// Get returns a copy of the model built from meshPath and texturePath,
// loading it on first use.
func (m *Manager) Get(meshPath, texturePath string) (*model.Model, error) {
	key := Key{Mesh: meshPath, Texture: texturePath}

	if cached, ok := m.cache.Get(key); ok {
		return cached, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another caller may have loaded it while we waited
	if cached, ok := m.cache.Peek(key); ok {
		return cached, nil
	}

	loaded, err := m.loader.Load(meshPath, texturePath, model.DefaultTransform())
	if err != nil {
		return nil, err
	}
	copied := loaded.Clone()
	m.cache.Set(key, loaded)
	m.log.Debug("model cached", zap.String("mesh", meshPath), zap.String("texture", texturePath))

	return copied, nil
}

// Invalidate drops every cached model that was built from path, either as
// mesh or as texture, and returns how many entries were dropped.
func (m *Manager) Invalidate(path string) int {
	n := m.cache.Remove(func(k Key) bool {
		return k.Mesh == path || k.Texture == path
	})
	if n > 0 {
		m.log.Debug("models invalidated", zap.String("path", path), zap.Int("count", n))
	}
	return n
}

// Stats returns cache hit and miss counts.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Close releases every cached model.
func (m *Manager) Close() {
	m.cache.Clear()
}

// Cache is an in-memory model cache. It owns the models it stores.
type Cache struct {
	data map[Key]*model.Model
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[Key]*model.Model),
	}
}

// Get returns a copy of a cached model and records a hit or miss.
// The copy is taken under the lock so a concurrent Remove cannot release
// the texture mid-copy.
func (c *Cache) Get(key Key) (*model.Model, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.data[key]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	return m.Clone(), true
}

// Peek is Get without touching the stats.
func (c *Cache) Peek(key Key) (*model.Model, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.data[key]
	if !ok {
		return nil, false
	}
	return m.Clone(), true
}

// Set stores an item in cache, releasing any model it replaces.
func (c *Cache) Set(key Key, m *model.Model) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if old, ok := c.data[key]; ok && old != m {
		old.Release()
	}
	c.data[key] = m
}

// Remove releases and deletes every entry whose key matches.
func (c *Cache) Remove(match func(Key) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for k, m := range c.data {
		if match(k) {
			m.Release()
			delete(c.data, k)
			n++
		}
	}
	return n
}

// Len returns the number of cached models.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Clear releases and removes every entry and resets the stats.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.data {
		m.Release()
	}
	c.data = make(map[Key]*model.Model)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
