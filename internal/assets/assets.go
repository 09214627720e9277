// Package assets resolves and reads asset files from disk with caching.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/mitchellh/go-homedir"
)

// ErrFileNotFound is returned when a path cannot be resolved or read.
var ErrFileNotFound = errors.New("file not found")

// Manager reads asset files. Relative paths are tried as given first, then
// against each search root in order.
type Manager struct {
	roots []string
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates a manager with optional search roots. Roots may use "~".
func NewManager(roots ...string) *Manager {
	m := &Manager{cache: NewCache()}
	for _, r := range roots {
		m.AddRoot(r)
	}
	return m
}

// AddRoot appends a search root. Later roots have lower priority.
func (m *Manager) AddRoot(root string) {
	if expanded, err := homedir.Expand(root); err == nil {
		root = expanded
	}
	m.mu.Lock()
	m.roots = append(m.roots, root)
	m.mu.Unlock()
}

// Roots returns a copy of the search roots.
func (m *Manager) Roots() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.roots...)
}

// Resolve returns the first existing file for path.
func (m *Manager) Resolve(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrFileNotFound, path, err)
	}

	if isFile(expanded) {
		return expanded, nil
	}
	if !filepath.IsAbs(expanded) {
		m.mu.RLock()
		defer m.mu.RUnlock()
		for _, root := range m.roots {
			candidate := filepath.Join(root, expanded)
			if isFile(candidate) {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s", ErrFileNotFound, path)
}

// Load resolves path and returns its contents along with the resolved path.
func (m *Manager) Load(path string) ([]byte, string, error) {
	resolved, err := m.Resolve(path)
	if err != nil {
		return nil, "", err
	}
	if data, ok := m.cache.Get(resolved); ok {
		return data, resolved, nil
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, "", fmt.Errorf("reading %s: %w", resolved, err)
	}
	m.cache.Set(resolved, data)
	return data, resolved, nil
}

// Invalidate drops cached contents so the next Load reads from disk.
func (m *Manager) Invalidate() {
	m.cache.Clear()
}

// CacheStats returns cache hit and miss counts.
func (m *Manager) CacheStats() (hits, misses int) {
	return m.cache.Stats()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear empties the cache and resets statistics.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
