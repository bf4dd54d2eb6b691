// Package assets locates model and texture files and caches their bytes.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// BuiltinPrefix marks paths served from the embedded asset set.
const BuiltinPrefix = "builtin:"

// DefaultModel is the mesh shown when no model is configured.
const DefaultModel = BuiltinPrefix + "cube.obj"

//go:embed builtin
var builtin embed.FS

// ErrNotFound is returned when no root holds the requested file.
var ErrNotFound = errors.New("asset not found")

// IsBuiltin reports whether path names an embedded asset.
func IsBuiltin(path string) bool {
	return strings.HasPrefix(path, BuiltinPrefix)
}

// Manager resolves asset paths against a list of search roots.
type Manager struct {
	roots []string
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates a new asset manager searching the given roots.
func NewManager(roots ...string) *Manager {
	return &Manager{
		roots: roots,
		cache: NewCache(),
	}
}

// AddRoot adds a search directory.
// Roots are searched in reverse order (last added = highest priority).
func (m *Manager) AddRoot(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("adding root %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("adding root %s: not a directory", dir)
	}

	m.mu.Lock()
	m.roots = append(m.roots, dir)
	m.mu.Unlock()
	return nil
}

// Resolve returns the file system path for an asset. Absolute paths and
// paths relative to the working directory win over search roots. Built-in
// assets have no file system path.
func (m *Manager) Resolve(path string) (string, error) {
	if IsBuiltin(path) {
		return "", fmt.Errorf("%s: built-in assets have no file path", path)
	}
	if fileExists(path) || filepath.IsAbs(path) {
		return path, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.roots) - 1; i >= 0; i-- {
		candidate := filepath.Join(m.roots[i], path)
		if fileExists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, path)
}

// Load returns the bytes of an asset, from the cache when possible.
func (m *Manager) Load(path string) ([]byte, error) {
	if data, ok := m.cache.Get(path); ok {
		return data, nil
	}

	var (
		data []byte
		err  error
	)
	if IsBuiltin(path) {
		data, err = fs.ReadFile(builtin, "builtin/"+strings.TrimPrefix(path, BuiltinPrefix))
		if errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%w: %s", ErrNotFound, path)
		}
	} else {
		var resolved string
		if resolved, err = m.Resolve(path); err == nil {
			data, err = os.ReadFile(resolved)
		}
	}
	if err != nil {
		return nil, err
	}

	m.cache.Set(path, data)
	return data, nil
}

// Close drops every cached asset.
func (m *Manager) Close() {
	m.cache.Clear()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	// Stats
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

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
