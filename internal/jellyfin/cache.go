package jellyfin

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"jellyterm/internal/domain"
)

// Cache persists the full catalog as a single JSON document mapping item ID
// to item record. It is rebuilt wholesale on refresh, never patched.
type Cache struct {
	path   string
	logger *slog.Logger
}

// NewCache creates a catalog cache backed by the given file path
func NewCache(path string, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{path: path, logger: logger}
}

// Load reads the cached catalog. A missing or structurally invalid cache is
// reported as absent, not as an error.
func (c *Cache) Load() (domain.Catalog, bool) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, false
	}

	var catalog domain.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		c.logger.Warn("discarding corrupt catalog cache", "path", c.path, "error", err)
		return nil, false
	}
	if catalog == nil {
		return nil, false
	}

	return catalog, true
}

// Save replaces the cache file with a full rewrite of the catalog. The write
// goes to a temp file first and is renamed into place so readers never see a
// partial document.
func (c *Cache) Save(catalog domain.Catalog) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace cache: %w", err)
	}

	return nil
}

// Delete removes the persisted cache, forcing the next load to miss
func (c *Cache) Delete() error {
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cache: %w", err)
	}
	return nil
}
