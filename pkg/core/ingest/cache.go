package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DocumentCache is a file-based cache for fetched filing documents. EDGAR
// archives are immutable once published, so entries never expire.
type DocumentCache struct {
	cacheDir string
}

// NewDocumentCache creates a cache rooted at dir, defaulting to
// .cache/edgar when dir is empty.
func NewDocumentCache(dir string) *DocumentCache {
	if dir == "" {
		dir = filepath.Join(".cache", "edgar")
	}
	os.MkdirAll(dir, 0755)
	return &DocumentCache{cacheDir: dir}
}

// cacheKey generates a unique key for a document within a filing.
func (c *DocumentCache) cacheKey(cik, accession, name string) string {
	accession = strings.ReplaceAll(accession, "-", "")
	name = strings.ReplaceAll(name, string(filepath.Separator), "_")
	return fmt.Sprintf("%s_%s_%s", cik, accession, name)
}

func (c *DocumentCache) filePath(key string) string {
	return filepath.Join(c.cacheDir, key)
}

// Get retrieves a cached document. The second return is false on a miss.
func (c *DocumentCache) Get(cik, accession, name string) ([]byte, bool) {
	data, err := os.ReadFile(c.filePath(c.cacheKey(cik, accession, name)))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores a document in the cache.
func (c *DocumentCache) Set(cik, accession, name string, body []byte) error {
	return os.WriteFile(c.filePath(c.cacheKey(cik, accession, name)), body, 0644)
}

// Has checks whether a document is cached.
func (c *DocumentCache) Has(cik, accession, name string) bool {
	_, err := os.Stat(c.filePath(c.cacheKey(cik, accession, name)))
	return err == nil
}

// Dir returns the cache directory path.
func (c *DocumentCache) Dir() string {
	return c.cacheDir
}

// Clear removes all cached documents.
func (c *DocumentCache) Clear() error {
	return os.RemoveAll(c.cacheDir)
}
