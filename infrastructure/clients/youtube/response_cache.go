package youtube

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ResponseCache is a content-addressed file cache for raw Data API responses.
// Entries are immutable once written; a hit never re-validates upstream. No
// eviction beyond external cleanup: the proxied data changes slowly, so a
// stale entry beats an extra quota-burning call.
type ResponseCache struct {
	dir string
}

// NewResponseCache ensures the cache directory exists
func NewResponseCache(dir string) (*ResponseCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir %s: %w", dir, err)
	}
	return &ResponseCache{dir: dir}, nil
}

// Fingerprint derives a deterministic cache key from normalized request
// parameters: ids are trimmed and sorted so input order never changes the key.
func Fingerprint(endpoint string, part string, ids []string) string {
	normalized := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" {
			normalized = append(normalized, id)
		}
	}
	sort.Strings(normalized)
	raw := fmt.Sprintf("%s_part=%s_id=%s", endpoint, part, strings.Join(normalized, ","))
	sum := md5.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func (c *ResponseCache) path(fingerprint string) string {
	return filepath.Join(c.dir, fingerprint+".json")
}

// Get returns the cached payload, or ok=false on miss
func (c *ResponseCache) Get(fingerprint string) ([]byte, bool) {
	data, err := os.ReadFile(c.path(fingerprint))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Put stores a successful response payload under its fingerprint
func (c *ResponseCache) Put(fingerprint string, payload []byte) error {
	if err := os.WriteFile(c.path(fingerprint), payload, 0o644); err != nil {
		return fmt.Errorf("write cache entry %s: %w", fingerprint, err)
	}
	return nil
}
