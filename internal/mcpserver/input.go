package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/outdiff"
	"github.com/erraggy/outdiff/differrors"
	"github.com/erraggy/outdiff/jsondiff"
	"github.com/erraggy/outdiff/jsonvalue"
)

// docInput represents the three ways a document can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type docInput struct {
	File    string  `json:"file,omitempty"    jsonschema:"Path to a file on disk"`
	URL     string  `json:"url,omitempty"     jsonschema:"URL to fetch the document from"`
	Content *string `json:"content,omitempty" jsonschema:"Inline document content; may be empty"`
}

// document is a resolved input. The JSON form is parsed on first use and
// kept alongside the text, so a cached document is parsed at most once.
type document struct {
	text string

	mu     sync.Mutex
	parsed bool
	value  *jsonvalue.Value
}

func newDocument(text string) *document {
	return &document{text: text}
}

// JSON returns the parsed document, nil for a whitespace-only input. Depth is
// not limited here; callers enforce their own limit through DiffValues.
// Failed parses are not remembered so the error always names the side asked
// for.
func (d *document) JSON(side differrors.Side) (*jsonvalue.Value, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.parsed {
		return d.value, nil
	}
	v, err := jsondiff.ParseDocument(d.text, side, 0)
	if err != nil {
		return nil, err
	}
	d.value, d.parsed = v, true
	return v, nil
}

// cacheEntry holds a cached document with LRU ordering and TTL expiry.
type cacheEntry struct {
	doc       *document
	insertAt  time.Time
	expiresAt time.Time
}

// docCacheStore provides a session-scoped cache for resolved documents.
// File inputs are keyed by (absolutePath, modTime). Content inputs are keyed
// by a SHA-256 hash. URL inputs are keyed by URL string.
// Entries have per-type TTLs and a background sweeper removes expired entries.
type docCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var docCache = &docCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached document or nil. Expired entries are lazily removed.
func (c *docCacheStore) get(key string) *document {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		// Touch entry for LRU.
		e.insertAt = time.Now()
		return e.doc
	}
	return nil
}

// putWithTTL stores a document with a specific TTL, evicting the oldest entry if at capacity.
func (c *docCacheStore) putWithTTL(key string, doc *document, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{doc: doc, insertAt: now, expiresAt: now.Add(ttl)}

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *docCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes expired entries.
// It is safe to call multiple times; only the first call spawns a sweeper.
// It stops when ctx is cancelled.
func (c *docCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *docCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *docCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey creates a cache key for the given input, or "" when the input
// cannot be cached.
func makeCacheKey(d docInput) string {
	switch {
	case d.File != "":
		absPath, err := filepath.Abs(d.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "" // Can't stat, don't cache.
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case d.Content != nil:
		h := sha256.Sum256([]byte(*d.Content))
		return fmt.Sprintf("content:%s", hex.EncodeToString(h[:]))
	case d.URL != "":
		return fmt.Sprintf("url:%s", d.URL)
	default:
		return ""
	}
}

// resolve loads the document from whichever input was provided, using the
// cache for all three input kinds.
func (d docInput) resolve(ctx context.Context) (*document, error) {
	count := 0
	if d.File != "" {
		count++
	}
	if d.URL != "" {
		count++
	}
	if d.Content != nil {
		count++
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", count)
	}

	if d.Content != nil && int64(len(*d.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OUTDIFF_MCP_MAX_INLINE_SIZE to increase",
			len(*d.Content), cfg.MaxInlineSize)
	}

	var key string
	var ttl time.Duration
	if cfg.CacheEnabled {
		key = makeCacheKey(d)
		switch {
		case d.File != "":
			ttl = cfg.CacheFileTTL
		case d.URL != "":
			ttl = cfg.CacheURLTTL
		default:
			ttl = cfg.CacheContentTTL
		}
	}

	if key != "" {
		if cached := docCache.get(key); cached != nil {
			return cached, nil
		}
	}

	var text string
	switch {
	case d.File != "":
		data, err := os.ReadFile(d.File) //nolint:gosec // G304: reading client-named files is the tool's purpose
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		text = string(data)
	case d.URL != "":
		data, err := fetch(ctx, d.URL)
		if err != nil {
			return nil, err
		}
		text = string(data)
	default:
		text = *d.Content
	}

	doc := newDocument(text)
	if key != "" {
		docCache.putWithTTL(key, doc, ttl)
	}
	return doc, nil
}

// fetch downloads url, refusing bodies over cfg.MaxFetchSize.
func fetch(ctx context.Context, url string) ([]byte, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	if !cfg.AllowPrivateIPs {
		client = newSafeHTTPClient()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	req.Header.Set("User-Agent", outdiff.UserAgent())
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch url: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch url: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, cfg.MaxFetchSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(data)) > cfg.MaxFetchSize {
		return nil, fmt.Errorf("response body exceeds maximum %d bytes; set OUTDIFF_MCP_MAX_FETCH_SIZE to increase", cfg.MaxFetchSize)
	}
	return data, nil
}
