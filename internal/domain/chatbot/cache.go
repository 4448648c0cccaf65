package chatbot

import (
	"strings"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru"
)

const (
	// DefaultCacheSize bounds the response cache when no size is configured.
	DefaultCacheSize = 256
	// cacheableMessageChars is the exclusive upper bound on message length for caching.
	cacheableMessageChars = 100
)

// responseCache maps normalized user messages to accepted replies.
// Least recently used entries are evicted once the cache is full.
type responseCache struct {
	entries *lru.Cache
}

func newResponseCache(size int) (*responseCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &responseCache{entries: c}, nil
}

func (c *responseCache) get(key string) (string, bool) {
	v, ok := c.entries.Get(key)
	if !ok {
		return "", false
	}
	text, ok := v.(string)
	return text, ok
}

func (c *responseCache) put(key, text string) {
	c.entries.Add(key, text)
}

func (c *responseCache) purge() {
	c.entries.Purge()
}

func (c *responseCache) len() int {
	return c.entries.Len()
}

// cacheKey normalizes a message so case and surrounding whitespace do not matter.
func cacheKey(message string) string {
	return strings.ToLower(strings.TrimSpace(message))
}

func cacheable(message string) bool {
	return utf8.RuneCountInString(message) < cacheableMessageChars
}
