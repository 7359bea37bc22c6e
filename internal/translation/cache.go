package translation

import (
	"context"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// TranslationCache keeps recent translations in memory
type TranslationCache struct {
	items *cache.Cache
}

// NewTranslationCache creates a new translation cache whose entries expire
// after ttlSeconds
func NewTranslationCache(ttlSeconds int) *TranslationCache {
	ttl := time.Duration(ttlSeconds) * time.Second
	return &TranslationCache{
		items: cache.New(ttl, 2*ttl),
	}
}

// Add adds a translation to the cache
func (tc *TranslationCache) Add(key, translation string) {
	tc.items.SetDefault(key, translation)
}

// Get retrieves a translation from the cache
func (tc *TranslationCache) Get(key string) (string, bool) {
	v, ok := tc.items.Get(key)
	if !ok {
		return "", false
	}
	translation, ok := v.(string)
	return translation, ok
}

// GetAll returns all unexpired cached translations
func (tc *TranslationCache) GetAll() map[string]string {
	result := make(map[string]string)
	for k, item := range tc.items.Items() {
		if s, ok := item.Object.(string); ok {
			result[k] = s
		}
	}
	return result
}

// Flush drops every cached translation
func (tc *TranslationCache) Flush() {
	tc.items.Flush()
}

// CacheKey builds the cache key of one request
func CacheKey(text, sourceCode, targetCode string) string {
	return sourceCode + "|" + targetCode + "|" + strings.TrimSpace(text)
}

type cachedBackend struct {
	next  Backend
	cache *TranslationCache
}

// WithCache serves repeated requests from c instead of calling next.
func WithCache(next Backend, c *TranslationCache) Backend {
	return &cachedBackend{next: next, cache: c}
}

func (b *cachedBackend) Translate(ctx context.Context, text, sourceCode, targetCode string) (string, error) {
	key := CacheKey(text, sourceCode, targetCode)
	if out, ok := b.cache.Get(key); ok {
		return out, nil
	}

	out, err := b.next.Translate(ctx, text, sourceCode, targetCode)
	if err != nil {
		return "", err
	}
	b.cache.Add(key, out)
	return out, nil
}

func (b *cachedBackend) Name() string   { return b.next.Name() }
func (b *cachedBackend) Degraded() bool { return b.next.Degraded() }
