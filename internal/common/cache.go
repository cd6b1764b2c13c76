package common

import (
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

type Cache struct {
	*cache.Cache
}

func NewCache(expirationTime, cleanupTime time.Duration) *Cache {
	return &Cache{cache.New(expirationTime, cleanupTime)}
}

func (c *Cache) Set(key string, value interface{}, expiration ...time.Duration) {
	if len(expiration) > 0 {
		c.Cache.Set(key, value, expiration[0])
		return
	}
	c.Cache.Set(key, value, cache.DefaultExpiration)
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.Cache.Get(key)
}

func (c *Cache) Flush() {
	c.Cache.Flush()
}

func CacheKeyPosts() string {
	return "posts"
}

func CacheKeyPost(slug string) string {
	return "post:" + slug
}

func CacheKeyRecentPosts() string {
	return "recent_posts"
}

// CacheKeySimilarPosts keys on the slug and the category slugs in the order given.
func CacheKeySimilarPosts(slug string, categories []string) string {
	return "similar_posts:" + slug + ":" + strings.Join(categories, ",")
}

func CacheKeyCategories() string {
	return "categories"
}

func CacheKeyComments(slug string) string {
	return "comments:" + slug
}

func CacheKeyFeaturedPosts() string {
	return "featured_posts"
}

func CacheKeyAdjacentPosts(slug string, createdAt time.Time) string {
	return "adjacent_posts:" + slug + ":" + createdAt.UTC().Format(time.RFC3339Nano)
}

func CacheKeyCategoryPosts(slug string) string {
	return "category_posts:" + slug
}
