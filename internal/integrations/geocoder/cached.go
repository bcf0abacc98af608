package geocoder

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"

	"github.com/BearBump/RouteBox/internal/cache"
)

// Cached memoizes successful lookups in a BytesCache. Cache failures fall
// through to the wrapped client.
type Cached struct {
	next  Client
	cache cache.BytesCache
	ttl   time.Duration
}

func NewCached(next Client, c cache.BytesCache, ttl time.Duration) *Cached {
	return &Cached{next: next, cache: c, ttl: ttl}
}

func (c *Cached) Geocode(ctx context.Context, address string) (string, error) {
	key := cacheKey(address)
	if b, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		return string(b), nil
	} else if err != nil {
		slog.Warn("geocode cache get", "error", err.Error())
	}

	p, err := c.next.Geocode(ctx, address)
	if err != nil {
		return "", err
	}
	if err := c.cache.Set(ctx, key, []byte(p), c.ttl); err != nil {
		slog.Warn("geocode cache set", "error", err.Error())
	}
	return p, nil
}

func cacheKey(address string) string {
	norm := strings.ToLower(strings.Join(strings.Fields(address), " "))
	sum := sha1.Sum([]byte(norm))
	return "geocode:" + hex.EncodeToString(sum[:])
}
