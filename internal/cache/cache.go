// Package cache is a small JSON key/value cache used for guide reads.
package cache

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cache stores JSON-encoded values by key. A miss is (false, nil).
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Noop never stores anything; it is used when REDIS_URL is unset.
type Noop struct{}

func (Noop) GetJSON(context.Context, string, any) (bool, error)        { return false, nil }
func (Noop) SetJSON(context.Context, string, any, time.Duration) error { return nil }
func (Noop) Del(context.Context, ...string) error                      { return nil }

// GuideKey is the cache key of a guide. It always uses the lowercase hex
// form so that every spelling of the same id shares one entry.
func GuideKey(id primitive.ObjectID) string { return "guide:" + id.Hex() }
