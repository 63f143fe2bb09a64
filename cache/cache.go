// Package cache provides the full-page cache used by the home listing.
// Rendered bodies are stored as opaque blobs; within the expiry window the
// cached bytes are served verbatim even if the underlying data changed.
package cache

import (
	"context"
	"time"
)

// PageCache stores rendered page bodies keyed by route.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration)
	Clear(ctx context.Context)
}
