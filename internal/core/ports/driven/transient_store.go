// Package driven defines the driven-side ports: interfaces the core depends
// on and adapters implement (transient storage, vendor transport).
package driven

import (
	"context"
	"time"
)

// TransientStore is the expiring key-value store used for OAuth state and
// credential caching. Keys are namespaced per integration, org and user.
type TransientStore interface {
	// Put stores a value under key with the given expiry.
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get returns the value for key, or (nil, nil) when the key is absent
	// or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
