package ports

import (
	"context"
	"time"
)

// Cache for resolved addresses, keyed by the normalized query string.
// A miss is (zero value, false, nil error); errors are reserved for the
// backing store failing.
type GeocodeCache interface {
	Get(ctx context.Context, query string) (ResolvedAddress, bool, error)
	Put(ctx context.Context, query string, resolved ResolvedAddress) error
}

// Cache for free-text route assessments, keyed by origin|destination|date.
// Entries carry a TTL since weather assessments go stale.
type AssessmentCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key string, assessment string, ttl time.Duration) error
}
