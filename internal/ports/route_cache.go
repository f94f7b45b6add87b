package ports

import "context"

// Port: persistent cache for directions results, keyed by the ordered stop
// coordinates of the query. Implementations must tolerate concurrent use.
type RouteCache interface {
	// Get returns the cached result for key, or (nil, nil) on a miss.
	Get(ctx context.Context, key string) (*RouteResult, error)
	// Put stores a result under key, replacing any existing entry.
	Put(ctx context.Context, key string, result *RouteResult) error
}
