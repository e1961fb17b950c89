// Package db defines the store contract for the search index backend.
package db

import (
	"context"
	"time"
)

// Store is the database facade combining the sub-interfaces this service
// needs. Consumers should depend on the narrow sub-interfaces (ISP).
type Store interface {
	Pinger
	KVStore
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides simple key-value operations (embedding cache).
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Searcher provides KNN search over FT indexes.
type Searcher interface {
	SearchKNN(ctx context.Context, q *KNNQuery) (*SearchResult, error)
}

// KNNQuery describes a vector similarity search.
type KNNQuery struct {
	IndexName    string
	Vector       []float32
	K            int
	ReturnFields []string
}

// SearchEntry is one raw search hit with its parsed fields.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}

// SearchResult holds FT.SEARCH output in emission order.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}
