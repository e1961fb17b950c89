// Package index adapts the store's FT.SEARCH output into the loose record
// stream the retrieval use case consumes.
package index

import (
	"context"
	"fmt"
	"io"

	"github.com/kailas-cloud/docsearch/internal/db"
	"github.com/kailas-cloud/docsearch/internal/domain"
)

// Field names inside the index. The double underscore keeps stored fields
// from colliding with user metadata, same convention as ingestion;
// __vector_score is yielded by the KNN clause.
const (
	fieldContent = "__content"
	fieldTitle   = "__title"
	fieldScore   = "__vector_score"
)

// store is the consumer interface for index queries (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Repo executes index queries and yields records in ranking order.
type Repo struct {
	store     store
	indexName string
}

// New creates an index repository for the named FT index.
func New(s store, indexName string) *Repo {
	return &Repo{store: s, indexName: fmt.Sprintf("%s%s:idx", domain.KeyPrefix, indexName)}
}

// Query runs one KNN search and returns the matched records as an ordered
// stream. The store reply is fetched in full; the stream view keeps the
// consumer contract cancelable and uniform with other backends.
func (r *Repo) Query(ctx context.Context, vector []float32, topK int) (domain.RecordStream, error) {
	q := &db.KNNQuery{
		IndexName:    r.indexName,
		Vector:       vector,
		K:            topK,
		ReturnFields: []string{fieldContent, fieldTitle, fieldScore},
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrIndexUnavailable, err)
	}

	records := make([]domain.Record, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		records = append(records, recordFromEntry(entry))
	}

	return &recordStream{records: records}, nil
}

// recordFromEntry renames the stored fields to the canonical record keys.
// Missing fields are simply absent; domain.HitFromRecord zero-defaults them.
func recordFromEntry(entry db.SearchEntry) domain.Record {
	rec := domain.Record{domain.FieldScore: entry.Score}
	if content, ok := entry.Fields[fieldContent]; ok {
		rec[domain.FieldContent] = content
	}
	if title, ok := entry.Fields[fieldTitle]; ok {
		rec[domain.FieldTitle] = title
	}
	return rec
}

// recordStream yields records one at a time, honoring context cancellation.
type recordStream struct {
	records []domain.Record
	pos     int
}

func (s *recordStream) Next(ctx context.Context) (domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.pos >= len(s.records) {
		return nil, io.EOF
	}
	rec := s.records[s.pos]
	s.pos++
	return rec, nil
}

func (s *recordStream) Close() { s.records = nil }
