package domain

import (
	"context"
	"strconv"
)

// KeyPrefix namespaces every key docsearch touches in the index store.
const KeyPrefix = "docsearch:"

// Record field names — the external contract of the search index.
const (
	FieldContent = "content"
	FieldTitle   = "title"
	FieldScore   = "score"
)

// Record is one loosely-typed record as emitted by the search index.
type Record map[string]any

// RecordStream is an ordered, cancelable stream of index records.
// Next returns io.EOF after the last record. Callers must Close the
// stream when done.
type RecordStream interface {
	Next(ctx context.Context) (Record, error)
	Close()
}

// SearchHit is one matched chunk from the index, in the index's own
// ranking order. Hits are never re-sorted or mutated after creation.
type SearchHit struct {
	Content        string
	SourceTitle    string
	RelevanceScore float64
}

// HitFromRecord maps a loose index record onto a SearchHit. Missing or
// mistyped fields default to the zero value; this never fails.
func HitFromRecord(rec Record) SearchHit {
	return SearchHit{
		Content:        stringField(rec, FieldContent),
		SourceTitle:    stringField(rec, FieldTitle),
		RelevanceScore: floatField(rec, FieldScore),
	}
}

func stringField(rec Record, name string) string {
	if v, ok := rec[name].(string); ok {
		return v
	}
	return ""
}

func floatField(rec Record, name string) float64 {
	switch v := rec[name].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return 0
}
