package retrieval

import (
	"context"

	"github.com/kailas-cloud/docsearch/internal/domain"
)

// Index queries the external search index by vector.
type Index interface {
	Query(ctx context.Context, vector []float32, topK int) (domain.RecordStream, error)
}

// Embedder vectorizes query text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// KeywordExtractor derives fallback query terms from a question.
type KeywordExtractor interface {
	Extract(text string) []string
}
