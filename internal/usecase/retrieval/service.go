package retrieval

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docsearch/internal/domain"
	"github.com/kailas-cloud/docsearch/internal/metrics"
)

// DefaultTopK is the number of hits requested per index query when the
// caller does not configure one.
const DefaultTopK = 5

// Service executes document searches with a single keyword-based
// fallback, then formats the hits for a downstream prompt context.
// It holds no mutable state; concurrent callers need no coordination.
type Service struct {
	index   Index
	embed   Embedder
	extract KeywordExtractor
	topK    int
	logger  *zap.Logger
}

// New creates a retrieval service. topK values below 1 fall back to
// DefaultTopK.
func New(index Index, embed Embedder, extract KeywordExtractor, topK int, logger *zap.Logger) *Service {
	if topK < 1 {
		topK = DefaultTopK
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{index: index, embed: embed, extract: extract, topK: topK, logger: logger}
}

// Search runs the primary query for the question verbatim. If it yields
// zero hits, one fallback query built from extracted keywords is issued.
// The two attempts are never merged: whichever ran last is returned
// as-is, in the index's own ranking order.
//
// Transport and provider failures propagate to the caller unrecovered.
// The fallback exists solely for the zero-results case.
func (s *Service) Search(ctx context.Context, question string) ([]domain.SearchHit, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domain.ErrEmptyQuestion
	}

	hits, err := s.queryOnce(ctx, question)
	if err != nil {
		return nil, err
	}
	if len(hits) > 0 {
		metrics.SearchRequestsTotal.WithLabelValues(metrics.SearchOutcomePrimary).Inc()
		metrics.SearchHitsReturned.Observe(float64(len(hits)))
		return hits, nil
	}

	keywords := s.extract.Extract(question)
	if len(keywords) == 0 {
		s.logger.Debug("no keywords extracted, skipping fallback",
			zap.String("question", question))
		metrics.SearchRequestsTotal.WithLabelValues(metrics.SearchOutcomeEmpty).Inc()
		metrics.SearchHitsReturned.Observe(0)
		return nil, nil
	}

	fallback := strings.Join(keywords, " ")
	s.logger.Debug("primary query empty, trying keyword fallback",
		zap.String("fallback_query", fallback))
	metrics.SearchFallbackTotal.Inc()

	hits, err = s.queryOnce(ctx, fallback)
	if err != nil {
		return nil, err
	}

	outcome := metrics.SearchOutcomeFallback
	if len(hits) == 0 {
		outcome = metrics.SearchOutcomeEmpty
	}
	metrics.SearchRequestsTotal.WithLabelValues(outcome).Inc()
	metrics.SearchHitsReturned.Observe(float64(len(hits)))
	return hits, nil
}

// PerformSearch is the operation exposed to transports: search plus
// formatting, always returning a non-empty text block.
func (s *Service) PerformSearch(ctx context.Context, question string) (string, error) {
	hits, err := s.Search(ctx, question)
	if err != nil {
		return "", err
	}
	return Format(question, hits), nil
}

// queryOnce embeds the query text, runs one index query, and drains the
// record stream fully before returning. Partial consumption would leave
// the fallback decision ambiguous.
func (s *Service) queryOnce(ctx context.Context, query string) ([]domain.SearchHit, error) {
	embResult, err := s.embed.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	stream, err := s.index.Query(ctx, embResult.Embedding, s.topK)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}
	defer stream.Close()

	var hits []domain.SearchHit
	for {
		rec, err := stream.Next(ctx)
		if errors.Is(err, io.EOF) {
			return hits, nil
		}
		if err != nil {
			return nil, fmt.Errorf("drain results: %w", err)
		}
		hits = append(hits, domain.HitFromRecord(rec))
	}
}
