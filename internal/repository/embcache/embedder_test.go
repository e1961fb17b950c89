package embcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docsearch/internal/db"
	"github.com/kailas-cloud/docsearch/internal/domain"
)

type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
	calls  int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.calls++
	return m.result, m.err
}

type mockStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func newTestCachedEmbedder(inner domain.Embedder) (*CachedEmbedder, *mockStore) {
	ms := &mockStore{}
	return New(inner, ms, time.Hour, nil, zap.NewNop()), ms
}

func TestEmbed_CacheMiss(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{
		Embedding:    []float32{0.1, 0.2, 0.3},
		PromptTokens: 10,
		TotalTokens:  10,
	}}
	ce, ms := newTestCachedEmbedder(inner)

	var setCalled bool
	var setTTL time.Duration
	ms.setFn = func(_ context.Context, _ string, _ []byte, ttl time.Duration) error {
		setCalled = true
		setTTL = ttl
		return nil
	}

	result, err := ce.Embed(context.Background(), "What color is the sky?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Embedding) != 3 || result.Embedding[0] != 0.1 {
		t.Fatalf("unexpected vector: %v", result.Embedding)
	}
	if result.TotalTokens != 10 {
		t.Errorf("expected real token usage on miss, got %d", result.TotalTokens)
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 inner call, got %d", inner.calls)
	}
	if !setCalled {
		t.Error("expected cache put after miss")
	}
	if setTTL != time.Hour {
		t.Errorf("expected configured TTL, got %v", setTTL)
	}
}

func TestEmbed_CacheHit(t *testing.T) {
	inner := &mockEmbedder{}
	ce, ms := newTestCachedEmbedder(inner)

	cached := vectorToCacheBytes([]float32{0.5, 0.6})
	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return cached, nil
	}

	result, err := ce.Embed(context.Background(), "What color is the sky?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Embedding) != 2 || result.Embedding[1] != 0.6 {
		t.Fatalf("unexpected vector: %v", result.Embedding)
	}
	if result.TotalTokens != 0 {
		t.Errorf("cache hit should cost no tokens, got %d", result.TotalTokens)
	}
	if inner.calls != 0 {
		t.Errorf("inner embedder should not be called on hit, got %d calls", inner.calls)
	}
}

func TestEmbed_StoreErrorDegradesToProvider(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1}}}
	ce, ms := newTestCachedEmbedder(inner)

	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return nil, errors.New("connection reset")
	}
	ms.setFn = func(_ context.Context, _ string, _ []byte, _ time.Duration) error {
		return errors.New("connection reset")
	}

	result, err := ce.Embed(context.Background(), "anything")
	if err != nil {
		t.Fatalf("cache failures must not fail the embed: %v", err)
	}
	if len(result.Embedding) != 1 {
		t.Fatalf("unexpected vector: %v", result.Embedding)
	}
	if inner.calls != 1 {
		t.Errorf("expected fallthrough to inner embedder, got %d calls", inner.calls)
	}
}

func TestEmbed_CorruptCacheEntryIgnored(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.9}}}
	ce, ms := newTestCachedEmbedder(inner)

	// length not a multiple of 4 fails the vector parse
	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return []byte("abc"), nil
	}

	result, err := ce.Embed(context.Background(), "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Embedding[0] != 0.9 {
		t.Errorf("expected provider vector after corrupt cache entry, got %v", result.Embedding)
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 inner call, got %d", inner.calls)
	}
}

func TestEmbed_InnerErrorPropagates(t *testing.T) {
	inner := &mockEmbedder{err: domain.ErrEmbeddingProviderError}
	ce, _ := newTestCachedEmbedder(inner)

	_, err := ce.Embed(context.Background(), "anything")
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Errorf("expected provider error, got %v", err)
	}
}

func TestCacheKey_Deterministic(t *testing.T) {
	ce, _ := newTestCachedEmbedder(&mockEmbedder{})

	k1 := ce.cacheKey("What color is the sky?")
	k2 := ce.cacheKey("What color is the sky?")
	k3 := ce.cacheKey("different question")

	if k1 != k2 {
		t.Error("same text must produce the same cache key")
	}
	if k1 == k3 {
		t.Error("different text must produce different cache keys")
	}
}
