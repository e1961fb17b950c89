package domain

import "errors"

var (
	// ErrEmptyQuestion signals a blank search question.
	ErrEmptyQuestion = errors.New("question is empty")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrIndexUnavailable signals that the search index cannot be reached.
	ErrIndexUnavailable = errors.New("search index unavailable")
)
