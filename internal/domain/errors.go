package domain

import "errors"

var (
	// ErrEmptyQuery signals an empty or whitespace-only search query.
	ErrEmptyQuery = errors.New("text query is empty")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrStoreUnavailable signals a document store connectivity failure.
	ErrStoreUnavailable = errors.New("document store unavailable")
	// ErrSessionClosed signals a submission to a closed session loop.
	ErrSessionClosed = errors.New("session closed")
	// ErrOutboxFull signals that a session outbox cannot accept more messages.
	ErrOutboxFull = errors.New("session outbox full")
)
