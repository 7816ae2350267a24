package reembed

import "errors"

var (
	// ErrContentStoreRequired is returned when no content store is provided.
	ErrContentStoreRequired = errors.New("content store is required")

	// ErrEmbedderRequired is returned when no embedder is provided.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrNoChunks is returned when the store holds no chunks to embed.
	ErrNoChunks = errors.New("no chunks to reembed")

	// ErrInvalidMaxAttempts is returned when maxAttempts is not positive.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
