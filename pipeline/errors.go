package pipeline

import "errors"

var (
	// ErrContentStoreRequired is returned when a content store is not provided.
	ErrContentStoreRequired = errors.New("content store required")

	// ErrJobLedgerRequired is returned when a job ledger is not provided.
	ErrJobLedgerRequired = errors.New("job ledger required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrSourceTranscriptMissing is returned when a run is triggered without
	// a usable source transcript in the content store.
	ErrSourceTranscriptMissing = errors.New("source transcript missing or too short")

	// ErrNoChunksProduced is returned when chunking yields no usable chunks.
	ErrNoChunksProduced = errors.New("chunking produced no usable chunks")
)
