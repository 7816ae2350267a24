package notes

import "errors"

var (
	// ErrContentStoreRequired is returned when a content store is not provided.
	ErrContentStoreRequired = errors.New("content store required")

	// ErrNoTranscript indicates no transcript slot holds usable content.
	ErrNoTranscript = errors.New("no transcript available")
)
