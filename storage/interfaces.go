package storage

import (
	"context"

	"github.com/poiesic/vidrecall/core"
)

// Slot names the text records the pipeline stages and consumers share.
// The names are stable: they map directly onto the on-disk file names the
// rest of the toolchain (and the excluded web layer) expects.
type Slot string

const (
	// SlotSourceTranscript is the raw transcript written by the external transcriber.
	SlotSourceTranscript Slot = "transcript"
	// SlotEnglishTranscript is written by the translate stage.
	SlotEnglishTranscript Slot = "transcript_english"
	// SlotCleanedTranscript is written by the clean stage.
	SlotCleanedTranscript Slot = "cleaned_transcript"
	// SlotSummary is written by the summary consumer.
	SlotSummary Slot = "summary"
	// SlotNotes is written by the notes generator.
	SlotNotes Slot = "detailed_notes"
)

// ContentStore provides the named slots shared between the pipeline and its
// consumers. Slots are independently readable and writable; the pipeline
// orchestrator is the sole writer during a job, consumers are read-only.
//
// Implementations must tolerate concurrent readers. A read racing a purge
// may observe a missing slot (surfaced as ErrNotFound), never a torn one.
type ContentStore interface {
	// ReadSlot returns the slot's text.
	// Returns ErrNotFound if the slot has never been written or was purged.
	ReadSlot(ctx context.Context, slot Slot) (string, error)

	// WriteSlot stores text under the slot, replacing any previous value.
	WriteSlot(ctx context.Context, slot Slot, text string) error

	// DeleteSlot removes the slot. Deleting an absent slot is not an error.
	DeleteSlot(ctx context.Context, slot Slot) error

	// HasSlot reports whether the slot currently holds data.
	HasSlot(ctx context.Context, slot Slot) bool

	// WriteChunks replaces the stored chunk sequence. Chunks are persisted
	// as individually addressable records keyed by their index.
	WriteChunks(ctx context.Context, chunks []core.Chunk) error

	// ReadChunks returns the stored chunk sequence in canonical order:
	// ascending by the first integer in each record's name, which must
	// match the embedding collection's index order exactly.
	// Returns an empty slice if no chunks are stored.
	ReadChunks(ctx context.Context) ([]core.Chunk, error)

	// HasChunk reports whether the chunk with the given index exists.
	HasChunk(ctx context.Context, index int) bool

	// WriteEmbeddings replaces the stored embedding collection.
	// Embeddings are aligned by ordinal position with the chunk sequence.
	WriteEmbeddings(ctx context.Context, embeddings [][]float32) error

	// ReadEmbeddings returns the stored embedding collection.
	// Returns ErrNotFound if none has been written.
	ReadEmbeddings(ctx context.Context) ([][]float32, error)

	// Purge deletes every slot a pipeline run produces: the english and
	// cleaned transcripts, summary, notes, all chunks, and the embedding
	// collection. The source transcript survives. Purge is idempotent.
	Purge(ctx context.Context) error

	// ChunksDirectory returns the path-like location chunk records are
	// stored under, for status introspection.
	ChunksDirectory() string
}

// JobLedger records explicit pipeline job state: one record per run with
// atomic stage transitions. The ledger is the authoritative job history;
// the slot-derived status view is kept alongside it for compatibility.
type JobLedger interface {
	// StartJob persists a new job record. The record must validate and its
	// ID must be set. The new job becomes the latest job.
	StartJob(ctx context.Context, record *core.JobRecord) error

	// AdvanceStage atomically moves a job to the given stage.
	// Returns ErrNotFound if the job does not exist.
	AdvanceStage(ctx context.Context, id core.ID, stage core.JobStage) error

	// CompleteJob marks the job finished, setting CompletedAt and StageDone.
	// Returns ErrNotFound if the job does not exist.
	CompleteJob(ctx context.Context, id core.ID) error

	// FailJob marks the job finished with a stage error message.
	// Returns ErrNotFound if the job does not exist.
	FailJob(ctx context.Context, id core.ID, stageErr string) error

	// GetJob retrieves a job record by ID.
	// Returns ErrNotFound if the job does not exist.
	GetJob(ctx context.Context, id core.ID) (*core.JobRecord, error)

	// LatestJob returns the most recently started job, or nil if the
	// ledger is empty.
	LatestJob(ctx context.Context) (*core.JobRecord, error)

	// Close closes the ledger backend and releases resources.
	Close() error
}
