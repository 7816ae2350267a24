package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Language tags the language state of a transcript.
type Language string

const (
	// LanguageSource marks a transcript in its original spoken language.
	LanguageSource Language = "source"
	// LanguageEnglish marks a transcript that has been translated to English.
	LanguageEnglish Language = "english"
)

// Transcript is the plain-text output of transcribing one video,
// tagged with its language state.
type Transcript struct {
	Text     string
	Language Language
}

// HasContent reports whether the transcript carries real content.
// The threshold matches the readiness checks used throughout the system.
func (t Transcript) HasContent() bool {
	return MeaningfulText(t.Text)
}

// Chunk is one ordered, bounded segment of the cleaned transcript.
// Index position is significant: it pairs the chunk with its embedding.
type Chunk struct {
	Index int
	Text  string
}

// Meaningful reports whether the chunk is worth indexing.
func (c Chunk) Meaningful() bool {
	trimmed := strings.TrimSpace(c.Text)
	return len(trimmed) > minChunkChars
}

// JobStage identifies one step of the processing pipeline.
type JobStage int

const (
	// StagePurge removes the previous job's slots.
	StagePurge JobStage = iota + 1
	// StageTranslate produces the English transcript.
	StageTranslate
	// StageClean normalizes the English transcript.
	StageClean
	// StageChunk splits the cleaned transcript into ordered chunks.
	StageChunk
	// StageVectorize computes one embedding per chunk.
	StageVectorize
	// StageDone marks a finished job.
	StageDone
)

// String returns the stage name used in logs and ledger output.
func (s JobStage) String() string {
	switch s {
	case StagePurge:
		return "purge"
	case StageTranslate:
		return "translate"
	case StageClean:
		return "clean"
	case StageChunk:
		return "chunk"
	case StageVectorize:
		return "vectorize"
	case StageDone:
		return "done"
	}
	return "unknown"
}

// JobRecord is the explicit ledger entry for one pipeline run.
// Stage transitions are recorded atomically as the job advances.
type JobRecord struct {
	Id          ID
	Stage       JobStage
	StartedAt   time.Time
	CompletedAt time.Time // zero until the job finishes or fails
	Error       string    // empty unless the job failed
}

// Failed reports whether the job ended with a stage error.
func (j *JobRecord) Failed() bool {
	return j.Error != ""
}

// Finished reports whether the job ran to completion or failure.
func (j *JobRecord) Finished() bool {
	return !j.CompletedAt.IsZero()
}

// ProcessingStatus is the coarse pipeline status derived from which
// content store slots currently hold data.
type ProcessingStatus string

const (
	// StatusProcessing means no expected slot has been written yet.
	StatusProcessing ProcessingStatus = "processing"
	// StatusPartial means some but not all expected slots exist.
	StatusPartial ProcessingStatus = "partial"
	// StatusCompleted means every expected slot exists.
	StatusCompleted ProcessingStatus = "completed"
)

// Record status vocabulary shared by the Q&A and notes consumers.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusPending = "processing"
)

// Answer is the ephemeral result of one question against the Q&A engine.
type Answer struct {
	Status       string        `json:"status"`
	Answer       string        `json:"answer"`
	Confidence   float64       `json:"confidence"`
	HasContext   bool          `json:"has_context"`
	SystemStatus *SystemStatus `json:"system_status,omitempty"`
}

// SystemStatus is the Q&A engine's introspection snapshot.
type SystemStatus struct {
	ChunksLoaded     int              `json:"chunks_loaded"`
	EmbeddingsLoaded bool             `json:"embeddings_loaded"`
	ModelLoaded      bool             `json:"model_loaded"`
	GeneratorLoaded  bool             `json:"generator_loaded"`
	ChunksDirectory  string           `json:"chunks_directory,omitempty"`
	Ready            bool             `json:"ready"`
	EmbeddingsShape  *EmbeddingsShape `json:"embeddings_shape,omitempty"`
}

// EmbeddingsShape describes the loaded embedding collection.
type EmbeddingsShape struct {
	Rows int `json:"rows"`
	Dims int `json:"dims"`
}

// NotesResult is the outcome of one notes generation run.
type NotesResult struct {
	Status         string  `json:"status"`
	Notes          string  `json:"notes,omitempty"`
	WordCount      int     `json:"word_count,omitempty"`
	ProcessingTime float64 `json:"processing_time,omitempty"` // seconds
	Message        string  `json:"message,omitempty"`
}
