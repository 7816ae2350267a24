package pipeline

import (
	"context"

	"github.com/poiesic/vidrecall/core"
	"github.com/poiesic/vidrecall/storage"
)

// Tracker derives a coarse processing status from which content store slots
// currently hold data. It is a deliberately loose view kept for
// compatibility; the job ledger holds the authoritative per-run state.
type Tracker struct {
	store storage.ContentStore
}

// NewTracker creates a status tracker over the given content store.
func NewTracker(store storage.ContentStore) (*Tracker, error) {
	if store == nil {
		return nil, ErrContentStoreRequired
	}
	return &Tracker{store: store}, nil
}

// Status reports completed when the cleaned transcript, english transcript,
// and first chunk all exist; partial when some do; processing when none do.
// It does not verify vectorization: retrieval readiness is checked
// separately by the retrieval engine.
func (t *Tracker) Status(ctx context.Context) core.ProcessingStatus {
	present := 0
	if t.store.HasSlot(ctx, storage.SlotCleanedTranscript) {
		present++
	}
	if t.store.HasSlot(ctx, storage.SlotEnglishTranscript) {
		present++
	}
	if t.store.HasChunk(ctx, 0) {
		present++
	}

	switch present {
	case 3:
		return core.StatusCompleted
	case 0:
		return core.StatusProcessing
	default:
		return core.StatusPartial
	}
}

// IsReady reports whether at least one of the cleaned or english transcript
// slots holds real content.
func (t *Tracker) IsReady(ctx context.Context) bool {
	for _, slot := range []storage.Slot{storage.SlotCleanedTranscript, storage.SlotEnglishTranscript} {
		text, err := t.store.ReadSlot(ctx, slot)
		if err == nil && core.MeaningfulText(text) {
			return true
		}
	}
	return false
}
