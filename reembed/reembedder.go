// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package reembed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/vidrecall/ai"
	"github.com/poiesic/vidrecall/storage"
)

// Config holds configuration for the reembedding operation.
type Config struct {
	// BatchSize is the number of chunks sent to the embedder per call
	BatchSize int

	// ReportInterval is how often to report progress (number of chunks)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed batches
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      32,
		ReportInterval: 32,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reembedder regenerates the embedding matrix for the chunks already in the
// content store, without re-running translation, cleaning, or chunking. Used
// after switching embedding models.
type Reembedder struct {
	store    storage.ContentStore
	embedder ai.Embedder
	config   *Config
	progress io.Writer
	logger   *slog.Logger
}

// NewReembedder creates a new reembedder.
// progress: where to write progress output (typically os.Stderr); nil
// discards it.
func NewReembedder(store storage.ContentStore, embedder ai.Embedder, config *Config, progress io.Writer) (*Reembedder, error) {
	if store == nil {
		return nil, ErrContentStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Reembedder{
		store:    store,
		embedder: embedder,
		config:   config,
		progress: progress,
		logger:   slog.Default().With("component", "reembed"),
	}, nil
}

// Run executes the reembedding operation. Every chunk in the store is
// embedded again and the embedding matrix is replaced in one write, so a
// failure partway leaves the previous embeddings intact.
func (r *Reembedder) Run(ctx context.Context) error {
	chunks, err := r.store.ReadChunks(ctx)
	if err != nil {
		return fmt.Errorf("failed to read chunks: %w", err)
	}
	if len(chunks) == 0 {
		fmt.Fprintf(r.progress, "No chunks found in store (0 chunks)\n")
		return ErrNoChunks
	}

	fmt.Fprintf(r.progress, "Starting reembedding of %d chunks (batch size: %d)\n",
		len(chunks), r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, len(chunks), r.config.ReportInterval)
	tracker.Start()

	embeddings := make([][]float32, 0, len(chunks))
	for start := 0; start < len(chunks); start += r.config.BatchSize {
		end := min(start+r.config.BatchSize, len(chunks))

		texts := make([]string, 0, end-start)
		for _, chunk := range chunks[start:end] {
			texts = append(texts, chunk.Text)
		}

		var vectors [][]float32
		err := retryBatch(ctx, r.logger, func() error {
			var embedErr error
			vectors, embedErr = r.embedder.EmbedTexts(ctx, texts)
			return embedErr
		}, r.config.MaxRetries, r.config.RetryDelay)
		if err != nil {
			return fmt.Errorf("failed to embed batch at chunk %d: %w", start, err)
		}
		if len(vectors) != len(texts) {
			return fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(texts))
		}

		embeddings = append(embeddings, vectors...)
		tracker.Update(len(embeddings))
	}

	if err := r.store.WriteEmbeddings(ctx, embeddings); err != nil {
		return fmt.Errorf("failed to write embeddings: %w", err)
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reembedding complete. Processed %d chunks in %v (%.1f chunks/sec)\n",
		len(chunks), elapsed.Round(time.Second), float64(len(chunks))/elapsed.Seconds())

	return nil
}
