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

package retrieval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/poiesic/vidrecall/ai"
	"github.com/poiesic/vidrecall/core"
	"github.com/poiesic/vidrecall/storage"
)

// minSimilarity is the relevance floor: chunks at or below it are dropped
// even when they rank inside the top-k.
const minSimilarity float32 = 0.30

// Engine ranks stored chunks against a query by embedding similarity.
//
// Chunks and embeddings are loaded explicitly via Reload, never implicitly
// at construction, so observing a new pipeline run's output is always a
// deliberate act by the caller.
type Engine struct {
	store    storage.ContentStore
	embedder ai.Embedder
	logger   *slog.Logger

	mu         sync.RWMutex
	chunks     []core.Chunk
	embeddings [][]float32
}

// EngineOption configures an Engine.
type EngineOption func(*Engine) error

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a retrieval engine over the given store and embedder.
// Call Reload before the first query.
func NewEngine(store storage.ContentStore, embedder ai.Embedder, opts ...EngineOption) (*Engine, error) {
	if store == nil {
		return nil, ErrContentStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	e := &Engine{
		store:    store,
		embedder: embedder,
		logger:   slog.Default().With("component", "retrieval"),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Reload replaces the engine's in-memory chunks and embeddings with the
// store's current contents. Missing embeddings leave the engine not ready
// rather than failing; a chunk/embedding count mismatch is logged and
// tolerated with degraded ranking.
func (e *Engine) Reload(ctx context.Context) error {
	chunks, err := e.store.ReadChunks(ctx)
	if err != nil {
		return fmt.Errorf("failed to load chunks: %w", err)
	}

	embeddings, err := e.store.ReadEmbeddings(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("failed to load embeddings: %w", err)
		}
		embeddings = nil
	}

	if embeddings != nil && len(embeddings) != len(chunks) {
		e.logger.Warn("embedding count does not match chunk count, ranking degraded",
			"chunks", len(chunks), "embeddings", len(embeddings))
	}

	e.mu.Lock()
	e.chunks = chunks
	e.embeddings = embeddings
	e.mu.Unlock()

	e.logger.Debug("retrieval data reloaded", "chunks", len(chunks), "embeddings", len(embeddings))
	return nil
}

// Ready reports whether both chunks and embeddings are loaded.
func (e *Engine) Ready() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.chunks) > 0 && len(e.embeddings) > 0
}

// FindRelevant returns up to topK loaded chunks ordered by non-increasing
// cosine similarity to the query, keeping only chunks above the relevance
// floor. The result can be shorter than topK or empty.
//
// If embedding the query fails, the first topK chunks are returned unranked
// as an explicit degrade-gracefully policy.
func (e *Engine) FindRelevant(ctx context.Context, query string, topK int) []core.Chunk {
	if topK <= 0 {
		return nil
	}

	e.mu.RLock()
	chunks := e.chunks
	embeddings := e.embeddings
	e.mu.RUnlock()

	if len(chunks) == 0 || len(embeddings) == 0 {
		return nil
	}

	queryVector, err := e.embedder.EmbedText(ctx, query)
	if err != nil {
		e.logger.Warn("query embedding failed, returning unranked chunks", "err", err)
		if topK > len(chunks) {
			topK = len(chunks)
		}
		return slices.Clone(chunks[:topK])
	}

	type scored struct {
		chunk core.Chunk
		score float32
	}
	pairable := len(chunks)
	if len(embeddings) < pairable {
		pairable = len(embeddings)
	}
	results := make([]scored, 0, pairable)
	for i := 0; i < pairable; i++ {
		results = append(results, scored{
			chunk: chunks[i],
			score: cosineSimilarity(queryVector, embeddings[i]),
		})
	}

	slices.SortStableFunc(results, func(a, b scored) int {
		if a.score > b.score {
			return -1
		}
		if a.score < b.score {
			return 1
		}
		return 0
	})

	if len(results) > topK {
		results = results[:topK]
	}

	relevant := make([]core.Chunk, 0, len(results))
	for _, r := range results {
		if r.score > minSimilarity {
			relevant = append(relevant, r.chunk)
		}
	}
	return relevant
}

// SystemStatus returns an introspection snapshot of the engine's loaded data.
func (e *Engine) SystemStatus(ctx context.Context) *core.SystemStatus {
	e.mu.RLock()
	defer e.mu.RUnlock()

	status := &core.SystemStatus{
		ChunksLoaded:     len(e.chunks),
		EmbeddingsLoaded: len(e.embeddings) > 0,
		ModelLoaded:      e.embedder != nil,
		ChunksDirectory:  e.store.ChunksDirectory(),
		Ready:            len(e.chunks) > 0 && len(e.embeddings) > 0,
	}
	if len(e.embeddings) > 0 {
		status.EmbeddingsShape = &core.EmbeddingsShape{
			Rows: len(e.embeddings),
			Dims: len(e.embeddings[0]),
		}
	}
	return status
}
