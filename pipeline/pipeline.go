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

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/vidrecall/ai"
	"github.com/poiesic/vidrecall/core"
	"github.com/poiesic/vidrecall/storage"
)

// Pipeline orchestrates one processing job: purge, translate, clean, chunk,
// vectorize. Jobs run on a worker pool of size 1, so a second trigger queues
// behind the running job instead of racing it for the content store.
type Pipeline struct {
	store    storage.ContentStore
	ledger   storage.JobLedger
	provider ai.Provider
	pool     *ants.Pool
	chunker  *chunker
	logger   *slog.Logger

	tokenBudget      int
	overlapSentences int
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithChunking sets the chunker's token budget and sentence overlap.
func WithChunking(tokenBudget, overlapSentences int) Option {
	return func(p *Pipeline) error {
		if tokenBudget <= 0 {
			return fmt.Errorf("token budget must be positive, got %d", tokenBudget)
		}
		if overlapSentences < 0 {
			return fmt.Errorf("sentence overlap cannot be negative, got %d", overlapSentences)
		}
		p.tokenBudget = tokenBudget
		p.overlapSentences = overlapSentences
		return nil
	}
}

// NewPipeline creates a new processing pipeline.
func NewPipeline(
	store storage.ContentStore,
	ledger storage.JobLedger,
	provider ai.Provider,
	opts ...Option,
) (*Pipeline, error) {
	if store == nil {
		return nil, ErrContentStoreRequired
	}
	if ledger == nil {
		return nil, ErrJobLedgerRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	// Pool size 1: jobs serialize instead of last-writer-wins.
	pool, err := ants.NewPool(1)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		store:            store,
		ledger:           ledger,
		provider:         provider,
		pool:             pool,
		logger:           slog.Default().With("component", "pipeline"),
		tokenBudget:      defaultTokenBudget,
		overlapSentences: defaultOverlapSentences,
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	p.chunker = newChunker(p.tokenBudget, p.overlapSentences, p.logger)

	return p, nil
}

// Run submits a processing job for the current source transcript and returns
// immediately. Stage failures are recorded in the ledger and logged; they
// never reach the trigger. Only submission itself can fail.
func (p *Pipeline) Run() error {
	return p.pool.Submit(func() {
		if err := p.execute(context.Background()); err != nil {
			p.logger.Error("processing job failed", "err", err)
		}
	})
}

// RunAndWait submits a processing job and blocks until it finishes,
// returning the job's error. Intended for CLI use and tests; it goes through
// the same pool, so it still serializes with Run-submitted jobs.
func (p *Pipeline) RunAndWait(ctx context.Context) error {
	done := make(chan error, 1)
	if err := p.pool.Submit(func() {
		done <- p.execute(ctx)
	}); err != nil {
		return err
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release releases the worker pool. The pipeline should not be used after
// calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// execute runs one job end to end. The first stage error is terminal:
// recorded in the ledger, then returned.
func (p *Pipeline) execute(ctx context.Context) error {
	source, err := p.store.ReadSlot(ctx, storage.SlotSourceTranscript)
	if err != nil || !core.MeaningfulText(source) {
		return ErrSourceTranscriptMissing
	}

	startedAt := time.Now().UTC()
	job := &core.JobRecord{
		Id:        core.IDFromContent(fmt.Sprintf("%d:%s", startedAt.UnixMicro(), source)),
		Stage:     core.StagePurge,
		StartedAt: startedAt,
	}
	if err := p.ledger.StartJob(ctx, job); err != nil {
		return fmt.Errorf("failed to record job start: %w", err)
	}

	logger := p.logger.With("job_id", job.Id)

	if err := p.runStages(ctx, job.Id, source, logger); err != nil {
		if ferr := p.ledger.FailJob(ctx, job.Id, err.Error()); ferr != nil {
			logger.Error("failed to record job failure", "err", ferr)
		}
		return err
	}

	if err := p.ledger.CompleteJob(ctx, job.Id); err != nil {
		logger.Error("failed to record job completion", "err", err)
	}

	logger.Info("processing job finished", "duration", time.Since(startedAt))
	return nil
}

func (p *Pipeline) runStages(ctx context.Context, id core.ID, source string, logger *slog.Logger) error {
	// Purge failures allow stale data to persist; log and continue.
	if err := p.store.Purge(ctx); err != nil {
		logger.Warn("purge failed, stale slots may persist", "err", err)
	}

	if err := p.ledger.AdvanceStage(ctx, id, core.StageTranslate); err != nil {
		return err
	}
	english, err := p.translate(ctx, source, logger)
	if err != nil {
		return fmt.Errorf("translate stage: %w", err)
	}
	if err := p.store.WriteSlot(ctx, storage.SlotEnglishTranscript, english); err != nil {
		return fmt.Errorf("translate stage: %w", err)
	}

	if err := p.ledger.AdvanceStage(ctx, id, core.StageClean); err != nil {
		return err
	}
	cleaned := cleanTranscript(english)
	if err := p.store.WriteSlot(ctx, storage.SlotCleanedTranscript, cleaned); err != nil {
		return fmt.Errorf("clean stage: %w", err)
	}

	if err := p.ledger.AdvanceStage(ctx, id, core.StageChunk); err != nil {
		return err
	}
	chunks := p.chunker.split(cleaned)
	if len(chunks) == 0 {
		return fmt.Errorf("chunk stage: %w", ErrNoChunksProduced)
	}
	if err := p.store.WriteChunks(ctx, chunks); err != nil {
		return fmt.Errorf("chunk stage: %w", err)
	}
	logger.Debug("transcript chunked", "chunks", len(chunks))

	if err := p.ledger.AdvanceStage(ctx, id, core.StageVectorize); err != nil {
		return err
	}
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	embeddings, err := p.provider.Embedder().EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("vectorize stage: %w", err)
	}
	if len(embeddings) != len(chunks) {
		logger.Warn("embedding count does not match chunk count",
			"chunks", len(chunks), "embeddings", len(embeddings))
	}
	if err := p.store.WriteEmbeddings(ctx, embeddings); err != nil {
		return fmt.Errorf("vectorize stage: %w", err)
	}

	return nil
}

// translate copies the transcript through when it already reads as English,
// otherwise routes it to the translator capability.
func (p *Pipeline) translate(ctx context.Context, source string, logger *slog.Logger) (string, error) {
	if isLikelyEnglish(source) {
		logger.Debug("transcript already english, skipping translation")
		return source, nil
	}
	return p.provider.Translator().TranslateToEnglish(ctx, source)
}
