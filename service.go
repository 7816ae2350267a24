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

package vidrecall

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/poiesic/vidrecall/ai"
	"github.com/poiesic/vidrecall/ai/openai"
	"github.com/poiesic/vidrecall/answer"
	"github.com/poiesic/vidrecall/config"
	"github.com/poiesic/vidrecall/core"
	"github.com/poiesic/vidrecall/notes"
	"github.com/poiesic/vidrecall/pipeline"
	"github.com/poiesic/vidrecall/reembed"
	"github.com/poiesic/vidrecall/retrieval"
	"github.com/poiesic/vidrecall/storage"
	"github.com/poiesic/vidrecall/storage/badger"
	"github.com/poiesic/vidrecall/storage/fs"
	"github.com/poiesic/vidrecall/watcher"
)

// Service wires the content store, job ledger, AI provider, and the
// processing, retrieval, answering, and notes components behind one facade.
type Service struct {
	store       storage.ContentStore
	ledger      storage.JobLedger
	provider    ai.Provider
	pipeline    *pipeline.Pipeline
	tracker     *pipeline.Tracker
	engine      *retrieval.Engine
	synthesizer *answer.Synthesizer
	notes       *notes.Generator
	cfg         *config.AppConfig
	logger      *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	provider ai.Provider
	ledger   storage.JobLedger
	logger   *slog.Logger
}

// WithProvider injects an AI provider instead of building the default
// OpenAI-compatible one from the configuration.
func WithProvider(provider ai.Provider) ServiceOption {
	return func(o *serviceOptions) {
		o.provider = provider
	}
}

// WithLedger injects a job ledger instead of opening the Badger database at
// the configured path.
func WithLedger(ledger storage.JobLedger) ServiceOption {
	return func(o *serviceOptions) {
		o.ledger = ledger
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(o *serviceOptions) {
		o.logger = logger
	}
}

// NewService builds a Service from the configuration.
func NewService(cfg *config.AppConfig, opts ...ServiceOption) (*Service, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	options := &serviceOptions{}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.logger
	if logger == nil {
		logger = slog.Default()
	}

	store, err := fs.NewStore(cfg.Storage.DataDir,
		fs.WithChunkDirs(cfg.Storage.ChunkDirs...),
		fs.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	ledger := options.ledger
	if ledger == nil {
		backend, err := badger.OpenBackend(cfg.Storage.ResolvedLedgerPath(), false)
		if err != nil {
			return nil, err
		}
		ledger, err = badger.NewLedger(backend, logger)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(aiConfig(&cfg.AI))
		if err != nil {
			ledger.Close()
			return nil, err
		}
	}

	pipe, err := pipeline.NewPipeline(store, ledger, provider,
		pipeline.WithLogger(logger),
		pipeline.WithChunking(cfg.Pipeline.TokenBudget, cfg.Pipeline.OverlapSentences))
	if err != nil {
		provider.Close()
		ledger.Close()
		return nil, err
	}

	tracker, err := pipeline.NewTracker(store)
	if err != nil {
		pipe.Release()
		provider.Close()
		ledger.Close()
		return nil, err
	}

	engine, err := retrieval.NewEngine(store, provider.Embedder(), retrieval.WithLogger(logger))
	if err != nil {
		pipe.Release()
		provider.Close()
		ledger.Close()
		return nil, err
	}

	synthesizer, err := answer.NewSynthesizer(engine, provider,
		answer.WithTopK(cfg.Retrieval.TopK),
		answer.WithLogger(logger))
	if err != nil {
		pipe.Release()
		provider.Close()
		ledger.Close()
		return nil, err
	}

	noteGen, err := notes.NewGenerator(store, provider.Summarizer())
	if err != nil {
		pipe.Release()
		provider.Close()
		ledger.Close()
		return nil, err
	}

	return &Service{
		store:       store,
		ledger:      ledger,
		provider:    provider,
		pipeline:    pipe,
		tracker:     tracker,
		engine:      engine,
		synthesizer: synthesizer,
		notes:       noteGen,
		cfg:         cfg,
		logger:      logger,
	}, nil
}

func aiConfig(c *config.AIConfig) *ai.Config {
	return ai.NewConfig(
		ai.WithEmbeddingHost(c.EmbeddingHost),
		ai.WithChatHost(c.ChatHost),
		ai.WithEmbeddingModel(c.EmbeddingModel),
		ai.WithChatModel(c.ChatModel),
		ai.WithSpanExtractor(c.SpanExtractorEnabled()),
		ai.WithGenerator(c.GeneratorEnabled()),
	)
}

// Process submits a processing job for the current source transcript and
// returns without waiting for it.
func (s *Service) Process() error {
	return s.pipeline.Run()
}

// ProcessAndWait runs a processing job to completion and returns its error.
func (s *Service) ProcessAndWait(ctx context.Context) error {
	return s.pipeline.RunAndWait(ctx)
}

// Status reports how far transcript processing has progressed.
func (s *Service) Status(ctx context.Context) core.ProcessingStatus {
	return s.tracker.Status(ctx)
}

// LatestJob returns the most recently started job record, or nil when no
// job has run yet.
func (s *Service) LatestJob(ctx context.Context) (*core.JobRecord, error) {
	return s.ledger.LatestJob(ctx)
}

// Ask reloads the retrieval engine from the store and answers the question.
// A reload failure degrades the answer rather than failing the call.
func (s *Service) Ask(ctx context.Context, question string) *core.Answer {
	if err := s.engine.Reload(ctx); err != nil {
		s.logger.Warn("retrieval reload failed", "err", err)
	}
	return s.synthesizer.Answer(ctx, question)
}

// Notes builds structured notes from the processed transcript. Successful
// results are persisted to the notes slot.
func (s *Service) Notes(ctx context.Context) *core.NotesResult {
	result := s.notes.Generate(ctx)
	if result.Status == core.StatusSuccess {
		if err := s.store.WriteSlot(ctx, storage.SlotNotes, result.Notes); err != nil {
			s.logger.Warn("failed to persist notes", "err", err)
		}
	}
	return result
}

// Summarize produces a standalone summary of the processed transcript and
// persists it to the summary slot.
func (s *Service) Summarize(ctx context.Context) (string, error) {
	summary, err := s.notes.Summary(ctx)
	if err != nil {
		return "", err
	}
	if err := s.store.WriteSlot(ctx, storage.SlotSummary, summary); err != nil {
		s.logger.Warn("failed to persist summary", "err", err)
	}
	return summary, nil
}

// Reembed regenerates the embedding matrix for the stored chunks, leaving
// transcripts and chunks untouched. Progress is written to progress.
func (s *Service) Reembed(ctx context.Context, cfg *reembed.Config, progress io.Writer) error {
	r, err := reembed.NewReembedder(s.store, s.provider.Embedder(), cfg, progress)
	if err != nil {
		return err
	}
	return r.Run(ctx)
}

// Watch blocks watching the transcripts directory, submitting a processing
// job whenever the source transcript file lands. It returns when the context
// is canceled.
func (s *Service) Watch(ctx context.Context) error {
	dir := filepath.Join(s.cfg.Storage.DataDir, "transcripts")
	w, err := watcher.New(dir, s.cfg.Watcher.TranscriptFile,
		func(context.Context) error { return s.pipeline.Run() },
		watcher.WithSettleDelay(time.Duration(s.cfg.Watcher.SettleDelayMillis)*time.Millisecond),
		watcher.WithLogger(s.logger))
	if err != nil {
		return err
	}
	defer w.Stop()
	return w.Start(ctx)
}

// Close releases the pipeline pool and closes the AI provider and the job
// ledger.
func (s *Service) Close() error {
	s.pipeline.Release()

	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}
	if err := s.ledger.Close(); err != nil {
		s.logger.Error("error closing job ledger", "err", err)
		return err
	}
	return nil
}
