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

package answer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/vidrecall/ai"
	"github.com/poiesic/vidrecall/core"
)

// defaultTopK is how many chunks are retrieved per question when no
// override is configured.
const defaultTopK = 5

// Confidence levels of the answer policy.
const (
	confidenceGreeting    = 0.9
	confidenceFromContext = 0.8
	confidenceHadContext  = 0.6
	confidenceNoContext   = 0.3
	confidenceRecovered   = 0.5
)

// Retriever is the slice of the retrieval engine the synthesizer depends on.
type Retriever interface {
	Ready() bool
	FindRelevant(ctx context.Context, query string, topK int) []core.Chunk
	SystemStatus(ctx context.Context) *core.SystemStatus
}

// Synthesizer answers questions by walking an ordered strategy cascade over
// retrieved context. It never returns a hard failure: anything unexpected
// degrades to a canned response.
type Synthesizer struct {
	retriever Retriever
	greeting  Strategy
	cascade   []Strategy
	generator ai.Generator
	topK      int
	logger    *slog.Logger
}

// SynthesizerOption configures a Synthesizer.
type SynthesizerOption func(*Synthesizer) error

// WithTopK sets how many chunks are retrieved per question.
func WithTopK(topK int) SynthesizerOption {
	return func(s *Synthesizer) error {
		if topK <= 0 {
			return fmt.Errorf("topK must be positive, got %d", topK)
		}
		s.topK = topK
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) SynthesizerOption {
	return func(s *Synthesizer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSynthesizer creates an answer synthesizer. The provider's span
// extractor and generator capabilities may be nil; the corresponding
// strategies then step aside and the cascade continues.
func NewSynthesizer(retriever Retriever, provider ai.Provider, opts ...SynthesizerOption) (*Synthesizer, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Synthesizer{
		retriever: retriever,
		generator: provider.Generator(),
		topK:      defaultTopK,
		logger:    slog.Default().With("component", "answer"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	s.greeting = greetingStrategy{}
	s.cascade = []Strategy{
		spanStrategy{extractor: provider.SpanExtractor(), logger: s.logger},
		sentenceStrategy{},
		generativeStrategy{generator: s.generator, logger: s.logger},
		knowledgeBaseStrategy{},
		genericStrategy{},
	}

	return s, nil
}

// Answer runs the cascade for one question. The result always has status
// success unless the readiness gate fires; panics anywhere in the cascade
// are recovered into a fixed mid-confidence response.
func (s *Synthesizer) Answer(ctx context.Context, question string) (result *core.Answer) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("answer cascade panicked", "panic", r)
			result = &core.Answer{
				Status:     core.StatusSuccess,
				Answer:     recoveredAnswer,
				Confidence: confidenceRecovered,
				HasContext: false,
			}
		}
	}()

	status := s.retriever.SystemStatus(ctx)
	status.GeneratorLoaded = s.generator != nil

	if !status.Ready {
		return &core.Answer{
			Status:       core.StatusError,
			Answer:       notReadyAnswer,
			Confidence:   0,
			HasContext:   false,
			SystemStatus: status,
		}
	}

	q := newQuestion(question)

	// Greetings bypass retrieval entirely.
	if text, _, ok := s.greeting.Attempt(ctx, q); ok {
		s.logger.Debug("answered by strategy", "strategy", s.greeting.Name())
		return &core.Answer{
			Status:       core.StatusSuccess,
			Answer:       text,
			Confidence:   confidenceGreeting,
			HasContext:   false,
			SystemStatus: status,
		}
	}

	q.setChunks(s.retriever.FindRelevant(ctx, question, s.topK))
	s.logger.Debug("retrieved context", "chunks", len(q.Chunks))

	for _, strategy := range s.cascade {
		text, fromContext, ok := strategy.Attempt(ctx, q)
		if !ok {
			continue
		}
		s.logger.Debug("answered by strategy", "strategy", strategy.Name())

		confidence := confidenceFromContext
		if !fromContext {
			if q.HasContext() {
				confidence = confidenceHadContext
			} else {
				confidence = confidenceNoContext
			}
		}

		return &core.Answer{
			Status:       core.StatusSuccess,
			Answer:       text,
			Confidence:   confidence,
			HasContext:   fromContext,
			SystemStatus: status,
		}
	}

	// Unreachable: the generic strategy always succeeds. Kept as a guard
	// so a cascade misconfiguration degrades instead of returning nil.
	return &core.Answer{
		Status:     core.StatusSuccess,
		Answer:     recoveredAnswer,
		Confidence: confidenceRecovered,
		HasContext: false,
	}
}
