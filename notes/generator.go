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

package notes

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/poiesic/vidrecall/ai"
	"github.com/poiesic/vidrecall/core"
	"github.com/poiesic/vidrecall/storage"
)

const (
	// summaryInputChars bounds the text handed to the summarizer.
	summaryInputChars = 1500

	// summaryMinWords and summaryMaxWords are the abstractive summary's
	// target length.
	summaryMinWords = 100
	summaryMaxWords = 200

	// abstractiveMinWords is the content size below which the extractive
	// fallback is used directly.
	abstractiveMinWords = 100

	stillProcessingMessage = "Video is still being processed. Please wait..."
	noTranscriptMessage    = "No transcript available. Please process a video first."
)

// Generator produces structured notes and standalone summaries from the
// best available transcript slot. It reads the content store on every call,
// so it always observes the latest pipeline run.
type Generator struct {
	store      storage.ContentStore
	summarizer ai.Summarizer
	logger     *slog.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator) error

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) GeneratorOption {
	return func(g *Generator) error {
		if logger == nil {
			logger = slog.Default()
		}
		g.logger = logger
		return nil
	}
}

// NewGenerator creates a notes generator. The summarizer may be nil; the
// overview then falls back to extractive sentence pairing.
func NewGenerator(store storage.ContentStore, summarizer ai.Summarizer, opts ...GeneratorOption) (*Generator, error) {
	if store == nil {
		return nil, ErrContentStoreRequired
	}

	g := &Generator{
		store:      store,
		summarizer: summarizer,
		logger:     slog.Default().With("component", "notes"),
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Generate produces the structured notes document. The result is never an
// error value: preconditions and internal failures are reported through the
// result's status field.
func (g *Generator) Generate(ctx context.Context) *core.NotesResult {
	start := time.Now()

	if !g.processingComplete(ctx) {
		return &core.NotesResult{
			Status:  core.StatusPending,
			Message: stillProcessingMessage,
		}
	}

	transcript := g.bestTranscript(ctx)
	if transcript == "" {
		return &core.NotesResult{
			Status:  core.StatusError,
			Message: noTranscriptMessage,
		}
	}

	g.logger.Info("generating structured notes")

	summary := g.summarize(ctx, transcript)
	topics := mainTopics(transcript)
	keyPoints := extractKeyPoints(transcript)
	document := buildNotes(summary, topics, keyPoints)

	elapsed := time.Since(start)
	wordCount := len(strings.Fields(document))
	g.logger.Info("notes generated", "duration", elapsed, "words", wordCount)

	return &core.NotesResult{
		Status:         core.StatusSuccess,
		Notes:          document,
		WordCount:      wordCount,
		ProcessingTime: elapsed.Seconds(),
	}
}

// Summary produces the standalone summary of the best available transcript.
func (g *Generator) Summary(ctx context.Context) (string, error) {
	transcript := g.bestTranscript(ctx)
	if transcript == "" {
		return "", fmt.Errorf("%w: %s", ErrNoTranscript, noTranscriptMessage)
	}
	return g.summarize(ctx, transcript), nil
}

// processingComplete mirrors the derived readiness check: one of the
// cleaned or english transcripts must hold real content.
func (g *Generator) processingComplete(ctx context.Context) bool {
	for _, slot := range []storage.Slot{storage.SlotCleanedTranscript, storage.SlotEnglishTranscript} {
		text, err := g.store.ReadSlot(ctx, slot)
		if err == nil && core.MeaningfulText(text) {
			return true
		}
	}
	return false
}

// bestTranscript reads the highest-preference transcript slot with real
// content: cleaned, then english, then the original.
func (g *Generator) bestTranscript(ctx context.Context) string {
	slots := []storage.Slot{
		storage.SlotCleanedTranscript,
		storage.SlotEnglishTranscript,
		storage.SlotSourceTranscript,
	}
	for _, slot := range slots {
		text, err := g.store.ReadSlot(ctx, slot)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if core.MeaningfulText(text) {
			g.logger.Debug("using transcript slot", "slot", slot)
			return text
		}
	}
	return ""
}

// summarize produces the overview: abstractive when a summarizer is
// available and the content is long enough, extractive sentence pairing
// otherwise.
func (g *Generator) summarize(ctx context.Context, content string) string {
	if g.summarizer == nil || len(strings.Fields(content)) < abstractiveMinWords {
		return extractiveSummary(content)
	}

	input := content
	if len(input) > summaryInputChars {
		cut := summaryInputChars
		// Back up to a rune boundary so the summarizer never sees a torn
		// multi-byte character.
		for cut > 0 && !utf8.RuneStart(input[cut]) {
			cut--
		}
		input = input[:cut]
	}

	summary, err := g.summarizer.Summarize(ctx, input, summaryMinWords, summaryMaxWords)
	if err != nil || strings.TrimSpace(summary) == "" {
		g.logger.Warn("abstractive summary failed, falling back", "err", err)
		return extractiveSummary(content)
	}
	return strings.TrimSpace(summary)
}

// extractiveSummary pairs the first and last meaningful sentences.
func extractiveSummary(content string) string {
	sentences := splitSentences(content, 20)
	switch len(sentences) {
	case 0:
		return "Summary of the main content points."
	case 1:
		return sentences[0]
	default:
		return sentences[0] + " " + sentences[len(sentences)-1]
	}
}
