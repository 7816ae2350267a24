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
	"strings"
	"unicode/utf8"

	"github.com/poiesic/vidrecall/ai"
)

const (
	// spanContextWindow bounds the passage handed to the span extractor.
	spanContextWindow = 2000

	// minSpanLength and minTrimmedSpanLength filter span candidates.
	minSpanLength        = 10
	minTrimmedSpanLength = 15

	// cueBonus is added to a sentence's overlap score when it contains an
	// instructional cue word.
	cueBonus = 3

	// minSentenceScore and minSentenceLength gate the sentence fallback.
	minSentenceScore  = 2
	minSentenceLength = 20

	// minGeneratedLength gates the generative fallback.
	minGeneratedLength = 20

	// chunkPreviewChars and contextPreviewChars bound the generative prompt.
	chunkPreviewChars   = 200
	contextPreviewChars = 500
)

// greetingStrategy short-circuits greetings before retrieval runs. Single
// greeting words match as whole tokens; "how are you" matches as a phrase.
type greetingStrategy struct{}

func (greetingStrategy) Name() string { return "greeting" }

func (greetingStrategy) Attempt(ctx context.Context, q *Question) (string, bool, bool) {
	for _, key := range greetingKeys {
		matched := false
		if strings.Contains(key, " ") {
			matched = strings.Contains(q.Lowered, key)
		} else {
			matched = containsToken(q.Lowered, key)
		}
		if matched {
			return greetingResponses[key], false, true
		}
	}
	return "", false, false
}

// spanStrategy extracts a verbatim answer span from the retrieved context.
type spanStrategy struct {
	extractor ai.SpanExtractor
	logger    *slog.Logger
}

func (spanStrategy) Name() string { return "span-extraction" }

func (s spanStrategy) Attempt(ctx context.Context, q *Question) (string, bool, bool) {
	if s.extractor == nil || !q.HasContext() {
		return "", false, false
	}

	passage := truncate(q.Context, spanContextWindow)
	spans, err := s.extractor.ExtractSpans(ctx, q.Text, passage)
	if err != nil {
		s.logger.Warn("span extraction failed", "err", err)
		return "", false, false
	}

	best := ""
	bestLength := 0
	for _, span := range spans {
		length := utf8.RuneCountInString(span.Text)
		if length > bestLength && length > minSpanLength {
			best = span.Text
			bestLength = length
		}
	}

	trimmed := strings.TrimSpace(best)
	if utf8.RuneCountInString(trimmed) > minTrimmedSpanLength {
		return trimmed, true, true
	}
	return "", false, false
}

// sentenceStrategy picks the context sentence with the highest question
// word overlap, with a bonus for instructional cue words.
type sentenceStrategy struct{}

func (sentenceStrategy) Name() string { return "sentence-fallback" }

func (sentenceStrategy) Attempt(ctx context.Context, q *Question) (string, bool, bool) {
	if !q.HasContext() {
		return "", false, false
	}

	questionWords := wordSet(q.Lowered)

	best := ""
	bestScore := 0
	for _, sentence := range strings.Split(q.Context, ".") {
		lower := strings.ToLower(sentence)

		score := overlapCount(questionWords, lower)
		if containsCueWord(lower) {
			score += cueBonus
		}

		trimmed := strings.TrimSpace(sentence)
		if score > bestScore && len(trimmed) > minSentenceLength {
			best = trimmed
			bestScore = score
		}
	}

	if best != "" && bestScore >= minSentenceScore {
		return best + ".", true, true
	}
	return "", false, false
}

// generativeStrategy prompts the generator with a context preview.
type generativeStrategy struct {
	generator ai.Generator
	logger    *slog.Logger
}

func (generativeStrategy) Name() string { return "generative-fallback" }

func (s generativeStrategy) Attempt(ctx context.Context, q *Question) (string, bool, bool) {
	if s.generator == nil || !q.HasContext() {
		return "", false, false
	}

	previews := make([]string, 0, 2)
	for _, chunk := range q.Chunks {
		previews = append(previews, truncate(chunk.Text, chunkPreviewChars))
		if len(previews) == 2 {
			break
		}
	}
	preview := truncate(strings.Join(previews, " "), contextPreviewChars)
	prompt := fmt.Sprintf("Based on this content: %s... Question: %s Answer:", preview, q.Text)

	generated, err := s.generator.Continue(ctx, prompt)
	if err != nil {
		s.logger.Warn("generative fallback failed", "err", err)
		return "", false, false
	}

	// Keep only what follows the final answer marker if the model echoed
	// the prompt back.
	if idx := strings.LastIndex(generated, "Answer:"); idx >= 0 {
		generated = generated[idx+len("Answer:"):]
	}
	generated = strings.TrimSpace(generated)

	if utf8.RuneCountInString(generated) > minGeneratedLength {
		return generated, true, true
	}
	return "", false, false
}

// knowledgeBaseStrategy substring-matches the question against curated
// answers for known question patterns.
type knowledgeBaseStrategy struct{}

func (knowledgeBaseStrategy) Name() string { return "knowledge-base" }

func (knowledgeBaseStrategy) Attempt(ctx context.Context, q *Question) (string, bool, bool) {
	for _, key := range knowledgeBaseKeys {
		if strings.Contains(q.Lowered, key) {
			return knowledgeBaseAnswers[key], false, true
		}
	}
	return "", false, false
}

// genericStrategy always succeeds with a hedging response, chosen
// deterministically from the question text.
type genericStrategy struct{}

func (genericStrategy) Name() string { return "generic-fallback" }

func (genericStrategy) Attempt(ctx context.Context, q *Question) (string, bool, bool) {
	if q.HasContext() {
		return contextFallbacks[hashSelect(q.Text, len(contextFallbacks))], false, true
	}
	return noContextFallbacks[hashSelect(q.Text, len(noContextFallbacks))], false, true
}
