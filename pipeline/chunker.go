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
	"log/slog"
	"regexp"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/poiesic/vidrecall/core"
)

const (
	defaultTokenBudget      = 256
	defaultOverlapSentences = 1
)

// sentenceSplitter extracts sentence-shaped runs ending in terminal
// punctuation.
var sentenceSplitter = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)

// chunker splits cleaned transcript text into ordered chunks. Sentences are
// packed greedily up to a token budget, with a configurable sentence overlap
// between consecutive chunks so retrieval does not lose context at chunk
// boundaries.
type chunker struct {
	tokenBudget      int
	overlapSentences int
	encoder          *tiktoken.Tiktoken
	logger           *slog.Logger
}

func newChunker(tokenBudget, overlapSentences int, logger *slog.Logger) *chunker {
	if tokenBudget <= 0 {
		tokenBudget = defaultTokenBudget
	}
	if overlapSentences < 0 {
		overlapSentences = defaultOverlapSentences
	}
	if logger == nil {
		logger = slog.Default()
	}

	// The encoder needs its BPE ranks available locally. When it cannot be
	// initialized, fall back to a word-based token estimate.
	encoder, err := tiktoken.EncodingForModel("gpt-3.5-turbo")
	if err != nil {
		logger.Warn("tokenizer unavailable, using word-count token estimate", "err", err)
		encoder = nil
	}

	return &chunker{
		tokenBudget:      tokenBudget,
		overlapSentences: overlapSentences,
		encoder:          encoder,
		logger:           logger,
	}
}

// countTokens returns the token count of text, estimating from word count
// when no encoder is available.
func (c *chunker) countTokens(text string) int {
	if c.encoder != nil {
		return len(c.encoder.Encode(text, nil, nil))
	}
	// English text averages roughly 3 words per 4 tokens.
	return len(strings.Fields(text)) * 4 / 3
}

// split breaks text into ordered chunks. Every returned chunk satisfies the
// chunk content invariant; sentences longer than the whole budget become
// single-sentence chunks rather than being dropped.
func (c *chunker) split(text string) []core.Chunk {
	sentences := sentenceSplitter.FindAllString(text, -1)
	if len(sentences) == 0 {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil
		}
		sentences = []string{trimmed}
	}
	for i := range sentences {
		sentences[i] = strings.TrimSpace(sentences[i])
	}

	var chunks []core.Chunk
	start := 0
	for start < len(sentences) {
		end := start
		tokens := 0
		for end < len(sentences) {
			next := c.countTokens(sentences[end])
			if end > start && tokens+next > c.tokenBudget {
				break
			}
			tokens += next
			end++
		}

		candidate := core.Chunk{
			Index: len(chunks),
			Text:  strings.Join(sentences[start:end], " "),
		}
		if candidate.Meaningful() {
			chunks = append(chunks, candidate)
		}

		if end == len(sentences) {
			break
		}
		next := end - c.overlapSentences
		if next <= start {
			next = start + 1
		}
		start = next
	}

	return chunks
}
