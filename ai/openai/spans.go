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


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/poiesic/vidrecall/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// maxSpanCandidates caps how many candidates one extraction returns:
// three start positions crossed with three end positions.
const maxSpanCandidates = 9

// SpanExtractor implements ai.SpanExtractor using OpenAI-compatible chat APIs.
// The model is asked for verbatim quotes; anything it returns that is not
// actually a substring of the passage is discarded.
type SpanExtractor struct {
	client llms.Model
	logger *slog.Logger
}

// spanResponse is the wrapper structure for the LLM's JSON response.
type spanResponse struct {
	Spans []struct {
		Text string `json:"text"`
	} `json:"spans"`
}

// newSpanExtractor is an internal constructor that returns the concrete type.
func newSpanExtractor(config *ai.Config) (*SpanExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken("none"),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &SpanExtractor{
		client: client,
		logger: slog.Default().With("component", "openai-spans"),
	}, nil
}

// NewSpanExtractor creates a new span extractor using the provided configuration.
//
// Returns ai.SpanExtractor interface to enforce abstraction.
func NewSpanExtractor(config *ai.Config) (ai.SpanExtractor, error) {
	return newSpanExtractor(config)
}

// ExtractSpans locates candidate answer spans for the question inside passage.
func (e *SpanExtractor) ExtractSpans(ctx context.Context, question, passage string) ([]ai.Span, error) {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(spanSystemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart("Question: " + question + "\n\nPassage: " + passage)},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result spanResponse
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			e.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			e.logger.Debug("no choices returned from model")
			return []ai.Span{}, nil
		}

		responseText := stripCodeFences(response.Choices[0].Content)
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			e.logger.Warn("error parsing span response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		e.logger.Error("failed to parse span response after retries", "err", lastErr)
		return nil, lastErr
	}

	// Keep only genuine substrings and attach their offsets.
	passageRunes := []rune(passage)
	spans := make([]ai.Span, 0, len(result.Spans))
	for _, candidate := range result.Spans {
		if len(spans) >= maxSpanCandidates {
			break
		}
		text := strings.TrimSpace(candidate.Text)
		if text == "" {
			continue
		}
		byteStart := strings.Index(passage, text)
		if byteStart < 0 {
			e.logger.Debug("discarding non-verbatim span", "text", text)
			continue
		}
		runeStart := len([]rune(passage[:byteStart]))
		runeEnd := runeStart + len([]rune(text)) - 1
		if runeEnd >= len(passageRunes) {
			runeEnd = len(passageRunes) - 1
		}
		spans = append(spans, ai.Span{
			Text:  text,
			Start: runeStart,
			End:   runeEnd,
		})
	}

	e.logger.Debug("extracted spans", "returned", len(result.Spans), "kept", len(spans))
	return spans, nil
}
