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
	"log/slog"

	"github.com/poiesic/vidrecall/ai"
)

// Provider implements ai.Provider using OpenAI-compatible services.
// SpanExtractor and Generator are only built when enabled in the config;
// otherwise the accessors return nil and consumers fall through to their
// next strategy.
type Provider struct {
	config     *ai.Config
	embedder   *Embedder
	translator *Translator
	summarizer *Summarizer
	spans      *SpanExtractor
	generator  *Generator
	logger     *slog.Logger
}

// NewProvider creates a new AI provider with OpenAI-compatible services.
// The config is validated and normalized before use.
//
// Returns ai.Provider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	translator, err := newTranslator(config)
	if err != nil {
		return nil, err
	}

	summarizer, err := newSummarizer(config)
	if err != nil {
		return nil, err
	}

	p := &Provider{
		config:     config,
		embedder:   embedder,
		translator: translator,
		summarizer: summarizer,
		logger:     slog.Default().With("component", "openai-provider"),
	}

	if config.EnableSpanExtractor {
		spans, err := newSpanExtractor(config)
		if err != nil {
			return nil, err
		}
		p.spans = spans
	}

	if config.EnableGenerator {
		generator, err := newGenerator(config)
		if err != nil {
			return nil, err
		}
		p.generator = generator
	}

	return p, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Translator returns the translation service.
func (p *Provider) Translator() ai.Translator {
	return p.translator
}

// Summarizer returns the summarization service.
func (p *Provider) Summarizer() ai.Summarizer {
	return p.summarizer
}

// SpanExtractor returns the extractive Q&A service, or nil if disabled.
func (p *Provider) SpanExtractor() ai.SpanExtractor {
	if p.spans == nil {
		return nil
	}
	return p.spans
}

// Generator returns the text generation service, or nil if disabled.
func (p *Provider) Generator() ai.Generator {
	if p.generator == nil {
		return nil
	}
	return p.generator
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
