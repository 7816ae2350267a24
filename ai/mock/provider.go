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


package mock

import "github.com/poiesic/vidrecall/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates the individual mock capabilities. The span extractor and
// generator may be nil to simulate a minimal deployment without the
// optional capabilities.
type MockProvider struct {
	embedder   *MockEmbedder
	translator *MockTranslator
	summarizer *MockSummarizer
	spans      *MockSpanExtractor
	generator  *MockGenerator
}

// NewMockProvider creates a new mock provider with all default mock services.
//
// Returns ai.Provider interface for consistency with production constructors.
// Use the Mock* accessors for test assertions on concrete types.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		embedder:   NewMockEmbedder(),
		translator: NewMockTranslator(),
		summarizer: NewMockSummarizer(),
		spans:      NewMockSpanExtractor(),
		generator:  NewMockGenerator(),
	}
}

// NewMinimalMockProvider creates a mock provider without the optional
// span extraction and generation capabilities.
func NewMinimalMockProvider() *MockProvider {
	return &MockProvider{
		embedder:   NewMockEmbedder(),
		translator: NewMockTranslator(),
		summarizer: NewMockSummarizer(),
	}
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// Translator returns the mock translator.
func (p *MockProvider) Translator() ai.Translator {
	return p.translator
}

// Summarizer returns the mock summarizer.
func (p *MockProvider) Summarizer() ai.Summarizer {
	return p.summarizer
}

// SpanExtractor returns the mock span extractor, or nil on minimal providers.
func (p *MockProvider) SpanExtractor() ai.SpanExtractor {
	if p.spans == nil {
		return nil
	}
	return p.spans
}

// Generator returns the mock generator, or nil on minimal providers.
func (p *MockProvider) Generator() ai.Generator {
	if p.generator == nil {
		return nil
	}
	return p.generator
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// MockEmbedderImpl returns the underlying mock embedder for test assertions.
func (p *MockProvider) MockEmbedderImpl() *MockEmbedder {
	return p.embedder
}

// MockTranslatorImpl returns the underlying mock translator for test assertions.
func (p *MockProvider) MockTranslatorImpl() *MockTranslator {
	return p.translator
}

// MockSummarizerImpl returns the underlying mock summarizer for test assertions.
func (p *MockProvider) MockSummarizerImpl() *MockSummarizer {
	return p.summarizer
}

// MockSpanExtractorImpl returns the underlying mock span extractor for test assertions.
func (p *MockProvider) MockSpanExtractorImpl() *MockSpanExtractor {
	return p.spans
}

// MockGeneratorImpl returns the underlying mock generator for test assertions.
func (p *MockProvider) MockGeneratorImpl() *MockGenerator {
	return p.generator
}
