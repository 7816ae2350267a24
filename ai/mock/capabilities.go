package mock

import (
	"context"
	"strings"

	"github.com/poiesic/vidrecall/ai"
)

// MockTranslator is a test double for ai.Translator.
// The default behavior is the identity function.
type MockTranslator struct {
	// TranslateFunc is called by TranslateToEnglish if set.
	TranslateFunc func(ctx context.Context, text string) (string, error)

	callCount int
}

// NewMockTranslator creates a mock translator that passes text through unchanged.
func NewMockTranslator() *MockTranslator {
	return &MockTranslator{}
}

// TranslateToEnglish returns the text unchanged unless a custom func is set.
func (m *MockTranslator) TranslateToEnglish(ctx context.Context, text string) (string, error) {
	m.callCount++
	if m.TranslateFunc != nil {
		return m.TranslateFunc(ctx, text)
	}
	return text, nil
}

// CallCount returns the number of times TranslateToEnglish was called.
func (m *MockTranslator) CallCount() int {
	return m.callCount
}

// MockSummarizer is a test double for ai.Summarizer.
// The default behavior returns the first sentence of the input.
type MockSummarizer struct {
	// SummarizeFunc is called by Summarize if set.
	SummarizeFunc func(ctx context.Context, text string, minWords, maxWords int) (string, error)

	callCount int
}

// NewMockSummarizer creates a mock summarizer with default behavior.
func NewMockSummarizer() *MockSummarizer {
	return &MockSummarizer{}
}

// Summarize returns the first sentence of text unless a custom func is set.
func (m *MockSummarizer) Summarize(ctx context.Context, text string, minWords, maxWords int) (string, error) {
	m.callCount++
	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, text, minWords, maxWords)
	}
	if idx := strings.IndexAny(text, ".!?"); idx >= 0 {
		return strings.TrimSpace(text[:idx+1]), nil
	}
	return strings.TrimSpace(text), nil
}

// CallCount returns the number of times Summarize was called.
func (m *MockSummarizer) CallCount() int {
	return m.callCount
}

// MockSpanExtractor is a test double for ai.SpanExtractor.
// The default behavior returns no spans, which pushes the answer cascade
// to its later strategies.
type MockSpanExtractor struct {
	// ExtractFunc is called by ExtractSpans if set.
	ExtractFunc func(ctx context.Context, question, passage string) ([]ai.Span, error)

	callCount int
}

// NewMockSpanExtractor creates a mock span extractor with default behavior.
func NewMockSpanExtractor() *MockSpanExtractor {
	return &MockSpanExtractor{}
}

// ExtractSpans returns no candidates unless a custom func is set.
func (m *MockSpanExtractor) ExtractSpans(ctx context.Context, question, passage string) ([]ai.Span, error) {
	m.callCount++
	if m.ExtractFunc != nil {
		return m.ExtractFunc(ctx, question, passage)
	}
	return []ai.Span{}, nil
}

// CallCount returns the number of times ExtractSpans was called.
func (m *MockSpanExtractor) CallCount() int {
	return m.callCount
}

// MockGenerator is a test double for ai.Generator.
// The default behavior returns an empty continuation.
type MockGenerator struct {
	// ContinueFunc is called by Continue if set.
	ContinueFunc func(ctx context.Context, prompt string) (string, error)

	callCount int
}

// NewMockGenerator creates a mock generator with default behavior.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Continue returns an empty string unless a custom func is set.
func (m *MockGenerator) Continue(ctx context.Context, prompt string) (string, error) {
	m.callCount++
	if m.ContinueFunc != nil {
		return m.ContinueFunc(ctx, prompt)
	}
	return "", nil
}

// CallCount returns the number of times Continue was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}
