// Package mock provides test double implementations of the AI capability interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.Translator,
// ai.Summarizer, ai.SpanExtractor, ai.Generator, and ai.Provider for use in
// unit tests. The mocks allow tests to run without external AI service
// dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	provider := mock.NewMockProvider()
//	vector, err := provider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	embedder := mock.NewMockEmbedder()
//	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    return []float32{0.1, 0.2, 0.3}, nil
//	}
//
//	// Simulate a deployment without span extraction or generation
//	provider := mock.NewMinimalMockProvider()
//
// # Default Behavior
//
//   - MockEmbedder: deterministic vectors from the text hash
//   - MockTranslator: identity
//   - MockSummarizer: first sentence of the input
//   - MockSpanExtractor: no candidates
//   - MockGenerator: empty continuation
package mock
