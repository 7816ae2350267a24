package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Translator translates transcript text into English.
// Implementations must be thread-safe for concurrent use.
type Translator interface {
	// TranslateToEnglish returns an English rendering of text.
	// Text that is already English should pass through unchanged,
	// but callers are expected to detect English themselves and
	// skip the call entirely when possible.
	TranslateToEnglish(ctx context.Context, text string) (string, error)
}

// Summarizer produces an abstractive summary of transcript text.
type Summarizer interface {
	// Summarize condenses text into a short prose summary of roughly
	// minWords to maxWords words.
	Summarize(ctx context.Context, text string, minWords, maxWords int) (string, error)
}

// Span is one candidate answer substring located inside a context window.
type Span struct {
	// Text is the extracted substring.
	Text string

	// Start and End are rune offsets into the context the span was
	// extracted from. End is inclusive of the last rune.
	Start int
	End   int
}

// SpanExtractor locates candidate answer spans inside a context for a question.
// Implementations return multiple candidates; callers pick among them.
type SpanExtractor interface {
	// ExtractSpans returns up to nine candidate spans, built from the
	// top-3 start positions crossed with the top-3 end positions where
	// the end does not precede the start. The context is truncated to
	// the capability's input window by the caller.
	ExtractSpans(ctx context.Context, question, passage string) ([]Span, error)
}

// Generator produces free-form continuations of a prompt.
type Generator interface {
	// Continue returns the generated text following the prompt.
	// Only the continuation is returned, never the prompt itself.
	Continue(ctx context.Context, prompt string) (string, error)
}

// Provider aggregates AI capabilities for convenient initialization and
// lifecycle management. SpanExtractor and Generator are optional
// capabilities: a provider may return nil for either, and consumers must
// degrade gracefully when it does.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Translator returns the translation service.
	Translator() Translator

	// Summarizer returns the summarization service.
	Summarizer() Summarizer

	// SpanExtractor returns the extractive Q&A service, or nil if unavailable.
	SpanExtractor() SpanExtractor

	// Generator returns the text generation service, or nil if unavailable.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
