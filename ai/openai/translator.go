package openai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/vidrecall/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Translator implements ai.Translator using OpenAI-compatible chat APIs.
type Translator struct {
	client llms.Model
	logger *slog.Logger
}

// newTranslator is an internal constructor that returns the concrete type.
func newTranslator(config *ai.Config) (*Translator, error) {
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

	return &Translator{
		client: client,
		logger: slog.Default().With("component", "openai-translator"),
	}, nil
}

// NewTranslator creates a new translator using the provided configuration.
//
// Returns ai.Translator interface to enforce abstraction.
func NewTranslator(config *ai.Config) (ai.Translator, error) {
	return newTranslator(config)
}

// TranslateToEnglish returns an English rendering of text.
// Long transcripts are translated in paragraph batches so each request
// stays inside the model's context window.
func (t *Translator) TranslateToEnglish(ctx context.Context, text string) (string, error) {
	batches := splitBatches(text, maxTranslateChars)
	t.logger.Debug("translating text", "length", len(text), "batches", len(batches))

	parts := make([]string, 0, len(batches))
	for _, batch := range batches {
		translated, err := t.translateBatch(ctx, batch)
		if err != nil {
			t.logger.Error("translation batch failed", "err", err)
			return "", err
		}
		parts = append(parts, translated)
	}

	return strings.Join(parts, "\n\n"), nil
}

func (t *Translator) translateBatch(ctx context.Context, text string) (string, error) {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(translateSystemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(text)},
		},
	}

	response, err := t.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		return "", err
	}
	if len(response.Choices) < 1 {
		t.logger.Warn("translator returned no choices")
		return text, nil
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}
