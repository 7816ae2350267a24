package openai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/vidrecall/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Generator implements ai.Generator using OpenAI-compatible completion APIs.
type Generator struct {
	client llms.Model
	logger *slog.Logger
}

// newGenerator is an internal constructor that returns the concrete type.
func newGenerator(config *ai.Config) (*Generator, error) {
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

	return &Generator{
		client: client,
		logger: slog.Default().With("component", "openai-generator"),
	}, nil
}

// NewGenerator creates a new generator using the provided configuration.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(config *ai.Config) (ai.Generator, error) {
	return newGenerator(config)
}

// Continue returns the generated continuation of the prompt.
func (g *Generator) Continue(ctx context.Context, prompt string) (string, error) {
	g.logger.Debug("generating continuation", "promptLength", len(prompt))

	completion, err := llms.GenerateFromSinglePrompt(ctx, g.client, prompt,
		llms.WithTemperature(0.7),
		llms.WithMaxTokens(150),
	)
	if err != nil {
		g.logger.Error("generation failed", "err", err)
		return "", err
	}

	// Some models echo the prompt; keep only what follows it.
	completion = strings.TrimSpace(completion)
	if rest, found := strings.CutPrefix(completion, prompt); found {
		completion = strings.TrimSpace(rest)
	}

	return completion, nil
}
