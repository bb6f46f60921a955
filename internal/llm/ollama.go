package llm

import (
	"context"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaClient implements Client for a local Ollama server.
type OllamaClient struct {
	client *ollama.LLM
	config ClientConfig
}

// NewOllamaClient creates a client for an Ollama instance. BaseURL defaults
// to the standard local endpoint when empty.
func NewOllamaClient(cfg ClientConfig) (*OllamaClient, error) {
	opts := []ollama.Option{}
	if cfg.Model != "" {
		opts = append(opts, ollama.WithModel(cfg.Model))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
	}

	client, err := ollama.New(opts...)
	if err != nil {
		return nil, TranslateError("ollama", err)
	}

	return &OllamaClient{client: client, config: cfg}, nil
}

// Name returns the provider name.
func (c *OllamaClient) Name() string {
	return "ollama"
}

// Generate sends the prompt as a single completion request and returns the
// raw model reply.
func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	reply, err := llms.GenerateFromSinglePrompt(ctx, c.client, prompt)
	if err != nil {
		return "", TranslateError("ollama", err)
	}
	return reply, nil
}
