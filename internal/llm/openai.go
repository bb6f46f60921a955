package llm

import (
	"context"
	"os"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAIClient implements Client for OpenAI's chat models.
type OpenAIClient struct {
	client *openai.LLM
	config ClientConfig
}

// NewOpenAIClient creates a client for the OpenAI API. The API key falls back
// to the OPENAI_API_KEY environment variable when absent from the config.
func NewOpenAIClient(cfg ClientConfig) (*OpenAIClient, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, NewAuthError("openai", nil)
	}

	opts := []openai.Option{
		openai.WithToken(apiKey),
	}
	if cfg.Model != "" {
		opts = append(opts, openai.WithModel(cfg.Model))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, TranslateError("openai", err)
	}

	return &OpenAIClient{client: client, config: cfg}, nil
}

// Name returns the provider name.
func (c *OpenAIClient) Name() string {
	return "openai"
}

// Generate sends the prompt as a single completion request and returns the
// raw model reply.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	reply, err := llms.GenerateFromSinglePrompt(ctx, c.client, prompt)
	if err != nil {
		return "", TranslateError("openai", err)
	}
	return reply, nil
}
