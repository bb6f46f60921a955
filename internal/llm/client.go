// Package llm is the generation-service boundary: a minimal client interface
// over text-generation providers, with provider errors translated into coded
// errors that classify as retryable or fatal. The core never constructs
// prompts or interprets replies here; it only needs text in, text out.
package llm

import (
	"context"
)

// Client sends a prompt to a generation service and returns its raw text
// reply. Implementations wrap a concrete provider; the reply is untrusted
// free text for the recovery parser to deal with.
type Client interface {
	// Name identifies the backing provider (for logs and errors).
	Name() string

	// Generate produces text for the given prompt. Errors are coded so the
	// caller can decide between retrying and giving up; see IsRetryable.
	Generate(ctx context.Context, prompt string) (string, error)
}

// ClientConfig carries the provider settings shared by all client
// implementations.
type ClientConfig struct {
	// APIKey authenticates with the provider. When empty, provider-specific
	// environment variables are consulted.
	APIKey string `mapstructure:"api_key" yaml:"api_key,omitempty"`

	// Model selects the generation model.
	Model string `mapstructure:"model" yaml:"model,omitempty"`

	// BaseURL overrides the provider endpoint, e.g. for OpenAI-compatible
	// gateways or a local server.
	BaseURL string `mapstructure:"base_url" yaml:"base_url,omitempty"`
}
