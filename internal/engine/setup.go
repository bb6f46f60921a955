package engine

import (
	"os"

	"github.com/storyloom/loom/internal/config"
	"github.com/storyloom/loom/internal/data"
	"github.com/storyloom/loom/internal/llm"
	"github.com/storyloom/loom/internal/resolve"
	"github.com/storyloom/loom/internal/types"
)

// NewFromConfig assembles a ready-to-run engine: the configured generation
// client, a file-backed document store for external references, a resolver
// carrying the configured defaults, and templates loaded from the template
// directory if it exists.
func NewFromConfig(cfg *config.Config) (*Engine, error) {
	logger := config.NewLogger(cfg.Logging)

	client, err := newClient(cfg.LLM)
	if err != nil {
		return nil, err
	}

	store := data.NewStore(cfg.Data.Dir, data.WithLogger(logger))

	resolverOpts := []resolve.Option{
		resolve.WithLoader(store),
		resolve.WithMaxIterations(cfg.Resolver.MaxIterations),
		resolve.WithLogger(logger),
	}
	if len(cfg.Defaults) > 0 {
		resolverOpts = append(resolverOpts, resolve.WithDefaults(cfg.Defaults))
	}

	e := NewEngine(client,
		WithResolver(resolve.NewResolver(resolverOpts...)),
		WithLogger(logger),
		WithRetries(cfg.Engine.MaxRetries, cfg.Engine.RetryBackoff),
	)

	if cfg.Templates.Dir != "" {
		if _, statErr := os.Stat(cfg.Templates.Dir); statErr == nil {
			if err := e.templates.LoadFromDirectory(cfg.Templates.Dir); err != nil {
				return nil, err
			}
		}
	}

	return e, nil
}

func newClient(cfg config.LLMConfig) (llm.Client, error) {
	switch cfg.Provider {
	case "openai", "":
		return llm.NewOpenAIClient(cfg.Client)
	case "ollama":
		return llm.NewOllamaClient(cfg.Client)
	case "mock":
		return llm.NewMockClient(), nil
	default:
		return nil, types.NewError(ErrUnknownProvider,
			"unknown llm provider: "+cfg.Provider)
	}
}
