// Package config defines the runtime configuration for the generation
// pipeline and loads it from YAML files via viper.
package config

import (
	"time"

	"github.com/storyloom/loom/internal/llm"
)

// Config is the root configuration.
type Config struct {
	Resolver  ResolverConfig    `mapstructure:"resolver" yaml:"resolver"`
	Engine    EngineConfig      `mapstructure:"engine" yaml:"engine"`
	LLM       LLMConfig         `mapstructure:"llm" yaml:"llm"`
	Data      DataConfig        `mapstructure:"data" yaml:"data"`
	Templates TemplatesConfig   `mapstructure:"templates" yaml:"templates"`
	Logging   LoggingConfig     `mapstructure:"logging" yaml:"logging"`
	Defaults  map[string]string `mapstructure:"defaults" yaml:"defaults,omitempty"`
}

// ResolverConfig controls placeholder resolution.
type ResolverConfig struct {
	MaxIterations int `mapstructure:"max_iterations" yaml:"max_iterations" validate:"min=1,max=100"`
}

// EngineConfig controls generation retries.
type EngineConfig struct {
	MaxRetries   int           `mapstructure:"max_retries" yaml:"max_retries" validate:"min=0,max=10"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff" yaml:"retry_backoff" validate:"min=0"`
}

// LLMConfig selects and configures the model provider.
type LLMConfig struct {
	Provider string           `mapstructure:"provider" yaml:"provider" validate:"omitempty,oneof=openai ollama mock"`
	Client   llm.ClientConfig `mapstructure:"client" yaml:"client"`
}

// DataConfig locates the external document store.
type DataConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// TemplatesConfig locates template definition files.
type TemplatesConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"omitempty,oneof=text json"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Resolver: ResolverConfig{
			MaxIterations: 20,
		},
		Engine: EngineConfig{
			MaxRetries:   3,
			RetryBackoff: 500 * time.Millisecond,
		},
		LLM: LLMConfig{
			Provider: "openai",
		},
		Data: DataConfig{
			Dir: "data",
		},
		Templates: TemplatesConfig{
			Dir: "templates",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
