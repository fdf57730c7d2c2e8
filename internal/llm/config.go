package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration. It is filled by the config
// package from the `llm` section of the config file and JOGO_LLM_*
// environment variables.
type Config struct {
	// Provider selects which LLM provider to use. Empty disables
	// explanations unless a standard API key is discovered.
	Provider string `mapstructure:"provider" validate:"omitempty,oneof=anthropic openai gemini openrouter mock"`

	Anthropic  AnthropicConfig  `mapstructure:"anthropic"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Retry      RetryConfig      `mapstructure:"retry"`

	// Timeout bounds a single explanation, including retries.
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts" validate:"gte=1,lte=10"`
	InitialWait time.Duration `mapstructure:"initial_wait" validate:"gte=0"`
	MaxWait     time.Duration `mapstructure:"max_wait" validate:"gte=0"`
	Multiplier  float64       `mapstructure:"multiplier" validate:"gte=1"`
}

// DefaultConfig returns a Config with explanations disabled and the
// default model of every provider filled in.
func DefaultConfig() Config {
	return Config{
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool {
	return c.Provider != ""
}

// Discover fills in a provider from the standard API key variables when
// none was configured, probing Gemini, OpenAI, Anthropic and OpenRouter in
// that order. It reports whether a provider is selected afterwards.
func (c *Config) Discover() bool {
	if c.Provider != "" {
		return true
	}

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		c.Provider = ProviderGemini
		c.Gemini.APIKey = k
	} else if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		c.Provider = ProviderOpenAI
		c.OpenAI.APIKey = k
	} else if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		c.Provider = ProviderAnthropic
		c.Anthropic.APIKey = k
	} else if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		c.Provider = ProviderOpenRouter
		c.OpenRouter.APIKey = k
	}
	return c.Provider != ""
}

// Validate checks that the selected provider has its API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("JOGO_LLM_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("JOGO_LLM_OPENAI_API_KEY is required for the openai provider")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("JOGO_LLM_GEMINI_API_KEY is required for the gemini provider")
		}
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("JOGO_LLM_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case ProviderMock, "":
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

// resolveModel maps a friendly model name to a provider model ID. Names not
// in the table are used as-is.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
