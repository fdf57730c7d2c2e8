package config

import (
	"github.com/spf13/viper"

	"github.com/luiz1745/jogo-de-matematica/internal/explain"
	"github.com/luiz1745/jogo-de-matematica/internal/llm"
)

// setDefaults registers every key, which also makes each one reachable
// through its JOGO_* environment variable.
func setDefaults(v *viper.Viper) {
	v.SetDefault("db", "")
	v.SetDefault("seed", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.max_sessions", 1000)
	v.SetDefault("server.idle_timeout", "30m")

	exp := explain.DefaultConfig()
	v.SetDefault("explain.max_tokens", exp.MaxTokens)
	v.SetDefault("explain.temperature", exp.Temperature)

	l := llm.DefaultConfig()
	v.SetDefault("llm.provider", l.Provider)
	v.SetDefault("llm.timeout", l.Timeout)
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", l.Anthropic.Model)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", l.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", l.Gemini.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", l.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.retry.max_attempts", l.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", l.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", l.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", l.Retry.Multiplier)
}
