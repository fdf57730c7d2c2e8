package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/luiz1745/jogo-de-matematica/internal/explain"
	"github.com/luiz1745/jogo-de-matematica/internal/llm"
	"github.com/luiz1745/jogo-de-matematica/internal/validate"
)

// EnvPrefix is prepended to every environment override, so the key
// llm.retry.max_attempts is read from JOGO_LLM_RETRY_MAX_ATTEMPTS.
const EnvPrefix = "JOGO"

// Config is the full application configuration.
type Config struct {
	// DB is the journal path. Empty selects the default data directory.
	DB string `mapstructure:"db"`

	// Seed fixes the question generator. Zero seeds from the clock.
	Seed uint64 `mapstructure:"seed"`

	Log     LogConfig     `mapstructure:"log"`
	Server  ServerConfig  `mapstructure:"server"`
	Explain ExplainConfig `mapstructure:"explain"`
	LLM     llm.Config    `mapstructure:"llm"`
}

// LogConfig selects where and how logs are written.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`

	// File receives log output. Empty means stderr, except in the TUI,
	// which falls back to a file next to the journal.
	File string `mapstructure:"file"`
}

// ServerConfig configures `jogo serve`.
type ServerConfig struct {
	Addr           string        `mapstructure:"addr" validate:"required,hostname_port"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	MaxSessions    int           `mapstructure:"max_sessions" validate:"gte=1"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout" validate:"gte=0"`
}

// ExplainConfig tunes worked explanations.
type ExplainConfig struct {
	MaxTokens   int     `mapstructure:"max_tokens" validate:"gte=64,lte=8192"`
	Temperature float64 `mapstructure:"temperature" validate:"gte=0,lte=1"`
}

// ExplainService converts the explanation settings for the explain package.
func (c *Config) ExplainService() explain.Config {
	return explain.Config{
		MaxTokens:   c.Explain.MaxTokens,
		Temperature: c.Explain.Temperature,
		Timeout:     c.LLM.Timeout,
	}
}

// Load reads configuration from defaults, the config file, JOGO_*
// environment variables and flags, in increasing order of precedence.
// path names an explicit config file; when empty, config.yaml is looked up
// in the user config directory and a missing file is not an error. flags
// may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := bindFlags(v, flags); err != nil {
		return nil, err
	}

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		if dir := defaultConfigDir(); dir != "" {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.LLM.Discover()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and the selected LLM provider.
func (c *Config) Validate() error {
	if err := validate.New("mapstructure").Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// flagKeys maps persistent flag names to config keys.
var flagKeys = map[string]string{
	"db":        "db",
	"seed":      "seed",
	"log-level": "log.level",
	"addr":      "server.addr",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}
	return nil
}

func defaultConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "jogo")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "jogo")
}
