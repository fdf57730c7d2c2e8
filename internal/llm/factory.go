package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/luiz1745/jogo-de-matematica/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped as
// caller → retry → logging → base. It returns ErrNoProvider when cfg
// selects none. repo may be nil.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo, log *logrus.Entry) (Provider, error) {
	if !cfg.Enabled() {
		return nil, ErrNoProvider
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	log = log.WithField("provider", cfg.Provider)
	logged := WithLogging(base, cfg.Provider, repo, log)
	return WithRetry(logged, cfg.Retry, func(attempt int, wait time.Duration, err error) {
		log.WithError(err).WithFields(logrus.Fields{
			"attempt": attempt,
			"wait":    wait.String(),
		}).Debug("retrying llm request")
	}), nil
}
