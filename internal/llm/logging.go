package llm

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/luiz1745/jogo-de-matematica/internal/store"
)

// LoggingProvider is a decorator that logs every request and, when a
// journal is attached, records it as an LLM request event.
type LoggingProvider struct {
	inner Provider
	name  string
	repo  store.EventRepo
	log   *logrus.Entry
}

// WithLogging wraps a Provider with request logging. name is the provider
// kind recorded in the journal; repo may be nil.
func WithLogging(p Provider, name string, repo store.EventRepo, log *logrus.Entry) Provider {
	return &LoggingProvider{inner: p, name: name, repo: repo, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	latency := time.Since(start)

	data := store.LLMRequestEventData{
		Provider:  l.name,
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: latency.Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	fields := logrus.Fields{
		"model":         data.Model,
		"purpose":       data.Purpose,
		"latency_ms":    data.LatencyMs,
		"input_tokens":  data.InputTokens,
		"output_tokens": data.OutputTokens,
	}
	if cost := LookupCost(data.Model); cost != nil {
		fields["cost_usd"] = cost.Cost(data.InputTokens, data.OutputTokens)
	}
	entry := l.log.WithFields(fields)
	if err != nil {
		entry.WithError(err).Warn("llm request failed")
	} else {
		entry.Info("llm request")
	}

	if l.repo != nil {
		if logErr := l.repo.AppendLLMRequest(ctx, data); logErr != nil {
			l.log.WithError(logErr).Warn("failed to record LLM request event")
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
