package explain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/luiz1745/jogo-de-matematica/internal/llm"
)

// ErrNothingToExplain is returned when there is no missed question.
var ErrNothingToExplain = errors.New("no missed question to explain")

// Service generates worked explanations through an LLM provider.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates an explanation service. A nil provider yields a
// service whose Explain always fails with llm.ErrNoProvider.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Available reports whether an LLM provider is configured.
func (s *Service) Available() bool {
	return s != nil && s.provider != nil
}

type explanationOutput struct {
	Title string   `json:"title"`
	Steps []string `json:"steps"`
	Tip   string   `json:"tip"`
}

// Explain asks the model for a worked solution of input.Question.
func (s *Service) Explain(ctx context.Context, input Input) (*Explanation, error) {
	if !s.Available() {
		return nil, llm.ErrNoProvider
	}
	if input.Question.Text == "" {
		return nil, ErrNothingToExplain
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeExplain)

	req := llm.SingleTurn(systemPrompt, buildUserMessage(input), ExplanationSchema, s.cfg.MaxTokens)
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("explanation: %w", err)
	}

	var out explanationOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse explanation response: %w", err)
	}
	if len(out.Steps) == 0 {
		return nil, fmt.Errorf("explanation has no steps")
	}

	return &Explanation{
		Category: input.Question.Category,
		Title:    out.Title,
		Steps:    out.Steps,
		Tip:      out.Tip,
		Answer:   input.Question.Answer.String(),
	}, nil
}
