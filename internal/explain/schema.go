package explain

import "github.com/luiz1745/jogo-de-matematica/internal/llm"

// ExplanationSchema defines the JSON schema for worked explanations.
var ExplanationSchema = &llm.Schema{
	Name:        "worked-explanation",
	Description: "Step-by-step worked solution of a drill question, in Brazilian Portuguese",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short title naming the technique (3-8 words)",
			},
			"steps": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "2-6 steps without numbering, each one sentence with the arithmetic shown",
			},
			"tip": map[string]any{
				"type":        "string",
				"description": "One sentence on the likely mistake behind the learner's answer",
			},
		},
		"required":             []any{"title", "steps", "tip"},
		"additionalProperties": false,
	},
}
