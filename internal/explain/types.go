package explain

import (
	"fmt"
	"strings"

	"github.com/luiz1745/jogo-de-matematica/internal/drill"
)

// Explanation is an LLM-generated worked solution for one missed question.
type Explanation struct {
	Category drill.Category `json:"category"`
	Title    string         `json:"title"`
	Steps    []string       `json:"steps"`
	Tip      string         `json:"tip"`

	// Answer is always the canonical answer, never the model's.
	Answer string `json:"answer"`
}

// Input holds everything the prompt needs.
type Input struct {
	Question  drill.Question
	Submitted string
}

// String renders the explanation for line-oriented shells.
func (e *Explanation) String() string {
	var b strings.Builder
	if e.Title != "" {
		b.WriteString(e.Title)
		b.WriteString("\n")
	}
	for i, s := range e.Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	fmt.Fprintf(&b, "Resposta: %s\n", e.Answer)
	if e.Tip != "" {
		fmt.Fprintf(&b, "Dica: %s\n", e.Tip)
	}
	return b.String()
}
