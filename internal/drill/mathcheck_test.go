package drill

import (
	"errors"
	"strings"
	"testing"
)

func TestVerify_HandBuilt(t *testing.T) {
	g := NewSeededGenerator(1)
	q := g.GenerateCategory(CategoryQuadratic, 1)
	if err := Verify(q); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestVerify_DetectsWrongAnswer(t *testing.T) {
	q := Question{
		Category: CategoryAddition,
		Level:    1,
		Text:     "Qual é a soma de 3 + 4?\nFórmula: a + b",
		Answer:   Numeric(8),
		Operands: []int{3, 4},
	}

	err := Verify(q)
	var mm *MismatchError
	if !errors.As(err, &mm) {
		t.Fatalf("Verify error = %v, want *MismatchError", err)
	}
	if mm.Computed.String() != "7" {
		t.Errorf("computed = %q, want 7", mm.Computed.String())
	}
}

func TestVerify_DetectsOperandDrift(t *testing.T) {
	q := Question{
		Category: CategoryAddition,
		Text:     "Qual é a soma de 3 + 4?",
		Answer:   Numeric(7),
		Operands: []int{3, 5},
	}
	if err := Verify(q); err == nil || !strings.Contains(err.Error(), "differ") {
		t.Errorf("Verify error = %v, want operand mismatch", err)
	}
}

func TestVerify_UnparseableText(t *testing.T) {
	q := Question{Category: CategoryLinearSystem, Text: "Resolva o sistema", Operands: []int{}}
	if err := Verify(q); err == nil {
		t.Error("expected error for text without equations")
	}

	q = Question{Category: Category("bogus"), Text: "x"}
	if err := Verify(q); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestVerify_SignedCoefficients(t *testing.T) {
	g := NewSeededGenerator(2)
	sawNegative := false
	for i := 0; i < 500; i++ {
		q := g.GenerateCategory(CategoryLinearSystem, 4)
		if err := Verify(q); err != nil {
			t.Fatalf("Verify: %v\n%s", err, q.Text)
		}
		for _, op := range q.Operands {
			if op < 0 {
				sawNegative = true
			}
		}
	}
	if !sawNegative {
		t.Error("no negative coefficient in 500 linear systems")
	}
}
