package drill

import (
	"testing"
)

func TestGrade_Numeric(t *testing.T) {
	ans := Numeric(3.5)

	tests := []struct {
		input string
		want  Verdict
	}{
		{"3.5", VerdictCorrect},
		{"3.50", VerdictCorrect},
		{" 3.5 ", VerdictCorrect},
		{"3.51", VerdictIncorrect},
		{"3.499", VerdictIncorrect},
		{"3.5, 1", VerdictIncorrect},
		{"abc", VerdictInvalid},
		{"", VerdictInvalid},
		{"   ", VerdictInvalid},
		{"3.5.1", VerdictInvalid},
		{"NaN", VerdictInvalid},
		{"inf", VerdictInvalid},
		{"1e400", VerdictInvalid},
	}

	for _, tc := range tests {
		if got := Grade(tc.input, ans); got != tc.want {
			t.Errorf("Grade(%q, 3.5) = %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestGrade_IntegerAnswer(t *testing.T) {
	ans := Numeric(7)
	for _, in := range []string{"7", "7.0", "007", "7.00"} {
		if got := Grade(in, ans); got != VerdictCorrect {
			t.Errorf("Grade(%q, 7) = %s, want correct", in, got)
		}
	}
}

func TestGrade_CanonicalTextAlwaysCorrect(t *testing.T) {
	g := NewSeededGenerator(123)
	for level := MinLevel; level <= MaxLevel; level++ {
		for i := 0; i < 100; i++ {
			q := g.Generate(level)
			if got := Grade(q.Answer.String(), q.Answer); got != VerdictCorrect {
				t.Fatalf("canonical %q graded %s for %q", q.Answer.String(), got, q.Text)
			}
		}
	}
}

func TestGrade_OffByMoreThanRoundingIsIncorrect(t *testing.T) {
	g := NewSeededGenerator(321)
	for level := MinLevel; level <= MaxLevel; level++ {
		for i := 0; i < 100; i++ {
			q := g.GenerateCategory(CategoryDivision, level)
			wrong := q.Answer.Values[0] + 0.01
			if got := Grade(Numeric(wrong).String(), q.Answer); got != VerdictIncorrect {
				t.Fatalf("%v graded %s against %v", wrong, got, q.Answer.Values[0])
			}
		}
	}
}

func TestGrade_Roots(t *testing.T) {
	ans := Roots(2, -1)

	tests := []struct {
		input string
		want  Verdict
	}{
		{"2.00 e -1.00", VerdictCorrect},
		{"2, -1", VerdictCorrect},
		{"-1, 2", VerdictCorrect},
		{"-1; 2", VerdictCorrect},
		{"2 -1", VerdictCorrect},
		{"2", VerdictIncorrect},
		{"2, 1", VerdictIncorrect},
		{"2, -1, 3", VerdictIncorrect},
		{"2, x", VerdictInvalid},
		{PhraseNoRealSolution, VerdictIncorrect},
	}

	for _, tc := range tests {
		if got := Grade(tc.input, ans); got != tc.want {
			t.Errorf("Grade(%q, roots 2/-1) = %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestGrade_DoubleRoot(t *testing.T) {
	ans := solveQuadratic(1, -4, 4)
	if ans.Kind != AnswerRoots {
		t.Fatalf("kind = %s, want roots", ans.Kind)
	}
	for _, in := range []string{"2", "2, 2", "2.00 e 2.00"} {
		if got := Grade(in, ans); got != VerdictCorrect {
			t.Errorf("Grade(%q, double root 2) = %s, want correct", in, got)
		}
	}
}

func TestGrade_Pair(t *testing.T) {
	ans := Pair(1.5, -2)

	tests := []struct {
		input string
		want  Verdict
	}{
		{"x = 1.50, y = -2.00", VerdictCorrect},
		{"1.5, -2", VerdictCorrect},
		{"X=1.5 Y=-2", VerdictCorrect},
		{"-2, 1.5", VerdictIncorrect},
		{"1.5", VerdictIncorrect},
	}

	for _, tc := range tests {
		if got := Grade(tc.input, ans); got != tc.want {
			t.Errorf("Grade(%q, pair 1.5/-2) = %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestGrade_NoRealSolution(t *testing.T) {
	ans := solveQuadratic(1, 0, 1)
	if ans.Kind != AnswerNoRealSolution {
		t.Fatalf("x² + 1 = 0: kind = %s, want no-real-solution", ans.Kind)
	}

	tests := []struct {
		input string
		want  Verdict
	}{
		{"não há solução real", VerdictCorrect},
		{"Não há solução real", VerdictCorrect},
		{"  NÃO HÁ SOLUÇÃO REAL  ", VerdictCorrect},
		{"nao ha solucao real", VerdictCorrect},
		{"não há solução única", VerdictIncorrect},
		{"0", VerdictIncorrect},
		{"1, 2", VerdictIncorrect},
		{"abc", VerdictInvalid},
	}

	for _, tc := range tests {
		if got := Grade(tc.input, ans); got != tc.want {
			t.Errorf("Grade(%q, no real solution) = %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestGrade_NoUniqueSolution(t *testing.T) {
	// a1 = b2 and a2 = b1, all equal: det = 2*2 - 2*2 = 0.
	ans := solveLinearSystem(2, 2, 5, 2, 2, 7)
	if ans.Kind != AnswerNoUniqueSolution {
		t.Fatalf("kind = %s, want no-unique-solution", ans.Kind)
	}

	if got := Grade("não há solução única", ans); got != VerdictCorrect {
		t.Errorf("phrase graded %s, want correct", got)
	}
	if got := Grade("1, 2", ans); got != VerdictIncorrect {
		t.Errorf("numeric pair graded %s, want incorrect", got)
	}
	if got := Grade("não há solução real", ans); got != VerdictIncorrect {
		t.Errorf("other phrase graded %s, want incorrect", got)
	}
}

func TestMatchPhrase(t *testing.T) {
	tests := []struct {
		input  string
		want   AnswerKind
		wantOK bool
	}{
		{"Não há solução real", AnswerNoRealSolution, true},
		{"nao  ha solucao unica", AnswerNoUniqueSolution, true},
		{"não há solução", 0, false},
		{"", 0, false},
		{"7", 0, false},
	}
	for _, tc := range tests {
		got, ok := MatchPhrase(tc.input)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("MatchPhrase(%q) = (%s, %v), want (%s, %v)", tc.input, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestParseNumbers(t *testing.T) {
	tests := []struct {
		input   string
		want    []float64
		wantErr bool
	}{
		{"3.5", []float64{3.5}, false},
		{"1.00 e -2.00", []float64{1, -2}, false},
		{"x = 1.00, y = 2.00", []float64{1, 2}, false},
		{"1,2", []float64{1, 2}, false},
		{"1e2", []float64{100}, false},
		{"", nil, true},
		{"x =", nil, true},
		{"1 e", nil, true},
		{"-inf", nil, true},
	}
	for _, tc := range tests {
		got, err := ParseNumbers(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseNumbers(%q) = %v, want error", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseNumbers(%q) unexpected error: %v", tc.input, err)
			continue
		}
		if len(got) != len(tc.want) {
			t.Errorf("ParseNumbers(%q) = %v, want %v", tc.input, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("ParseNumbers(%q)[%d] = %v, want %v", tc.input, i, got[i], tc.want[i])
			}
		}
	}
}
