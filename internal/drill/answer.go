package drill

import (
	"fmt"
	"math"
	"strconv"
)

// Fixed phrases for the degenerate quadratic and linear-system cases.
const (
	PhraseNoRealSolution   = "Não há solução real"
	PhraseNoUniqueSolution = "Não há solução única"
)

// AnswerKind tags the variant held by an Answer.
type AnswerKind int

const (
	// AnswerNumeric is a single number (arithmetic, log, trig, geometry).
	AnswerNumeric AnswerKind = iota + 1

	// AnswerRoots is the pair of real roots of a quadratic, unordered.
	AnswerRoots

	// AnswerPair is the (x, y) solution of a linear system, ordered.
	AnswerPair

	// AnswerNoRealSolution is the sentinel for a negative discriminant.
	AnswerNoRealSolution

	// AnswerNoUniqueSolution is the sentinel for a zero determinant.
	AnswerNoUniqueSolution
)

func (k AnswerKind) String() string {
	switch k {
	case AnswerNumeric:
		return "numeric"
	case AnswerRoots:
		return "roots"
	case AnswerPair:
		return "pair"
	case AnswerNoRealSolution:
		return "no-real-solution"
	case AnswerNoUniqueSolution:
		return "no-unique-solution"
	default:
		return "unknown"
	}
}

// Answer is the canonical answer of a question. Values holds one number for
// AnswerNumeric, two for AnswerRoots and AnswerPair, and none for sentinels.
type Answer struct {
	Kind   AnswerKind
	Values []float64
}

// Numeric returns a single-number answer.
func Numeric(v float64) Answer {
	return Answer{Kind: AnswerNumeric, Values: []float64{v}}
}

// Roots returns a quadratic root pair, each rounded to 2 decimals.
func Roots(r1, r2 float64) Answer {
	return Answer{Kind: AnswerRoots, Values: []float64{Round2(r1), Round2(r2)}}
}

// Pair returns a linear-system solution, each coordinate rounded to 2 decimals.
func Pair(x, y float64) Answer {
	return Answer{Kind: AnswerPair, Values: []float64{Round2(x), Round2(y)}}
}

// NoRealSolution returns the negative-discriminant sentinel.
func NoRealSolution() Answer {
	return Answer{Kind: AnswerNoRealSolution}
}

// NoUniqueSolution returns the zero-determinant sentinel.
func NoUniqueSolution() Answer {
	return Answer{Kind: AnswerNoUniqueSolution}
}

// IsSentinel reports whether the answer is one of the two fixed phrases.
func (a Answer) IsSentinel() bool {
	return a.Kind == AnswerNoRealSolution || a.Kind == AnswerNoUniqueSolution
}

// Phrase returns the fixed phrase of a sentinel answer, or "" otherwise.
func (a Answer) Phrase() string {
	switch a.Kind {
	case AnswerNoRealSolution:
		return PhraseNoRealSolution
	case AnswerNoUniqueSolution:
		return PhraseNoUniqueSolution
	}
	return ""
}

// String renders the canonical display form:
//
//	numeric:  "7", "3.5"
//	roots:    "1.00 e -2.00"
//	pair:     "x = 1.00, y = -0.50"
//	sentinel: the fixed phrase
func (a Answer) String() string {
	switch a.Kind {
	case AnswerNumeric:
		return strconv.FormatFloat(a.Values[0], 'f', -1, 64)
	case AnswerRoots:
		return fmt.Sprintf("%s e %s", format2(a.Values[0]), format2(a.Values[1]))
	case AnswerPair:
		return fmt.Sprintf("x = %s, y = %s", format2(a.Values[0]), format2(a.Values[1]))
	case AnswerNoRealSolution, AnswerNoUniqueSolution:
		return a.Phrase()
	}
	return ""
}

// Round2 rounds v to 2 decimal places exactly as "%.2f" renders it, so the
// stored value equals what strconv.ParseFloat returns for the rendered text.
// Negative zero is normalised to zero.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	if r == 0 {
		return 0
	}
	return r
}

// format2 renders v with exactly two decimals, without a "-0.00".
func format2(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
