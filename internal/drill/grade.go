package drill

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Verdict is the outcome of grading one submission.
type Verdict int

const (
	VerdictCorrect Verdict = iota + 1
	VerdictIncorrect
	VerdictInvalid
)

func (v Verdict) String() string {
	switch v {
	case VerdictCorrect:
		return "correct"
	case VerdictIncorrect:
		return "incorrect"
	case VerdictInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// ErrNotANumber is returned by ParseNumbers for text that does not parse to
// finite numbers.
var ErrNotANumber = errors.New("not a number")

// Grade compares a raw submission against the canonical answer.
//
// Rules:
//   - Text matching one of the two fixed phrases (trimmed, case- and
//     accent-insensitive) is correct only when the answer is that phrase.
//   - Anything else must parse to one or more finite numbers, otherwise the
//     submission is invalid.
//   - Numeric answers need exactly one number equal to the stored value.
//   - Roots need both roots in either order; a double root may be given once.
//   - Pairs need x then y.
//   - Numbers never match a sentinel answer.
func Grade(submitted string, answer Answer) Verdict {
	submitted = strings.TrimSpace(submitted)

	if kind, ok := MatchPhrase(submitted); ok {
		if kind == answer.Kind {
			return VerdictCorrect
		}
		return VerdictIncorrect
	}

	nums, err := ParseNumbers(submitted)
	if err != nil {
		return VerdictInvalid
	}
	if valuesMatch(nums, answer) {
		return VerdictCorrect
	}
	return VerdictIncorrect
}

// MatchPhrase reports which sentinel phrase s spells, if any.
func MatchPhrase(s string) (AnswerKind, bool) {
	folded := foldPhrase(s)
	if folded == "" {
		return 0, false
	}
	switch folded {
	case foldPhrase(PhraseNoRealSolution):
		return AnswerNoRealSolution, true
	case foldPhrase(PhraseNoUniqueSolution):
		return AnswerNoUniqueSolution, true
	}
	return 0, false
}

// foldPhrase case-folds s, strips diacritics and collapses whitespace, so
// "NAO HA SOLUCAO  REAL" folds like "Não há solução real".
func foldPhrase(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	folded := cases.Fold().String(stripped)
	return strings.Join(strings.Fields(folded), " ")
}

var (
	// "x = 1.5, y = 2" labels are dropped before splitting.
	coordLabelRe = regexp.MustCompile(`(?i)\b[xy]\s*=`)

	// Values may be separated by commas, semicolons, the word "e" or spaces.
	valueSepRe = regexp.MustCompile(`\s*(?:,|;|\s+e\s+|\s+)\s*`)
)

// ParseNumbers splits a submission into finite float64 values. It accepts a
// single number ("3.5"), a list ("1, -2"), and the canonical display forms
// of root pairs ("1.00 e -2.00") and coordinates ("x = 1.00, y = 2.00").
func ParseNumbers(s string) ([]float64, error) {
	s = strings.TrimSpace(coordLabelRe.ReplaceAllString(s, " "))
	if s == "" {
		return nil, fmt.Errorf("empty submission: %w", ErrNotANumber)
	}

	var out []float64
	for _, field := range valueSepRe.Split(s, -1) {
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", field, ErrNotANumber)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("non-finite value %q: %w", field, ErrNotANumber)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no values in %q: %w", s, ErrNotANumber)
	}
	return out, nil
}

func valuesMatch(nums []float64, answer Answer) bool {
	switch answer.Kind {
	case AnswerNumeric:
		return len(nums) == 1 && nums[0] == answer.Values[0]

	case AnswerRoots:
		r1, r2 := answer.Values[0], answer.Values[1]
		switch len(nums) {
		case 1:
			return r1 == r2 && nums[0] == r1
		case 2:
			return (nums[0] == r1 && nums[1] == r2) || (nums[0] == r2 && nums[1] == r1)
		}
		return false

	case AnswerPair:
		return len(nums) == 2 && nums[0] == answer.Values[0] && nums[1] == answer.Values[1]
	}
	return false
}
