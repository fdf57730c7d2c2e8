package drill

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
)

// Regex patterns for extracting operands back out of question text.
var (
	additionRe       = regexp.MustCompile(`soma de (\d+) \+ (\d+)\?`)
	subtractionRe    = regexp.MustCompile(`diferença de (\d+) - (\d+)\?`)
	multiplicationRe = regexp.MustCompile(`produto de (\d+) \* (\d+)\?`)
	divisionRe       = regexp.MustCompile(`quociente de (\d+) / (\d+)\?`)
	quadraticRe      = regexp.MustCompile(`quadrática: (\d+)x² ([+-]) (\d+)x ([+-]) (\d+) = 0`)
	logRe            = regexp.MustCompile(`log_(\d+)\((\d+)\)`)
	sinRe            = regexp.MustCompile(`sin\((\d+)°\)`)
	triangleRe       = regexp.MustCompile(`base (\d+) e altura (\d+)`)
	equationRe       = regexp.MustCompile(`(?m)^(\d+)x ([+-]) (\d+)y = (-?\d+)$`)
)

// MismatchError reports a question whose text and canonical answer disagree.
type MismatchError struct {
	Category Category
	Computed Answer
	Stored   Answer
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: computed %q from text but answer is %q",
		e.Category, e.Computed.String(), e.Stored.String())
}

// Verify recomputes the answer of q from its text alone and returns a
// *MismatchError if it differs from q.Answer, or an error if the operands
// cannot be extracted or differ from q.Operands.
func Verify(q Question) error {
	operands, err := extractOperands(q.Category, q.Text)
	if err != nil {
		return err
	}
	if !slices.Equal(operands, q.Operands) {
		return fmt.Errorf("%s: text operands %v differ from recorded %v", q.Category, operands, q.Operands)
	}

	computed := computeAnswer(q.Category, operands)
	if !answersEqual(computed, q.Answer) {
		return &MismatchError{Category: q.Category, Computed: computed, Stored: q.Answer}
	}
	return nil
}

// extractOperands pulls the integer parameters of a question from its text,
// in the order they appear.
func extractOperands(c Category, text string) ([]int, error) {
	var re *regexp.Regexp
	switch c {
	case CategoryAddition:
		re = additionRe
	case CategorySubtraction:
		re = subtractionRe
	case CategoryMultiplication:
		re = multiplicationRe
	case CategoryDivision:
		re = divisionRe
	case CategoryLogarithmic:
		re = logRe
	case CategoryTrigonometric:
		re = sinRe
	case CategoryGeometry:
		re = triangleRe
	case CategoryQuadratic:
		m := quadraticRe.FindStringSubmatch(text)
		if m == nil {
			return nil, fmt.Errorf("%s: no equation found in text", c)
		}
		return atoiSigned(m[1], m[2], m[3], m[4], m[5])
	case CategoryLinearSystem:
		ms := equationRe.FindAllStringSubmatch(text, -1)
		if len(ms) != 2 {
			return nil, fmt.Errorf("%s: expected 2 equations, found %d", c, len(ms))
		}
		var out []int
		for _, m := range ms {
			coeffs, err := atoiSigned(m[1], m[2], m[3])
			if err != nil {
				return nil, err
			}
			rhs, err := strconv.Atoi(m[4])
			if err != nil {
				return nil, err
			}
			out = append(out, coeffs[0], coeffs[1], rhs)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown category %q", c)
	}

	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil, fmt.Errorf("%s: no operands found in text", c)
	}
	out := make([]int, 0, len(m)-1)
	for _, s := range m[1:] {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// atoiSigned parses "a", then ("sign", "magnitude") pairs, into signed ints.
func atoiSigned(first string, signed ...string) ([]int, error) {
	a, err := strconv.Atoi(first)
	if err != nil {
		return nil, err
	}
	out := []int{a}
	for i := 0; i+1 < len(signed); i += 2 {
		n, err := strconv.Atoi(signed[i+1])
		if err != nil {
			return nil, err
		}
		if signed[i] == "-" {
			n = -n
		}
		out = append(out, n)
	}
	return out, nil
}

func computeAnswer(c Category, ops []int) Answer {
	switch c {
	case CategoryAddition:
		return Numeric(float64(ops[0]) + float64(ops[1]))
	case CategorySubtraction:
		return Numeric(float64(ops[0]) - float64(ops[1]))
	case CategoryMultiplication:
		return Numeric(float64(ops[0]) * float64(ops[1]))
	case CategoryDivision:
		return Numeric(Round2(float64(ops[0]) / float64(ops[1])))
	case CategoryLogarithmic:
		return Numeric(Round2(logBase(ops[0], ops[1])))
	case CategoryTrigonometric:
		return Numeric(Round2(sinDegrees(ops[0])))
	case CategoryGeometry:
		return Numeric(Round2(float64(ops[0]) * float64(ops[1]) / 2))
	case CategoryQuadratic:
		return solveQuadratic(ops[0], ops[1], ops[2])
	default:
		return solveLinearSystem(ops[0], ops[1], ops[2], ops[3], ops[4], ops[5])
	}
}

func answersEqual(a, b Answer) bool {
	return a.Kind == b.Kind && slices.Equal(a.Values, b.Values)
}
