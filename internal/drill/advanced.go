package drill

import (
	"fmt"
	"math"
)

func (g *Generator) quadratic(level int) Question {
	a := g.between(1, 5+level)
	b := g.between(-10-level, 10+level)
	c := g.between(-10-level, 10+level)

	text := fmt.Sprintf("Resolva a equação quadrática: %dx² %s %dx %s %d = 0\n"+
		"Fórmula: x = (-b ± √(b² - 4ac)) / 2a\n"+
		"Responda as duas raízes separadas por vírgula.",
		a, sign(b), abs(b), sign(c), abs(c))

	return Question{
		Text:     text,
		Answer:   solveQuadratic(a, b, c),
		Operands: []int{a, b, c},
	}
}

// solveQuadratic returns the rounded roots, or NoRealSolution when the
// discriminant is negative. a is never zero.
func solveQuadratic(a, b, c int) Answer {
	disc := b*b - 4*a*c
	if disc < 0 {
		return NoRealSolution()
	}
	sq := math.Sqrt(float64(disc))
	r1 := (float64(-b) + sq) / float64(2*a)
	r2 := (float64(-b) - sq) / float64(2*a)
	return Roots(r1, r2)
}

func (g *Generator) logarithmic(level int) Question {
	base := g.pick(2, 10)
	n := g.between(1, pow10(level))
	return Question{
		Text: fmt.Sprintf("Resolva para x: log_%d(%d)\nFórmula: x = log_%d(%d) = ln(%d) / ln(%d)",
			base, n, base, n, n, base),
		Answer:   Numeric(Round2(logBase(base, n))),
		Operands: []int{base, n},
	}
}

// logBase uses the dedicated log2/log10 routines, which are exact on powers
// of the base.
func logBase(base, n int) float64 {
	switch base {
	case 2:
		return math.Log2(float64(n))
	case 10:
		return math.Log10(float64(n))
	}
	return math.Log(float64(n)) / math.Log(float64(base))
}

func (g *Generator) trigonometric(_ int) Question {
	angle := g.pick(30, 45, 60, 90)
	return Question{
		Text: fmt.Sprintf("Resolva para sin(%d°)\nFórmula: sin(θ), com θ = %d · π / 180 radianos",
			angle, angle),
		Answer:   Numeric(Round2(sinDegrees(angle))),
		Operands: []int{angle},
	}
}

func sinDegrees(angle int) float64 {
	return math.Sin(float64(angle) * math.Pi / 180)
}

func (g *Generator) geometry(level int) Question {
	base := g.between(1, 10+level)
	height := g.between(1, 10+level)
	return Question{
		Text: fmt.Sprintf("Calcule a área de um triângulo retângulo com base %d e altura %d\n"+
			"Fórmula: Área = 0,5 * base * altura", base, height),
		Answer:   Numeric(Round2(0.5 * float64(base) * float64(height))),
		Operands: []int{base, height},
	}
}

func (g *Generator) linearSystem(level int) Question {
	a1, b1, c1 := g.between(1, 5+level), g.between(-5-level, 5+level), g.between(-10-level, 10+level)
	a2, b2, c2 := g.between(1, 5+level), g.between(-5-level, 5+level), g.between(-10-level, 10+level)

	text := fmt.Sprintf("Resolva o sistema de equações:\n"+
		"%dx %s %dy = %d\n"+
		"%dx %s %dy = %d\n"+
		"Fórmula: x = (c1*b2 - c2*b1) / (a1*b2 - a2*b1)\n"+
		"         y = (a1*c2 - a2*c1) / (a1*b2 - a2*b1)\n"+
		"Responda no formato: x, y",
		a1, sign(b1), abs(b1), c1,
		a2, sign(b2), abs(b2), c2)

	return Question{
		Text:     text,
		Answer:   solveLinearSystem(a1, b1, c1, a2, b2, c2),
		Operands: []int{a1, b1, c1, a2, b2, c2},
	}
}

// solveLinearSystem applies Cramer's rule, or returns NoUniqueSolution when
// the determinant is zero.
func solveLinearSystem(a1, b1, c1, a2, b2, c2 int) Answer {
	det := a1*b2 - a2*b1
	if det == 0 {
		return NoUniqueSolution()
	}
	x := float64(c1*b2-c2*b1) / float64(det)
	y := float64(a1*c2-a2*c1) / float64(det)
	return Pair(x, y)
}

func sign(n int) string {
	if n < 0 {
		return "-"
	}
	return "+"
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
