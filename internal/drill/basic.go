package drill

import "fmt"

func (g *Generator) addition(level int) Question {
	rangeMax := pow10(level)
	a := g.between(1, rangeMax)
	b := g.between(1, rangeMax)
	return Question{
		Text:     fmt.Sprintf("Qual é a soma de %d + %d?\nFórmula: a + b", a, b),
		Answer:   Numeric(float64(a + b)),
		Operands: []int{a, b},
	}
}

// subtraction samples b from [1, a] so the difference is never negative.
func (g *Generator) subtraction(level int) Question {
	rangeMax := pow10(level)
	a := g.between(1, rangeMax)
	b := g.between(1, a)
	return Question{
		Text:     fmt.Sprintf("Qual é a diferença de %d - %d?\nFórmula: a - b", a, b),
		Answer:   Numeric(float64(a - b)),
		Operands: []int{a, b},
	}
}

func (g *Generator) multiplication(level int) Question {
	a := g.between(1, 10+level)
	b := g.between(1, 10+level)
	return Question{
		Text:     fmt.Sprintf("Qual é o produto de %d * %d?\nFórmula: a * b", a, b),
		Answer:   Numeric(float64(a * b)),
		Operands: []int{a, b},
	}
}

func (g *Generator) division(level int) Question {
	a := g.between(1, pow10(level))
	b := g.between(1, 10+level)
	return Question{
		Text: fmt.Sprintf("Qual é o quociente de %d / %d?\nFórmula: a / b (arredonde para 2 casas decimais)",
			a, b),
		Answer:   Numeric(Round2(float64(a) / float64(b))),
		Operands: []int{a, b},
	}
}
