package drill

import (
	"math/rand/v2"
)

// Generator synthesises questions from an injected random source. A
// Generator is not safe for concurrent use; each session owns its own.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a Generator drawing from src.
func NewGenerator(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// NewSeededGenerator creates a deterministic Generator backed by PCG.
func NewSeededGenerator(seed uint64) *Generator {
	return NewGenerator(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate picks the basic or advanced pool with equal probability, then a
// category uniformly within it, and builds a question at the given level.
// Out-of-range levels are clamped.
func (g *Generator) Generate(level int) Question {
	pool := BasicCategories
	if g.rng.IntN(2) == 1 {
		pool = AdvancedCategories
	}
	return g.GenerateCategory(pool[g.rng.IntN(len(pool))], level)
}

// GenerateCategory builds a question of a specific category.
func (g *Generator) GenerateCategory(c Category, level int) Question {
	level = ClampLevel(level)

	var q Question
	switch c {
	case CategoryAddition:
		q = g.addition(level)
	case CategorySubtraction:
		q = g.subtraction(level)
	case CategoryMultiplication:
		q = g.multiplication(level)
	case CategoryDivision:
		q = g.division(level)
	case CategoryQuadratic:
		q = g.quadratic(level)
	case CategoryLogarithmic:
		q = g.logarithmic(level)
	case CategoryTrigonometric:
		q = g.trigonometric(level)
	case CategoryGeometry:
		q = g.geometry(level)
	default:
		c = CategoryLinearSystem
		q = g.linearSystem(level)
	}
	q.Category = c
	q.Level = level
	return q
}

// between returns a uniform integer in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

// pick returns a uniform element of choices.
func (g *Generator) pick(choices ...int) int {
	return choices[g.rng.IntN(len(choices))]
}

// pow10 returns 10^n for small non-negative n.
func pow10(n int) int {
	v := 1
	for range n {
		v *= 10
	}
	return v
}
