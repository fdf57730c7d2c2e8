package drill

// MaxLevel is the highest difficulty level.
const MaxLevel = 10

// MinLevel is the lowest difficulty level.
const MinLevel = 1

// Tier groups categories into the two pools a question is drawn from.
type Tier string

const (
	TierBasic    Tier = "basic"
	TierAdvanced Tier = "advanced"
)

// Category identifies the kind of question.
type Category string

const (
	CategoryAddition       Category = "addition"
	CategorySubtraction    Category = "subtraction"
	CategoryMultiplication Category = "multiplication"
	CategoryDivision       Category = "division"

	CategoryQuadratic     Category = "quadratic"
	CategoryLogarithmic   Category = "logarithmic"
	CategoryTrigonometric Category = "trigonometric"
	CategoryGeometry      Category = "geometry"
	CategoryLinearSystem  Category = "linear-system"
)

// BasicCategories lists the basic pool in selection order.
var BasicCategories = []Category{
	CategoryAddition,
	CategorySubtraction,
	CategoryMultiplication,
	CategoryDivision,
}

// AdvancedCategories lists the advanced pool in selection order.
var AdvancedCategories = []Category{
	CategoryQuadratic,
	CategoryLogarithmic,
	CategoryTrigonometric,
	CategoryGeometry,
	CategoryLinearSystem,
}

// Tier returns the pool the category belongs to.
func (c Category) Tier() Tier {
	for _, b := range BasicCategories {
		if b == c {
			return TierBasic
		}
	}
	return TierAdvanced
}

// DisplayName returns the Portuguese label shown to the learner.
func (c Category) DisplayName() string {
	switch c {
	case CategoryAddition:
		return "Adição"
	case CategorySubtraction:
		return "Subtração"
	case CategoryMultiplication:
		return "Multiplicação"
	case CategoryDivision:
		return "Divisão"
	case CategoryQuadratic:
		return "Equação quadrática"
	case CategoryLogarithmic:
		return "Logaritmo"
	case CategoryTrigonometric:
		return "Trigonometria"
	case CategoryGeometry:
		return "Geometria"
	case CategoryLinearSystem:
		return "Sistema linear"
	}
	return string(c)
}

// Question is a generated drill question. It is never mutated after
// generation.
type Question struct {
	// Category is the kind of question.
	Category Category

	// Level is the difficulty level the operands were sampled at.
	Level int

	// Text is the prompt shown to the learner, including a "Fórmula:" line.
	Text string

	// Answer is the canonical answer the submission is graded against.
	Answer Answer

	// Operands holds the sampled integer parameters in the order they
	// appear in Text.
	Operands []int
}

// ClampLevel forces level into [MinLevel, MaxLevel].
func ClampLevel(level int) int {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}
