package session

import (
	"slices"
	"time"

	"github.com/luiz1745/jogo-de-matematica/internal/drill"
)

// Summary holds the end-of-run figures shown when the learner quits.
type Summary struct {
	Duration      time.Duration
	Level         int
	Score         int
	Answered      int
	Correct       int
	Invalid       int
	Accuracy      float64
	CategoryStats []CategoryResult
}

// BuildSummary creates a Summary from the controller's current state.
func (c *Controller) BuildSummary() *Summary {
	s := &c.state
	var results []CategoryResult
	for _, r := range s.PerCategory {
		results = append(results, *r)
	}
	slices.SortFunc(results, func(a, b CategoryResult) int {
		return categoryOrder(a.Category) - categoryOrder(b.Category)
	})

	var accuracy float64
	if graded := s.Answered - s.Invalid; graded > 0 {
		accuracy = float64(s.Correct) / float64(graded)
	}

	return &Summary{
		Duration:      c.now().Sub(s.StartTime),
		Level:         s.Level,
		Score:         s.Score,
		Answered:      s.Answered,
		Correct:       s.Correct,
		Invalid:       s.Invalid,
		Accuracy:      accuracy,
		CategoryStats: results,
	}
}

// categoryOrder sorts basic categories before advanced ones, in pool order.
func categoryOrder(c drill.Category) int {
	if i := slices.Index(drill.BasicCategories, c); i >= 0 {
		return i
	}
	if i := slices.Index(drill.AdvancedCategories, c); i >= 0 {
		return len(drill.BasicCategories) + i
	}
	return len(drill.BasicCategories) + len(drill.AdvancedCategories)
}
