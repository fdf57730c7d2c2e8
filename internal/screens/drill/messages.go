package drill

import (
	"github.com/luiz1745/jogo-de-matematica/internal/explain"
)

// explanationMsg carries the result of an explanation request. Question
// identifies the miss it was requested for, so a late reply for an older
// miss is dropped.
type explanationMsg struct {
	Question    string
	Explanation *explain.Explanation
	Err         error
}
