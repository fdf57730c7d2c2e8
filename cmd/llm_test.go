package cmd

import (
	"testing"

	"github.com/luiz1745/jogo-de-matematica/internal/store"
)

func TestAggregateByModel(t *testing.T) {
	rec := func(model string, in, out int, ok bool) store.LLMRequestRecord {
		return store.LLMRequestRecord{LLMRequestEventData: store.LLMRequestEventData{
			Model: model, InputTokens: in, OutputTokens: out, Success: ok,
		}}
	}
	got := aggregateByModel([]store.LLMRequestRecord{
		rec("b-model", 10, 5, true),
		rec("a-model", 100, 50, true),
		rec("b-model", 20, 0, false),
	})

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Model != "a-model" || got[1].Model != "b-model" {
		t.Fatalf("order = %s, %s; want a-model, b-model", got[0].Model, got[1].Model)
	}
	b := got[1]
	if b.Calls != 2 || b.Failed != 1 || b.InputTokens != 30 || b.OutputTokens != 5 {
		t.Errorf("b-model usage = %+v", b)
	}
}
