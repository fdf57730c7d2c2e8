package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/luiz1745/jogo-de-matematica/internal/llm"
	"github.com/luiz1745/jogo-de-matematica/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM requests made for explanations",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		rt, err := setup(cmd, "")
		if err != nil {
			return err
		}
		defer rt.Close()

		st, err := rt.requireStore()
		if err != nil {
			return err
		}
		events, err := st.RecentLLMRequests(cmd.Context(), limit, purpose)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM requests found.")
			return nil
		}

		fmt.Fprintf(out, "%-6s  %-19s  %-10s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"Seq", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 100))

		for _, e := range events {
			ok := "✓"
			if !e.Success {
				ok = "✗ " + e.ErrorMessage
			}
			fmt.Fprintf(out, "%-6d  %-19s  %-10s  %-28s  %-6d  %-6d  %-7d  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				truncate(e.Model, 28),
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

// modelUsage aggregates requests for one model.
type modelUsage struct {
	Model        string
	Calls        int
	Failed       int
	InputTokens  int
	OutputTokens int
}

func aggregateByModel(events []store.LLMRequestRecord) []modelUsage {
	byModel := make(map[string]*modelUsage)
	for _, e := range events {
		u, ok := byModel[e.Model]
		if !ok {
			u = &modelUsage{Model: e.Model}
			byModel[e.Model] = u
		}
		u.Calls++
		if !e.Success {
			u.Failed++
		}
		u.InputTokens += e.InputTokens
		u.OutputTokens += e.OutputTokens
	}

	out := make([]modelUsage, 0, len(byModel))
	for _, u := range byModel {
		out = append(out, *u)
	}
	slices.SortFunc(out, func(a, b modelUsage) int { return strings.Compare(a.Model, b.Model) })
	return out
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show LLM token usage and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd, "")
		if err != nil {
			return err
		}
		defer rt.Close()

		st, err := rt.requireStore()
		if err != nil {
			return err
		}
		events, err := st.RecentLLMRequests(cmd.Context(), 0, "")
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-28s  %6s  %6s  %10s  %10s  %10s\n",
			"Model", "Calls", "Failed", "Input", "Output", "Est. Cost")
		fmt.Fprintln(out, strings.Repeat("─", 80))

		var total float64
		for _, u := range aggregateByModel(events) {
			costStr := "n/a"
			if c := llm.LookupCost(u.Model); c != nil {
				cost := c.Cost(u.InputTokens, u.OutputTokens)
				total += cost
				costStr = fmt.Sprintf("$%.4f", cost)
			}
			fmt.Fprintf(out, "%-28s  %6d  %6d  %10d  %10d  %10s\n",
				truncate(u.Model, 28), u.Calls, u.Failed, u.InputTokens, u.OutputTokens, costStr)
		}

		fmt.Fprintln(out, strings.Repeat("─", 80))
		fmt.Fprintf(out, "%-28s  %56s\n", "TOTAL", fmt.Sprintf("$%.4f", total))
		return nil
	},
}

func init() {
	llmListCmd.Flags().Int("limit", 20, "Number of requests to show")
	llmListCmd.Flags().String("purpose", "", "Filter by purpose (e.g. explain)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
