package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/luiz1745/jogo-de-matematica/internal/drill"
	"github.com/luiz1745/jogo-de-matematica/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show answers recorded in the journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		sessionID, _ := cmd.Flags().GetString("session")
		category, _ := cmd.Flags().GetString("category")
		stats, _ := cmd.Flags().GetBool("stats")

		rt, err := setup(cmd, "")
		if err != nil {
			return err
		}
		defer rt.Close()

		st, err := rt.requireStore()
		if err != nil {
			return err
		}
		repo := st.EventRepo()
		out := cmd.OutOrStdout()

		if stats {
			rows, err := repo.CategoryStats(cmd.Context())
			if err != nil {
				return fmt.Errorf("query stats: %w", err)
			}
			printStats(out, rows)
			return nil
		}

		answers, err := repo.RecentAnswers(cmd.Context(), store.QueryOpts{
			Limit:     limit,
			SessionID: sessionID,
			Category:  category,
		})
		if err != nil {
			return fmt.Errorf("query answers: %w", err)
		}
		printAnswers(out, answers)
		return nil
	},
}

func printAnswers(out io.Writer, answers []store.AnswerRecord) {
	if len(answers) == 0 {
		fmt.Fprintln(out, "No answers recorded.")
		return
	}

	fmt.Fprintf(out, "%-6s  %-19s  %-14s  %-3s  %-9s  %-22s  %s\n",
		"Seq", "Timestamp", "Category", "Lvl", "Verdict", "Answer", "Correct")
	fmt.Fprintln(out, strings.Repeat("─", 100))

	for _, a := range answers {
		fmt.Fprintf(out, "%-6d  %-19s  %-14s  %-3d  %-9s  %-22s  %s\n",
			a.Sequence,
			a.Timestamp.Local().Format("2006-01-02 15:04:05"),
			a.Category,
			a.Level,
			a.Verdict,
			truncate(a.LearnerAnswer, 22),
			a.CorrectAnswer,
		)
	}
}

func printStats(out io.Writer, rows []store.CategoryStats) {
	if len(rows) == 0 {
		fmt.Fprintln(out, "No graded answers recorded.")
		return
	}

	fmt.Fprintf(out, "%-20s  %8s  %8s  %8s  %s\n", "Category", "Attempted", "Correct", "Accuracy", "Max level")
	fmt.Fprintln(out, strings.Repeat("─", 70))
	for _, r := range rows {
		fmt.Fprintf(out, "%-20s  %9d  %8d  %7.1f%%  %d\n",
			drill.Category(r.Category).DisplayName(), r.Attempted, r.Correct, r.Accuracy()*100, r.MaxLevel)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of answers to show")
	historyCmd.Flags().String("session", "", "Only answers from this session ID")
	historyCmd.Flags().String("category", "", "Only answers of this category (e.g. quadratic)")
	historyCmd.Flags().Bool("stats", false, "Show accuracy per category instead of answers")
}
