package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/luiz1745/jogo-de-matematica/internal/config"
	"github.com/luiz1745/jogo-de-matematica/internal/drill"
)

const maxReportedPerLevel = 5

var selfcheckCmd = &cobra.Command{
	Use:   "selfcheck",
	Short: "Generate questions at every level and check each answer against its text",
	RunE: func(cmd *cobra.Command, args []string) error {
		perLevel, _ := cmd.Flags().GetInt("per-level")
		if perLevel < 1 {
			return fmt.Errorf("--per-level must be at least 1, got %d", perLevel)
		}

		cfgPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(cfgPath, cmd.Flags())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		out := cmd.OutOrStdout()
		seed := cfg.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		gen := drill.NewSeededGenerator(seed)
		fmt.Fprintf(out, "seed %d\n", seed)
		failures := 0

		for level := drill.MinLevel; level <= drill.MaxLevel; level++ {
			bad := 0
			for i := 0; i < perLevel; i++ {
				q := gen.Generate(level)
				if err := drill.Verify(q); err != nil {
					bad++
					if bad <= maxReportedPerLevel {
						fmt.Fprintf(out, "  level %d: %v\n", level, err)
					}
				}
			}
			status := "ok"
			if bad > 0 {
				status = fmt.Sprintf("%d FAILED", bad)
			}
			fmt.Fprintf(out, "level %2d: %d questions, %s\n", level, perLevel, status)
			failures += bad
		}

		if failures > 0 {
			return fmt.Errorf("%d of %d questions failed verification", failures, perLevel*drill.MaxLevel)
		}
		fmt.Fprintln(out, "All questions verified.")
		return nil
	},
}

func init() {
	selfcheckCmd.Flags().Int("per-level", 1000, "Questions to generate per level")
}
