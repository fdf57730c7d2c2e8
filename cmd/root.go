package cmd

import (
	"github.com/spf13/cobra"

	"github.com/luiz1745/jogo-de-matematica/internal/app"
	"github.com/luiz1745/jogo-de-matematica/internal/journal"
)

var rootCmd = &cobra.Command{
	Use:   "jogo",
	Short: "Arithmetic and algebra drill",
	Long: "Jogo de Matemática: a terminal drill that asks arithmetic and algebra questions,\n" +
		"grades the answers and moves the difficulty up and down as you play.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd, journal.SourceTUI)
		if err != nil {
			return err
		}
		defer rt.Close()

		return app.Run(cmd.Context(), app.Options{
			NewGenerator: rt.newGenerator,
			EventRepo:    rt.repo(),
			Explainer:    rt.explainer(cmd.Context()),
			Log:          rt.entry(journal.SourceTUI),
		})
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("db", "", "Path to the answer journal (overrides JOGO_DB)")
	flags.String("config", "", "Path to a YAML config file")
	flags.Uint64("seed", 0, "Fix the question sequence (0 = random)")
	flags.String("log-level", "", "Log level: trace, debug, info, warn or error")

	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(selfcheckCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}
