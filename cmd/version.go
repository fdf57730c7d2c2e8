package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/luiz1745/jogo-de-matematica/internal/drill"
	"github.com/luiz1745/jogo-de-matematica/internal/session"
)

// version is set via -ldflags at build time.
var version = ""

// buildVersion prefers the ldflags version, then the module version
// recorded by `go install`.
func buildVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and drill parameters",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "jogo", buildVersion())
		fmt.Fprintf(out, "níveis %d-%d, %d questões por nível, %d pontos por acerto\n",
			drill.MinLevel, drill.MaxLevel, session.QuestionsPerLevel, session.PointsPerCorrect)
	},
}
