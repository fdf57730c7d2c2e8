package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/luiz1745/jogo-de-matematica/internal/console"
	"github.com/luiz1745/jogo-de-matematica/internal/journal"
	"github.com/luiz1745/jogo-de-matematica/internal/session"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Play in line mode, without the full-screen interface",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd, journal.SourceConsole)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		id := uuid.NewString()
		log := rt.entry(journal.SourceConsole).WithField("session_id", id)

		rl, err := console.NewReadline(filepath.Dir(rt.dbPath))
		if err != nil {
			return fmt.Errorf("init readline: %w", err)
		}

		c := console.New(console.Config{
			Controller: session.New(rt.newGenerator(), session.WithLogger(log)),
			Recorder:   journal.NewRecorder(rt.repo(), id, journal.SourceConsole, log),
			Explainer:  rt.explainer(ctx),
			Out:        cmd.OutOrStdout(),
			Log:        log,
		})
		return c.Run(ctx, rl)
	},
}
