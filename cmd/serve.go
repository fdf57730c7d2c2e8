package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/luiz1745/jogo-de-matematica/internal/journal"
	"github.com/luiz1745/jogo-de-matematica/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve drill sessions over a JSON HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd, journal.SourceHTTP)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srvCfg := rt.cfg.Server
		srv := server.New(server.Config{
			NewGenerator:   rt.newGenerator,
			Repo:           rt.repo(),
			Explainer:      rt.explainer(ctx),
			Log:            rt.entry(journal.SourceHTTP),
			AllowedOrigins: srvCfg.AllowedOrigins,
			MaxSessions:    srvCfg.MaxSessions,
			IdleTimeout:    srvCfg.IdleTimeout,
		})
		return srv.Run(ctx, srvCfg.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
