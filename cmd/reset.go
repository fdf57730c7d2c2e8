package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/luiz1745/jogo-de-matematica/internal/config"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the answer journal",
	Long: "Delete the answer journal and its SQLite side files. Scores are never kept\n" +
		"between runs, so this only clears the history shown by `jogo history`.",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		cfgPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(cfgPath, cmd.Flags())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}

		out := cmd.OutOrStdout()
		if !yes {
			fmt.Fprintf(out, "This deletes %s.\nRun again with --yes to confirm.\n", dbPath)
			return nil
		}

		removed := 0
		for _, p := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
			err := os.Remove(p)
			switch {
			case err == nil:
				removed++
			case errors.Is(err, fs.ErrNotExist):
			default:
				return fmt.Errorf("remove %s: %w", p, err)
			}
		}

		if removed == 0 {
			fmt.Fprintln(out, "Nothing to delete.")
			return nil
		}
		fmt.Fprintf(out, "Deleted %s.\n", dbPath)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
