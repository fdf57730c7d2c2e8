package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/luiz1745/jogo-de-matematica/internal/config"
	"github.com/luiz1745/jogo-de-matematica/internal/drill"
	"github.com/luiz1745/jogo-de-matematica/internal/explain"
	"github.com/luiz1745/jogo-de-matematica/internal/journal"
	"github.com/luiz1745/jogo-de-matematica/internal/llm"
	"github.com/luiz1745/jogo-de-matematica/internal/logging"
	"github.com/luiz1745/jogo-de-matematica/internal/store"
)

// runtime holds what every command shares: configuration, the logger and
// the answer journal.
type runtime struct {
	cfg    *config.Config
	log    *logrus.Logger
	dbPath string
	store  *store.Store

	seed    uint64
	nextGen atomic.Uint64

	closers []func() error
}

// setup loads configuration, opens the logger and the journal. The TUI
// owns the terminal, so its log goes to a file next to the journal unless
// log.file says otherwise.
func setup(cmd *cobra.Command, source string) (*runtime, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath, cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	logFile := cfg.Log.File
	if logFile == "" && source == journal.SourceTUI {
		logFile = filepath.Join(filepath.Dir(dbPath), "jogo.log")
	}
	log, closeLog, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   logFile,
	})
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	rt := &runtime{
		cfg:     cfg,
		log:     log,
		dbPath:  dbPath,
		seed:    cfg.Seed,
		closers: []func() error{closeLog},
	}
	if rt.seed == 0 {
		rt.seed = uint64(time.Now().UnixNano())
	}

	st, err := store.Open(dbPath)
	if err != nil {
		// Run without the journal.
		log.WithError(err).WithField("path", dbPath).Warn("answer journal unavailable")
	} else {
		rt.store = st
		rt.closers = append(rt.closers, st.Close)
	}

	return rt, nil
}

// resolveDBPath returns the journal path from config (flag, env or file),
// then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// Close releases the journal and the log file in reverse order.
func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		_ = rt.closers[i]()
	}
}

func (rt *runtime) entry(source string) *logrus.Entry {
	return rt.log.WithField("source", source)
}

// repo returns the journal, or nil when it could not be opened.
func (rt *runtime) repo() store.EventRepo {
	if rt.store == nil {
		return nil
	}
	return rt.store.EventRepo()
}

// newGenerator returns a generator for a new run. With a fixed seed, the
// n-th run of a process always sees the same questions.
func (rt *runtime) newGenerator() *drill.Generator {
	n := rt.nextGen.Add(1) - 1
	return drill.NewSeededGenerator(rt.seed + n)
}

// explainer builds the explanation service. Without a configured provider
// it returns a service whose Available reports false.
func (rt *runtime) explainer(ctx context.Context) *explain.Service {
	log := rt.log.WithField("component", "llm")
	provider, err := llm.NewProvider(ctx, rt.cfg.LLM, rt.repo(), log)
	switch {
	case errors.Is(err, llm.ErrNoProvider):
		log.Debug("no LLM provider configured; explanations disabled")
		return explain.NewService(nil, rt.cfg.ExplainService())
	case err != nil:
		log.WithError(err).Warn("LLM provider unavailable; explanations disabled")
		fmt.Fprintln(os.Stderr, "Explicações indisponíveis:", err)
		return explain.NewService(nil, rt.cfg.ExplainService())
	}
	return explain.NewService(provider, rt.cfg.ExplainService())
}

// requireStore returns the journal or an error for commands that only
// read it.
func (rt *runtime) requireStore() (*store.Store, error) {
	if rt.store == nil {
		return nil, fmt.Errorf("answer journal %s could not be opened", rt.dbPath)
	}
	return rt.store, nil
}
