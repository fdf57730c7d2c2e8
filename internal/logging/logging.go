package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Options configures a logger.
type Options struct {
	Level  string
	Format string

	// File receives output when set; the parent directory is created.
	File string

	// Fallback receives output when File is empty. Nil means stderr.
	Fallback io.Writer
}

// New builds a logrus logger from opts. The returned close function
// releases the log file, if one was opened, and is always safe to call.
func New(opts Options) (*logrus.Logger, func() error, error) {
	log := logrus.New()
	closeFn := func() error { return nil }

	level := opts.Level
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, closeFn, fmt.Errorf("parse log level: %w", err)
	}
	log.SetLevel(lvl)

	switch opts.Format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, closeFn, fmt.Errorf("unknown log format %q", opts.Format)
	}

	switch {
	case opts.File != "":
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, closeFn, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, closeFn, fmt.Errorf("open log file: %w", err)
		}
		log.SetOutput(f)
		closeFn = f.Close
	case opts.Fallback != nil:
		log.SetOutput(opts.Fallback)
	default:
		log.SetOutput(os.Stderr)
	}

	return log, closeFn, nil
}

// Discard returns an entry that drops everything. Used as the default
// wherever a logger is optional.
func Discard() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}
