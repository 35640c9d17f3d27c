package runtime

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// Runtime wires configuration and logging for the wsls entry points. The
// logger always writes to stderr, because stdout carries protocol frames in
// serve mode, and optionally tees into a log file.
type Runtime struct {
	Config Config
	Logger *log.Logger

	logFile io.Closer
}

// New normalizes the config, folds in the optional yaml overlay, and opens
// the log sink.
func New(cfg Config) (*Runtime, error) {
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	fc, err := LoadFileConfig(cfg.ConfigPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	} else {
		cfg.Apply(fc)
		if err := cfg.Normalize(); err != nil {
			return nil, err
		}
	}

	rt := &Runtime{Config: cfg}
	sink := io.Writer(os.Stderr)
	if cfg.LogPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log: %w", err)
		}
		rt.logFile = logFile
		sink = io.MultiWriter(os.Stderr, logFile)
	}
	rt.Logger = log.New(sink, "wsls ", log.LstdFlags|log.Lmicroseconds)
	return rt, nil
}

// Close releases the log file, when one was opened.
func (rt *Runtime) Close() error {
	if rt.logFile != nil {
		return rt.logFile.Close()
	}
	return nil
}
