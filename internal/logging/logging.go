// Package logging builds the process-wide slog logger. Diagnostics go to a
// file in the config dir so the full-screen TUI never has to fight stderr;
// with TADA_DEBUG set, a stderr handler is fanned in as well and the level
// drops to debug.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

var level = new(slog.LevelVar)

// SetDebug lowers the level to debug (also implied by TADA_DEBUG).
func SetDebug() { level.Set(slog.LevelDebug) }

// New opens the log file (best-effort) and returns the logger. A logPath of
// "" disables the file handler; callers always get a usable logger.
func New(logPath string) *slog.Logger {
	debug := strings.TrimSpace(os.Getenv("TADA_DEBUG")) != ""
	if debug {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	var handlers []slog.Handler
	if logPath != "" {
		if w := openLogFile(logPath); w != nil {
			handlers = append(handlers, slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
		}
	}
	if debug {
		handlers = append(handlers, slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}
	if len(handlers) == 0 {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slogmulti.Fanout(handlers...))
}

func openLogFile(path string) io.Writer {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil
	}
	return f
}
