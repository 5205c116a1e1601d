package log

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init initializes the global logger.
// It configures the default slog logger to write to the specified path (or stderr)
// at the specified level. Standard output is never used, so generated
// output piped from the tool stays clean.
//
// path: Log file path. If empty, logs to stderr.
// level: Log level ("debug", "info", "warn", "error"). Defaults to "warn".
func Init(path string, level string) error {
	return InitWriter(path, level, os.Stderr)
}

// InitWriter is like Init but uses fallback instead of stderr when path is empty.
func InitWriter(path string, level string, fallback io.Writer) error {
	mu.Lock()
	defer mu.Unlock()

	w := fallback
	if path == "" {
		closeLocked()
	} else {
		dir := filepath.Dir(path)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
		}

		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		closeLocked()
		logFile = f
		w = f
	}

	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	handler := slog.NewTextHandler(w, opts)
	slog.SetDefault(slog.New(handler))
	return nil
}

// Close releases the log file opened by Init, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeLocked()
}

func closeLocked() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
