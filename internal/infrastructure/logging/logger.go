package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/andrescamacho/sanctuary-go/internal/infrastructure/config"
)

// Logger adapts slog to common.OperationLogger
type Logger struct {
	slog *slog.Logger
}

// New builds a logger from the logging section.
// The returned closer releases the log file when output is "file".
func New(cfg config.LoggingConfig) (*Logger, io.Closer, error) {
	var (
		out    io.Writer = os.Stderr
		closer io.Closer = io.NopCloser(nil)
	)

	switch cfg.Output {
	case "stdout":
		out = os.Stdout
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out, closer = f, f
	}

	return NewWithWriter(out, cfg), closer, nil
}

// NewWithWriter builds a logger writing to out
func NewWithWriter(out io.Writer, cfg config.LoggingConfig) *Logger {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: cfg.IncludeCaller,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return &Logger{slog: slog.New(handler)}
}

// ParseLevel maps a config level name to slog; unknown names mean info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Slog exposes the underlying logger for process-level setup
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

// Log implements common.OperationLogger. Metadata keys are emitted in sorted order.
func (l *Logger) Log(level, message string, metadata map[string]interface{}) {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		args = append(args, k, metadata[k])
	}

	switch ParseLevel(level) {
	case slog.LevelDebug:
		l.slog.Debug(message, args...)
	case slog.LevelWarn:
		l.slog.Warn(message, args...)
	case slog.LevelError:
		l.slog.Error(message, args...)
	default:
		l.slog.Info(message, args...)
	}
}
