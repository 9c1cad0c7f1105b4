package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"likecli/internal/config"
)

// Process-wide logger state. A report run initializes it once; tests reset it.
var (
	loggerOnce sync.Once
	logger     *slog.Logger

	logFileMu sync.Mutex
	logFile   *os.File
)

type traceIDKey struct{}

// InitializeLogger builds the JSON logger described by cfg and installs it as
// the slog default. Later calls return the first logger.
// "console" writes to stderr, "file" to cfg.FilePath and "both" to each.
func InitializeLogger(cfg config.LoggingConfig) (*slog.Logger, error) {
	var err error
	loggerOnce.Do(func() {
		var out io.Writer
		if out, err = logOutput(cfg); err != nil {
			return
		}
		handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
			AddSource: true,
			Level:     parseLogLevel(cfg.Level),
		})
		logger = slog.New(runHandler{Handler: handler})
		slog.SetDefault(logger)
	})
	return logger, err
}

// logOutput opens the destinations named by cfg.Output
func logOutput(cfg config.LoggingConfig) (io.Writer, error) {
	mode := strings.ToLower(cfg.Output)
	if mode != "file" && mode != "both" {
		return os.Stderr, nil
	}

	file, err := openLogFile(cfg.FilePath)
	if err != nil {
		return nil, err
	}
	logFileMu.Lock()
	logFile = file
	logFileMu.Unlock()

	if mode == "both" {
		return io.MultiWriter(os.Stderr, file), nil
	}
	return file, nil
}

// runHandler tags every record with the trace ID of the run it belongs to
type runHandler struct {
	slog.Handler
}

func (h runHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := GetTraceID(ctx); id != "" {
		r.AddAttrs(slog.String("trace_id", id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h runHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return runHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h runHandler) WithGroup(name string) slog.Handler {
	return runHandler{Handler: h.Handler.WithGroup(name)}
}

// parseLogLevel maps a configured level name; unknown names mean info
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// WithTraceID stores the run trace ID in ctx
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// GetTraceID returns the run trace ID of ctx, or the trace ID of the active
// span when none was stored
func GetTraceID(ctx context.Context) string {
	if id, ok := ctx.Value(traceIDKey{}).(string); ok {
		return id
	}
	return TraceIDFromContext(ctx)
}

// CloseLogFile closes the log file opened by InitializeLogger, if any
func CloseLogFile() error {
	logFileMu.Lock()
	defer logFileMu.Unlock()

	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// ResetLoggerForTesting drops the process-wide logger so the next
// InitializeLogger call builds a fresh one
func ResetLoggerForTesting() {
	CloseLogFile()
	logger = nil
	loggerOnce = sync.Once{}
}

func openLogFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return file, nil
}
