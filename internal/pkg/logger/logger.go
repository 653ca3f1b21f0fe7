package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	slogzap "github.com/samber/slog-zap/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu           sync.RWMutex
	globalLogger *slog.Logger
	zapLogger    *zap.Logger
)

// ParseLevel maps a config level string to a slog level. Unknown values yield INFO and false.
func ParseLevel(levelStr string) (slog.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO", "":
		return slog.LevelInfo, true
	case "WARN", "WARNING":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

func zapLevel(level slog.Level) zapcore.Level {
	switch {
	case level <= slog.LevelDebug:
		return zapcore.DebugLevel
	case level <= slog.LevelInfo:
		return zapcore.InfoLevel
	case level <= slog.LevelWarn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// Init builds the process zap logger at the given level and routes the global slog logger through it.
func Init(levelStr string) error {
	level, known := ParseLevel(levelStr)

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zapLevel(level))
	zcfg.Encoding = "json"
	zcfg.DisableStacktrace = true
	zl, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build zap logger: %w", err)
	}

	install(zl, level)
	if !known {
		Warn("Invalid log level string, defaulting to INFO", "input", levelStr)
	}
	return nil
}

// UseZap installs an existing zap logger, e.g. zaptest or zap.NewNop in tests.
func UseZap(zl *zap.Logger, levelStr string) {
	level, _ := ParseLevel(levelStr)
	install(zl, level)
}

func install(zl *zap.Logger, level slog.Level) {
	handler := slogzap.Option{Level: level, Logger: zl}.NewZapHandler()
	sl := slog.New(handler)

	mu.Lock()
	zapLogger = zl
	globalLogger = sl
	mu.Unlock()

	slog.SetDefault(sl)
}

func current() *slog.Logger {
	mu.RLock()
	l := globalLogger
	mu.RUnlock()
	if l != nil {
		return l
	}
	if err := Init("INFO"); err != nil {
		return slog.Default()
	}
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// Zap returns the underlying zap logger, initialising a default one if needed.
func Zap() *zap.Logger {
	current()
	mu.RLock()
	defer mu.RUnlock()
	return zapLogger
}

// Sync flushes buffered log entries.
func Sync() {
	mu.RLock()
	zl := zapLogger
	mu.RUnlock()
	if zl != nil {
		_ = zl.Sync()
	}
}

// Debug logs a message at DebugLevel.
func Debug(msg string, args ...any) {
	l := current()
	if l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug(msg, args...)
	}
}

// Info logs a message at InfoLevel.
func Info(msg string, args ...any) {
	current().Info(msg, args...)
}

// Warn logs a message at WarnLevel.
func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}

// Error logs a message at ErrorLevel.
func Error(msg string, args ...any) {
	current().Error(msg, args...)
}

// Fatal logs a message at ErrorLevel then exits.
func Fatal(msg string, args ...any) {
	current().Error(msg, args...)
	Sync()
	os.Exit(1)
}
