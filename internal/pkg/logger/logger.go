package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	globalLogger *slog.Logger
	level        = new(slog.LevelVar)
	once         sync.Once
)

// Init installs the JSON logger on stdout. Later calls only change the level.
func Init(lvl string) {
	InitWithWriter(lvl, os.Stdout)
}

func InitWithWriter(lvl string, w io.Writer) {
	SetLevel(lvl)
	once.Do(func() {
		globalLogger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(globalLogger)
	})
}

func SetLevel(lvl string) {
	var parsed slog.Level
	if err := parsed.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(lvl)))); err != nil {
		parsed = slog.LevelInfo
	}
	level.Set(parsed)
}

// Get returns the global logger instance
func Get() *slog.Logger {
	if globalLogger == nil {
		Init("info")
	}
	return globalLogger
}

func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}

func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

func With(args ...any) *slog.Logger {
	return Get().With(args...)
}

func LogError(ctx context.Context, err error, msg string, args ...any) {
	if err == nil {
		return
	}
	args = append(args, slog.String("error", err.Error()))
	Get().ErrorContext(ctx, msg, args...)
}
