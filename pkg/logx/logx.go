// Package logx is the process-wide logger. Call sites use the printf-style
// helpers; output goes through a log/slog text handler on stderr.
package logx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel maps "debug", "info", "warn" and "error" to a Level. Anything else is info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

var (
	level  = new(slog.LevelVar)
	logger atomic.Pointer[slog.Logger]
	exit   = os.Exit
)

func init() {
	SetOutput(os.Stderr)
}

// SetLevel changes the minimum level that is written
func SetLevel(l Level) {
	level.Set(l.slog())
}

// SetOutput redirects log output, mainly for tests
func SetOutput(w io.Writer) {
	logger.Store(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// With returns a structured logger carrying attrs, for call sites that want key/value output
func With(args ...any) *slog.Logger {
	return logger.Load().With(args...)
}

func log(l slog.Level, msg string) {
	logger.Load().Log(context.Background(), l, msg)
}

func Debug(msg string)                  { log(slog.LevelDebug, msg) }
func Debugf(format string, args ...any) { log(slog.LevelDebug, fmt.Sprintf(format, args...)) }
func Info(msg string)                   { log(slog.LevelInfo, msg) }
func Infof(format string, args ...any)  { log(slog.LevelInfo, fmt.Sprintf(format, args...)) }
func Warn(msg string)                   { log(slog.LevelWarn, msg) }
func Warnf(format string, args ...any)  { log(slog.LevelWarn, fmt.Sprintf(format, args...)) }
func Error(msg string)                  { log(slog.LevelError, msg) }
func Errorf(format string, args ...any) { log(slog.LevelError, fmt.Sprintf(format, args...)) }

// Fatalf logs at error level and exits the process
func Fatalf(format string, args ...any) {
	log(slog.LevelError, fmt.Sprintf(format, args...))
	exit(1)
}
