// Package logx is the process-wide logger. It wraps a zap sugared logger so
// call sites can log with printf-style helpers without carrying a logger.
package logx

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level int8

const (
	LevelDebug Level = iota - 1
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps "debug", "info", "warn" and "error" to a Level.
// Anything else is LevelInfo.
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
	mu     sync.RWMutex
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logger = newLogger("json")
)

func newLogger(format string) *zap.SugaredLogger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if format == "console" {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(os.Stdout), level)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()
}

// SetLevel changes the minimum level at runtime.
func SetLevel(l Level) {
	level.SetLevel(zapcore.Level(l))
}

// SetFormat switches between "json" and "console" output.
func SetFormat(format string) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(format)
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Logger is a field-scoped logger obtained from With.
type Logger struct {
	s *zap.SugaredLogger
}

// With returns a logger that always adds the given key/value pairs.
func With(keysAndValues ...any) *Logger {
	return &Logger{s: current().With(keysAndValues...)}
}

func (l *Logger) Info(msg string, keysAndValues ...any)  { l.s.Infow(msg, keysAndValues...) }
func (l *Logger) Warn(msg string, keysAndValues ...any)  { l.s.Warnw(msg, keysAndValues...) }
func (l *Logger) Error(msg string, keysAndValues ...any) { l.s.Errorw(msg, keysAndValues...) }

func Debug(args ...any)                 { current().Debug(args...) }
func Debugf(format string, args ...any) { current().Debugf(format, args...) }
func Info(args ...any)                  { current().Info(args...) }
func Infof(format string, args ...any)  { current().Infof(format, args...) }
func Warn(args ...any)                  { current().Warn(args...) }
func Warnf(format string, args ...any)  { current().Warnf(format, args...) }
func Error(args ...any)                 { current().Error(args...) }
func Errorf(format string, args ...any) { current().Errorf(format, args...) }
func Fatalf(format string, args ...any) { current().Fatalf(format, args...) }

// Sync flushes buffered entries. Call it before exiting.
func Sync() {
	_ = current().Sync()
}
