package logx

import (
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level mirrors zap levels so callers do not import zapcore
type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

var (
	level  = zap.NewAtomicLevelAt(LevelInfo)
	logger atomic.Pointer[zap.SugaredLogger]
)

func init() {
	logger.Store(build(level).Sugar())
}

func build(lvl zap.AtomicLevel) *zap.Logger {
	cfg := zap.Config{
		Level:    lvl,
		Encoding: "json",
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:   "message",
			LevelKey:     "level",
			TimeKey:      "ts",
			CallerKey:    "caller",
			EncodeLevel:  zapcore.LowercaseLevelEncoder,
			EncodeTime:   zapcore.ISO8601TimeEncoder,
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// SetLevel changes the minimum level of the process logger
func SetLevel(l Level) {
	level.SetLevel(l)
}

// SetLevelString parses names like "debug" or "warn"; unknown names keep info
func SetLevelString(name string) {
	l := LevelInfo
	if err := l.Set(strings.ToLower(name)); err != nil {
		l = LevelInfo
	}
	level.SetLevel(l)
}

// Replace swaps the underlying logger, used by tests to silence or observe output
func Replace(l *zap.Logger) {
	logger.Store(l.WithOptions(zap.AddCallerSkip(1)).Sugar())
}

// L exposes the structured logger for call sites that want typed fields
func L() *zap.Logger {
	return logger.Load().Desugar()
}

// With returns a sugared logger carrying the given key/value pairs
func With(keysAndValues ...any) *zap.SugaredLogger {
	return logger.Load().With(keysAndValues...)
}

// Sync flushes buffered entries
func Sync() {
	_ = logger.Load().Sync()
}

func Debug(msg string)                  { logger.Load().Debug(msg) }
func Debugf(format string, args ...any) { logger.Load().Debugf(format, args...) }
func Info(msg string)                   { logger.Load().Info(msg) }
func Infof(format string, args ...any)  { logger.Load().Infof(format, args...) }
func Warn(msg string)                   { logger.Load().Warn(msg) }
func Warnf(format string, args ...any)  { logger.Load().Warnf(format, args...) }
func Error(msg string)                  { logger.Load().Error(msg) }
func Errorf(format string, args ...any) { logger.Load().Errorf(format, args...) }
func Fatalf(format string, args ...any) { logger.Load().Fatalf(format, args...) }
