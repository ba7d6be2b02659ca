package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
)

// Logger is the bot's leveled logger. Arguments are joined like fmt.Sprint.
type Logger struct {
	sugar *zap.SugaredLogger
}

// New builds a logger for the given level and format ("console" or "json").
// Unknown levels fall back to info; unknown formats to console.
func New(levelStr, format string) *Logger {
	var cfg zap.Config
	if strings.ToLower(format) == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(levelStr))
	cfg.OutputPaths = []string{"stdout"}

	base, err := cfg.Build()
	if err != nil {
		base = zap.NewExample()
	}
	return &Logger{sugar: base.Sugar()}
}

// Wrap adapts an existing zap logger, mostly for tests.
func Wrap(z *zap.Logger) *Logger {
	return &Logger{sugar: z.Sugar()}
}

// Nop discards everything.
func Nop() *Logger {
	return Wrap(zap.NewNop())
}

func ParseLevel(levelStr string) Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// With returns a child logger carrying structured key/value fields.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{sugar: l.sugar.With(keysAndValues...)}
}

func (l *Logger) Debug(v ...interface{}) {
	l.sugar.Debug(spaced(v)...)
}

func (l *Logger) Info(v ...interface{}) {
	l.sugar.Info(spaced(v)...)
}

func (l *Logger) Warn(v ...interface{}) {
	l.sugar.Warn(spaced(v)...)
}

func (l *Logger) Error(v ...interface{}) {
	l.sugar.Error(spaced(v)...)
}

func (l *Logger) Fatal(v ...interface{}) {
	l.sugar.Fatal(spaced(v)...)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}

// spaced puts a space between every argument, since Sprint only adds one
// between operands that are not strings.
func spaced(v []interface{}) []interface{} {
	if len(v) < 2 {
		return v
	}
	out := make([]interface{}, 0, len(v)*2-1)
	for i, arg := range v {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, arg)
	}
	return out
}
