package log

import (
	"context"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type (
	Level  = zapcore.Level
	Field  = zap.Field
	Option = zap.Option
)

const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
	FatalLevel = zapcore.FatalLevel
)

var (
	String  = zap.String
	Int     = zap.Int
	Ints    = zap.Ints
	Float64 = zap.Float64
	Bool    = zap.Bool
	Any     = zap.Any

	WithCaller = zap.WithCaller
)

func ErrorField(err error) Field {
	return zap.Error(err)
}

type Logger struct {
	l *zap.Logger
}

// New creates a logger writing JSON lines to w.
func New(w io.Writer, level Level, opts ...Option) *Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(cfg), zapcore.AddSync(w), level)
	return &Logger{l: zap.New(core, opts...)}
}

// DevLogger creates a human readable console logger.
func DevLogger(w io.Writer, level Level, opts ...Option) *Logger {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(w), level)
	return &Logger{l: zap.New(core, opts...)}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{l: zap.NewNop()}
}

func ParseLevel(s string) (Level, error) {
	return zapcore.ParseLevel(s)
}

func (l *Logger) Named(name string) *Logger {
	return &Logger{l: l.l.Named(name)}
}

func (l *Logger) With(fields ...Field) *Logger {
	return &Logger{l: l.l.With(fields...)}
}

func (l *Logger) Debug(msg string, fields ...Field) { l.l.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...Field)  { l.l.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.l.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...Field) { l.l.Error(msg, fields...) }

func (l *Logger) Sync() error {
	return l.l.Sync()
}

var std = New(os.Stderr, InfoLevel)

func Default() *Logger {
	return std
}

// ResetDefault replaces the package level logger. Not safe for concurrent use.
func ResetDefault(l *Logger) {
	std = l
}

func Error(msg string, fields ...Field) { std.Error(msg, fields...) }

type ctxKey struct{}

func AddToContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// GetFromContext returns the logger stored in ctx, falling back to Default.
func GetFromContext(ctx context.Context) *Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*Logger); ok && l != nil {
			return l
		}
	}
	return Default()
}
