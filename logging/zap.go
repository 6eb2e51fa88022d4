package logging

import (
	"context"
	"maps"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts a zap logger to the library's Logger interface,
// for applications that already run zap for structured logging.
type ZapLogger struct {
	sugar *zap.SugaredLogger
	level zap.AtomicLevel
}

// NewZapLogger creates a production-configured zap-backed logger
func NewZapLogger() (*ZapLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	z, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &ZapLogger{sugar: z.Sugar(), level: cfg.Level}, nil
}

// NewZapLoggerWith wraps an existing zap logger. Level changes through
// SetLevel require the provided logger to use the returned atomic level;
// otherwise they are ignored.
func NewZapLoggerWith(z *zap.Logger) *ZapLogger {
	return &ZapLogger{
		sugar: z.Sugar(),
		level: zap.NewAtomicLevelAt(zapcore.InfoLevel),
	}
}

func flatten(fields []Fields) []any {
	merged := make(Fields)
	for _, f := range fields {
		maps.Copy(merged, f)
	}
	kv := make([]any, 0, 2*len(merged))
	for k, v := range merged {
		kv = append(kv, k, v)
	}
	return kv
}

func (z *ZapLogger) Debug(msg string, fields ...Fields) {
	z.sugar.Debugw(msg, flatten(fields)...)
}

func (z *ZapLogger) Info(msg string, fields ...Fields) {
	z.sugar.Infow(msg, flatten(fields)...)
}

func (z *ZapLogger) Warn(msg string, fields ...Fields) {
	z.sugar.Warnw(msg, flatten(fields)...)
}

func (z *ZapLogger) Error(err error, msg string, fields ...Fields) {
	kv := flatten(fields)
	if err != nil {
		kv = append(kv, "error", err.Error())
	}
	z.sugar.Errorw(msg, kv...)
}

func (z *ZapLogger) Fatal(err error, msg string, fields ...Fields) {
	kv := flatten(fields)
	if err != nil {
		kv = append(kv, "error", err.Error())
	}
	z.sugar.Fatalw(msg, kv...)
}

func (z *ZapLogger) WithFields(fields Fields) Logger {
	return &ZapLogger{
		sugar: z.sugar.With(flatten([]Fields{fields})...),
		level: z.level,
	}
}

func (z *ZapLogger) WithContext(ctx context.Context) Logger {
	return z
}

func (z *ZapLogger) SetLevel(level Level) {
	switch level {
	case DebugLevel:
		z.level.SetLevel(zapcore.DebugLevel)
	case InfoLevel:
		z.level.SetLevel(zapcore.InfoLevel)
	case WarnLevel:
		z.level.SetLevel(zapcore.WarnLevel)
	case ErrorLevel:
		z.level.SetLevel(zapcore.ErrorLevel)
	case FatalLevel:
		z.level.SetLevel(zapcore.FatalLevel)
	}
}
