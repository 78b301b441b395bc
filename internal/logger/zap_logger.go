package logger

import (
	"context"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts a zap.Logger to the Logger interface. The zap
// field vocabulary stays behind this package so callers never import
// zap directly.
type ZapLogger struct {
	logger *zap.Logger
}

type zapLogger = ZapLogger

// NewZapLogger builds the production logger: JSON to stdout, ISO8601
// timestamps, level taken from LOG_LEVEL when set.
func NewZapLogger() (Logger, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.MessageKey = "message"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	config := zap.Config{
		Level:             zap.NewAtomicLevelAt(levelFromEnv()),
		Encoding:          "json",
		EncoderConfig:     encoderConfig,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: true,
	}

	log, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}

	return &zapLogger{logger: log}, nil
}

// NewZapLoggerForDev builds a console logger for local runs and tests.
func NewZapLoggerForDev() (Logger, error) {
	log, err := zap.NewDevelopment(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &zapLogger{logger: log}, nil
}

func levelFromEnv() zapcore.Level {
	var level zapcore.Level
	if err := level.Set(strings.ToLower(os.Getenv("LOG_LEVEL"))); err != nil {
		return zapcore.InfoLevel
	}
	return level
}

func (l *zapLogger) Debug(msg string, fields ...Field) {
	l.logger.Debug(msg, toZapFields(fields)...)
}

func (l *zapLogger) Info(msg string, fields ...Field) {
	l.logger.Info(msg, toZapFields(fields)...)
}

func (l *zapLogger) Warn(msg string, fields ...Field) {
	l.logger.Warn(msg, toZapFields(fields)...)
}

func (l *zapLogger) Error(msg string, fields ...Field) {
	l.logger.Error(msg, toZapFields(fields)...)
}

func (l *zapLogger) Fatal(msg string, fields ...Field) {
	l.logger.Fatal(msg, toZapFields(fields)...)
}

func (l *zapLogger) With(fields ...Field) Logger {
	return &zapLogger{
		logger: l.logger.With(toZapFields(fields)...),
	}
}

func (l *zapLogger) WithContext(ctx context.Context) Logger {
	if reqID, ok := ctx.Value("request_id").(string); ok {
		return &zapLogger{
			logger: l.logger.With(zap.String("request_id", reqID)),
		}
	}
	return l
}

func toZapFields(fields []Field) []zap.Field {
	zapFields := make([]zap.Field, len(fields))
	for i, f := range fields {
		switch v := f.Value.(type) {
		case string:
			zapFields[i] = zap.String(f.Key, v)
		case int:
			zapFields[i] = zap.Int(f.Key, v)
		case error:
			zapFields[i] = zap.NamedError(f.Key, v)
		default:
			zapFields[i] = zap.Any(f.Key, f.Value)
		}
	}
	return zapFields
}

func (l *zapLogger) Sync() error {
	return l.logger.Sync()
}

// Logger exposes the underlying zap.Logger for fx event logging.
func (l *zapLogger) Logger() *zap.Logger {
	return l.logger
}
