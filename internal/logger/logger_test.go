package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newBufferLogger(buf *bytes.Buffer) *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		MessageKey:     "message",
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(buf),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}

func TestProperty_LogsAreStructured(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("all log entries are structured JSON with level, timestamp and message", prop.ForAll(
		func(message string, level string) bool {
			var buf bytes.Buffer
			logger := newBufferLogger(&buf)
			defer logger.Sync()

			switch level {
			case "debug":
				logger.Debug(message)
			case "warn":
				logger.Warn(message)
			case "error":
				logger.Error(message)
			default:
				logger.Info(message)
			}

			var logEntry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
				return false
			}

			for _, field := range []string{"level", "timestamp", "message"} {
				if _, ok := logEntry[field]; !ok {
					return false
				}
			}
			return logEntry["message"] == message
		},
		gen.AnyString(),
		gen.OneConstOf("debug", "info", "warn", "error"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_ErrorLogsIncludeContext(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("error logs carry their context fields", prop.ForAll(
		func(message string, errorMsg string) bool {
			var buf bytes.Buffer
			logger := newBufferLogger(&buf)
			defer logger.Sync()

			logger.Error(message, zap.String("error", errorMsg))

			var logEntry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
				return false
			}
			_, ok := logEntry["error"]
			return ok
		},
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestNew_ProductionLoggerBuilds(t *testing.T) {
	logger, err := New("production")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if logger == nil {
		t.Fatal("Logger should not be nil")
	}
}
