// Package logger builds the zap logger shared by the server and its stores.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates the application logger for the given environment. Production
// logs JSON to stdout so container log shippers can consume it; anything else
// gets colorized console output for local development.
func New(env string) (*zap.Logger, error) {
	var config zap.Config
	switch env {
	case "production":
		config = zap.NewProductionConfig()
		config.Encoding = "json"
	default:
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	return config.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
}
