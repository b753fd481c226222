// Package logger builds the process-wide sugared logger. Request
// tracing is opt-in via CONTACTCTL_DEBUG, so command output is not
// interleaved with log lines during normal use.
package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewLogger() *zap.SugaredLogger {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	if os.Getenv("CONTACTCTL_DEBUG") == "" {
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	logger, err := config.Build()
	if err != nil {
		log.Panic(err)
	}

	// flushes buffer, if any
	defer logger.Sync()

	return logger.Sugar()
}
