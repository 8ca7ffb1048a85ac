package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

// Init builds the global logger. APP_ENV=production switches to the JSON
// production config, anything else gets the development console encoder.
func Init() error {
	var err error
	if os.Getenv("APP_ENV") == "production" {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		log, err = cfg.Build()
	} else {
		log, err = zap.NewDevelopment()
	}
	return err
}

// L returns the global logger, falling back to a no-op logger so packages
// can log before Init in tests.
func L() *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
