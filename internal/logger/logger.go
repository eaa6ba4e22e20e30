// Package logger provides the shared zap sugared logger for the application.
// Level comes from LOG_LEVEL and the encoder config from ENV.
package logger

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.SugaredLogger
	once   sync.Once
)

func initLogger() {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(os.Getenv("LOG_LEVEL"))); err != nil {
		level = zapcore.InfoLevel
	}

	var cfg zap.Config
	if os.Getenv("ENV") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	zapLogger, err := cfg.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	logger = zapLogger.Sugar()
}

// Get returns the shared global logger, initializing it on first use.
func Get() *zap.SugaredLogger {
	once.Do(initLogger)
	return logger
}

// Close flushes any buffered log entries. Call before the process exits.
func Close() error {
	if logger != nil {
		return logger.Sync()
	}
	return nil
}
