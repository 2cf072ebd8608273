package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global sugared logger instance. It starts as a no-op so
// library-style callers that never run Init stay silent instead of
// panicking.
var Logger = zap.NewNop().Sugar()

// Config contains configuration for the logger
type Config struct {
	Debug     bool   // Enable debug level logging
	LogFormat string // "json" or "human"
}

// Init initializes the global logger with the provided configuration
func Init(config Config) error {
	var zapConfig zap.Config

	if config.LogFormat == "json" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapConfig.OutputPaths = []string{"stderr"}
	if config.Debug {
		zapConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return err
	}

	Logger = logger.Sugar()
	return nil
}

// Info logs a message with key-value fields
func Info(message string, keysAndValues ...interface{}) {
	Logger.Infow(message, keysAndValues...)
}

// Warn logs a warning with key-value fields
func Warn(message string, keysAndValues ...interface{}) {
	Logger.Warnw(message, keysAndValues...)
}

// Error logs an error with key-value fields
func Error(message string, err error, keysAndValues ...interface{}) {
	Logger.Errorw(message, append(keysAndValues, "error", err)...)
}

// Debug logs a debug message with key-value fields
func Debug(message string, keysAndValues ...interface{}) {
	Logger.Debugw(message, keysAndValues...)
}

// Sync flushes any buffered log entries
func Sync() error {
	return Logger.Sync()
}
