// Package log provides centralized logging functionality using zap logger.
package log

import (
	"fmt"

	"go.uber.org/zap"
)

var log *zap.SugaredLogger
var baseLogger *zap.Logger

// Init initializes the package-level logger
func Init(debug bool) error {
	var zapLogger *zap.Logger
	var err error

	if debug {
		zapLogger, err = zap.NewDevelopment(zap.AddCallerSkip(1))
	} else {
		zapLogger, err = zap.NewProduction(zap.AddCallerSkip(1))
	}
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %v", err)
	}

	baseLogger = zapLogger
	log = zapLogger.Sugar()
	return nil
}

// GetSugaredLogger returns the sugared logger instance
func GetSugaredLogger() *zap.SugaredLogger {
	if log == nil {
		baseLogger, _ = zap.NewProduction(zap.AddCallerSkip(1))
		log = baseLogger.Sugar()
	}
	return log
}

// Sync flushes any buffered log entries
func Sync() {
	if log != nil {
		log.Sync()
	}
}

// Debugf logs a formatted debug message
func Debugf(template string, args ...any) {
	GetSugaredLogger().Debugf(template, args...)
}

// Infof logs a formatted info message
func Infof(template string, args ...any) {
	GetSugaredLogger().Infof(template, args...)
}

// Warnf logs a formatted warning message
func Warnf(template string, args ...any) {
	GetSugaredLogger().Warnf(template, args...)
}

// Errorf logs a formatted error message
func Errorf(template string, args ...any) {
	GetSugaredLogger().Errorf(template, args...)
}
