package utils

import (
	"go.uber.org/zap"
)

// NewLogger builds the process-wide structured logger.
func NewLogger() *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	return logger
}
