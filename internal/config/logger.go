package config

import (
	"strings"

	"go.uber.org/zap"
)

// NewLogger builds the process logger: JSON in production, human-readable
// console output when LOG_FORMAT=console.
func NewLogger(format, name string) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if strings.EqualFold(format, "console") {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return logger.Named(name), nil
}
