// Package logging builds the zap loggers used across luxedir.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New returns a sugared logger. Debug mode uses the human-readable
// development encoder; otherwise the production JSON encoder at info level.
// Both write to stderr so command output on stdout stays machine-readable.
func New(debug bool) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	return logger.Sugar(), nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
