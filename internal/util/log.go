// Package util hosts small cross-cutting helpers.
package util

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// NewLogger builds the process-wide zerolog logger, tagging every event with
// the service name. Unknown levels fall back to info.
func NewLogger(service, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).With().Timestamp()
	if service != "" {
		logger = logger.Str("service", service)
	}
	return logger.Logger().Level(lvl)
}
