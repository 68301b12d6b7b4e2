package core

import (
	"log"
	"os"
)

// Logger is the narrow logging surface used throughout the renderer and its
// front ends, so tests can substitute a recording implementation.
type Logger interface {
	Printf(format string, args ...interface{})
}

// DefaultLogger writes to stderr with a timestamp and an [irradiance] prefix.
type DefaultLogger struct {
	std *log.Logger
}

// NewDefaultLogger creates the default stderr-backed logger.
func NewDefaultLogger() Logger {
	return &DefaultLogger{std: log.New(os.Stderr, "[irradiance] ", log.LstdFlags)}
}

func (l *DefaultLogger) Printf(format string, args ...interface{}) {
	l.std.Printf(format, args...)
}

// NopLogger discards everything; useful in tests that don't care about output.
type NopLogger struct{}

func (NopLogger) Printf(string, ...interface{}) {}
