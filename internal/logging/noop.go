package logging

import (
	"context"

	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

type noopLogger struct{}

// NoOp returns a logger that discards every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (l noopLogger) WithContext(context.Context) interfaces.Logger { return l }

// NoOpProvider satisfies interfaces.LoggerProvider with discard loggers.
type NoOpProvider struct{}

// GetLogger returns a discard logger regardless of name.
func (NoOpProvider) GetLogger(string) interfaces.Logger { return NoOp() }
