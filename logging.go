package courier

import (
	"go.uber.org/zap"
)

// Logger receives a record of every state transition in the dispatch
// engine: retry attempts, circuit transitions, rate limiting, fallbacks,
// and terminal outcomes. Implementations must be safe for concurrent use.
type Logger interface {
	// Log records an informational message.
	Log(message string)

	// Error records a failure message.
	Error(message string)
}

type nopLogger struct{}

func (nopLogger) Log(string)   {}
func (nopLogger) Error(string) {}

// NopLogger returns a logger that discards all messages.
func NopLogger() Logger {
	return nopLogger{}
}

type zapLogger struct {
	l *zap.Logger
}

// NewZapLogger adapts a zap logger to the Logger interface.
func NewZapLogger(l *zap.Logger) Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return &zapLogger{l: l}
}

func (z *zapLogger) Log(message string) {
	z.l.Info(message)
}

func (z *zapLogger) Error(message string) {
	z.l.Error(message)
}
