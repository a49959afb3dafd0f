// Package logger builds the application's zap logger.
package logger

import "go.uber.org/zap"

// New builds a development logger when dev is true and a production logger otherwise.
//
// Parameters:
//   - dev: whether to use the human-readable development encoder at debug level
//
// Returns:
//   - *zap.Logger: the configured logger
//   - error: error if the logger cannot be built
func New(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
