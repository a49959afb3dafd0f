package paint

import (
	"github.com/Carmen-Shannon/hairstylist/engine/logger"
	"go.uber.org/zap"
)

// SurfaceBuilderOption is a functional option for NewSurface.
type SurfaceBuilderOption func(*Surface)

// WithLogger sets the surface's logger.
//
// Parameters:
//   - l: the logger; nil keeps the no-op logger
//
// Returns:
//   - SurfaceBuilderOption: a function that sets the logger
func WithLogger(l *zap.Logger) SurfaceBuilderOption {
	return func(s *Surface) {
		s.logger = logger.OrNop(l)
	}
}
