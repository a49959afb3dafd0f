package hairstyle

import (
	"github.com/Carmen-Shannon/hairstylist/engine/logger"
	"go.uber.org/zap"
)

// CollectionBuilderOption is a functional option for NewCollection.
type CollectionBuilderOption func(*collection)

// WithLogger sets the collection's logger.
//
// Parameters:
//   - l: the logger; nil keeps the no-op logger
//
// Returns:
//   - CollectionBuilderOption: a function that sets the logger
func WithLogger(l *zap.Logger) CollectionBuilderOption {
	return func(c *collection) {
		c.logger = logger.OrNop(l).With(zap.String("collection", c.name))
	}
}
