package loader

import (
	"github.com/Carmen-Shannon/hairstylist/engine/renderer"
	"go.uber.org/zap"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithRenderer is an option builder that sets the Renderer used by the Loader to upload meshes.
// Without one, meshes stay CPU-side.
//
// Parameters:
//   - r: the renderer instance
//
// Returns:
//   - LoaderBuilderOption: a function that applies the renderer option to a loader
func WithRenderer(r renderer.Renderer) LoaderBuilderOption {
	return func(l *loader) {
		l.renderer = r
	}
}

// WithWorkers sets the size of the worker pool LoadAll decodes assets on.
//
// Parameters:
//   - n: the maximum number of workers
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker count to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.workers = n
	}
}

// WithLogger sets the logger for fallback warnings and load summaries.
//
// Parameters:
//   - log: the logger
//
// Returns:
//   - LoaderBuilderOption: a function that applies the logger to a loader
func WithLogger(log *zap.Logger) LoaderBuilderOption {
	return func(l *loader) {
		l.log = log
	}
}
