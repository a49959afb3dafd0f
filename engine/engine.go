package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/Carmen-Shannon/hairstylist/engine/config"
	"github.com/Carmen-Shannon/hairstylist/engine/loader"
	"github.com/Carmen-Shannon/hairstylist/engine/logger"
	"github.com/Carmen-Shannon/hairstylist/engine/profiler"
	"github.com/Carmen-Shannon/hairstylist/engine/renderer"
	"github.com/Carmen-Shannon/hairstylist/engine/window"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// idleSleep is how long a paused frame waits before pumping events again.
const idleSleep = 10 * time.Millisecond

// engine implements the Engine interface.
// Runs the paint and render frame loop on the window's thread.
type engine struct {
	cfg *config.Config
	log *zap.Logger

	window   window.Window
	renderer renderer.Renderer
	loader   loader.Loader

	profiler         *profiler.Profiler
	profilingEnabled bool

	state *state
	views *views
}

// Engine is the main entry point of the application.
// It owns the window, the renderer and all painter state, and drives one frame per message
// loop iteration: input, paint, draw, present.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Run starts the frame loop and blocks until the window closes or Escape is pressed.
	Run()

	// Quit ends the frame loop after the current frame.
	// Safe to call multiple times.
	Quit()

	// Close releases GPU resources and destroys the window.
	//
	// Returns:
	//   - error: the combined release failures
	Close() error
}

// NewEngine creates the window, the renderer and the painter state, loads the startup assets
// and builds every pipeline. Options are applied directly to the engine struct via the
// option-builder pattern before anything is created.
//
// Parameters:
//   - options: functional options for engine configuration (config, logger, window, profiling)
//
// Returns:
//   - Engine: the newly created engine
//   - error: error if a required asset is missing or a GPU resource cannot be created, including
//     a window or device creation panic
func NewEngine(options ...EngineBuilderOption) (_ Engine, err error) {
	e := &engine{
		cfg: config.Default(),
		log: zap.NewNop(),
	}
	for _, opt := range options {
		opt(e)
	}
	e.log = logger.OrNop(e.log)

	// Window and device creation panic; release whatever exists before reporting it.
	defer func() {
		if r := recover(); r != nil {
			err = e.abort(fmt.Errorf("engine init: %v", r))
		}
	}()
	e.profilingEnabled = e.profilingEnabled || e.cfg.Debug.Profiling || e.cfg.Debug.Dev
	e.profiler = profiler.NewProfiler(profiler.WithLogger(e.log.Named("profiler")))

	if e.window == nil {
		e.window = window.NewWindow(
			window.WithTitle(e.cfg.Window.Title),
			window.WithWidth(e.cfg.Window.Width),
			window.WithHeight(e.cfg.Window.Height),
		)
	}

	e.renderer = renderer.NewRenderer(renderer.BackendTypeWGPU, e.window,
		renderer.WithPresentMode(presentMode(e.cfg.Window.VSync)),
		renderer.WithForceSoftwareRenderer(e.cfg.Debug.SoftwareRenderer),
	)

	e.loader = loader.NewLoader(loader.BackendTypeBinaryMesh,
		loader.WithRenderer(e.renderer),
		loader.WithLogger(e.log.Named("loader")),
	)
	assets, err := e.loader.LoadAll(loader.Request{
		MeshName:    "head",
		VertexPath:  e.cfg.Assets.MeshVertices,
		IndexPath:   e.cfg.Assets.MeshIndices,
		DiffusePath: e.cfg.Assets.DiffuseTexture,
		BrushPath:   e.cfg.Assets.BrushTexture,
		BrushSize:   e.cfg.Brush.SpriteSize,
	})
	if err != nil {
		return nil, e.abort(fmt.Errorf("failed to load assets: %w", err))
	}

	// The first frame is laid out for the real framebuffer, which may differ from the config on HiDPI.
	cfg := *e.cfg
	cfg.Window.Width, cfg.Window.Height = e.window.Width(), e.window.Height()
	e.state, err = newEngineState(&cfg, assets.Brush, e.log)
	if err != nil {
		return nil, e.abort(err)
	}

	e.views, err = newViews(e.renderer, e.cfg, assets, e.state.surface, e.log)
	if err != nil {
		return nil, e.abort(err)
	}

	e.log.Info("engine ready",
		zap.Int("width", e.state.width),
		zap.Int("height", e.state.height),
		zap.Int("saves", e.state.saves.Len()),
		zap.Int("presets", e.state.presets.Len()),
		zap.Bool("dev", e.cfg.Debug.Dev))
	return e, nil
}

// abort releases whatever NewEngine created before failing with err.
func (e *engine) abort(err error) error {
	return multierr.Append(err, e.Close())
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() {
	e.window.SetUpdateCallback(e.frame)
	e.window.ProcessMessages()
}

func (e *engine) Quit() {
	e.state.quit = true
	e.window.RequestClose()
}

func (e *engine) Close() error {
	if e.views != nil {
		e.views.release()
		e.views = nil
	}
	if e.renderer != nil {
		e.renderer.Release()
		e.renderer = nil
	}
	var errs error
	if e.window != nil {
		errs = multierr.Append(errs, e.window.Close())
		e.window = nil
	}
	return errs
}

// frame runs one iteration of the loop. The window has already polled OS events into the queue.
func (e *engine) frame() {
	s := e.state
	s.paintingAllowed = false
	for _, ev := range e.window.Events().Drain() {
		s.apply(ev)
	}
	if s.quit {
		e.window.RequestClose()
		return
	}

	s.clock.Tick()
	if s.paused {
		time.Sleep(idleSleep)
		return
	}
	if w, h := e.renderer.SurfaceSize(); int(w) != s.width || int(h) != s.height {
		e.renderer.Resize(s.width, s.height)
	}
	if s.presentModeChanged {
		s.presentModeChanged = false
		e.renderer.SetPresentMode(presentMode(s.vsync))
		e.log.Info("present mode changed", zap.Bool("vsync", s.vsync))
	}
	if s.reloadRequested {
		s.reloadRequested = false
		e.reloadShaders()
	}

	s.update()
	if err := s.paint(); err != nil {
		e.log.Error("paint failed", zap.Error(err))
	}

	if err := e.render(); err != nil {
		e.log.Error("frame failed", zap.Uint64("frame", s.clock.Frame()), zap.Error(err))
	}

	if e.profilingEnabled {
		if stats, ok := e.profiler.Tick(); ok && e.cfg.Debug.Dev {
			e.window.SetTitle(stats.Title(e.cfg.Window.Title))
		}
	}
}

// presentMode maps the vsync setting to a surface present mode.
func presentMode(vsync bool) renderer.PresentMode {
	if vsync {
		return renderer.PresentModeVSync
	}
	return renderer.PresentModeUncapped
}

// render uploads the frame's uniforms and records the painter and model passes.
func (e *engine) render() error {
	s := e.state
	if err := e.views.upload(s); err != nil {
		return err
	}

	err := e.renderer.BeginFrame()
	if errors.Is(err, renderer.ErrSurfaceUnavailable) {
		return nil
	}
	if err != nil {
		return err
	}
	errs := multierr.Combine(e.views.drawPainter(s), e.views.drawModel(s))
	e.renderer.EndFrame()
	e.renderer.Present()
	return errs
}

// reloadShaders rebuilds the pipelines from the configured shader directory.
func (e *engine) reloadShaders() {
	dir := e.cfg.Assets.ShaderDir
	if err := e.views.reload(dir); err != nil {
		for _, err := range multierr.Errors(err) {
			e.log.Error("shader reload failed", zap.String("dir", dir), zap.Error(err))
		}
		return
	}
	e.log.Info("shaders reloaded", zap.String("dir", dir))
}
