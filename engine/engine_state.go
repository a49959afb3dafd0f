package engine

import (
	"fmt"

	"github.com/Carmen-Shannon/hairstylist/common"
	"github.com/Carmen-Shannon/hairstylist/engine/arcball"
	"github.com/Carmen-Shannon/hairstylist/engine/camera"
	"github.com/Carmen-Shannon/hairstylist/engine/clock"
	"github.com/Carmen-Shannon/hairstylist/engine/config"
	"github.com/Carmen-Shannon/hairstylist/engine/hairstyle"
	"github.com/Carmen-Shannon/hairstylist/engine/input"
	"github.com/Carmen-Shannon/hairstylist/engine/paint"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// state is everything the frame loop mutates that does not live on the GPU.
// Only the frame loop touches it, so it carries no lock.
type state struct {
	cfg *config.Config
	log *zap.Logger

	style      hairstyle.Hairstyle
	channel    paint.Channel
	brushScale float32
	intensity  float32

	// painterFocus is true while the cursor was last seen over the painter viewport.
	painterFocus bool
	// paintingAllowed is reset every frame and set again by button or drag events.
	paintingAllowed bool
	overlay         bool
	paused          bool
	quit            bool
	// reloadRequested asks the frame loop to rebuild the pipelines from disk.
	reloadRequested bool
	// vsync is the wanted present mode; presentModeChanged asks the frame loop to apply it.
	vsync              bool
	presentModeChanged bool

	width, height int

	input      *input.State
	clock      *clock.Clock
	painterCam camera.Camera
	modelCam   camera.Camera
	arcball    *arcball.Arcball

	surface *paint.Surface
	brush   *paint.Brush
	saves   hairstyle.Collection
	presets hairstyle.Collection
}

// newEngineState builds the orchestrator state from the configuration: cameras laid out for a
// width x height window, a mask cleared to the baseline and both collections read from disk.
//
// Parameters:
//   - cfg: the validated configuration
//   - brush: the brush sprite used for painting
//   - log: the logger
//
// Returns:
//   - *state: the initial state
//   - error: error if a collection index cannot be read
func newEngineState(cfg *config.Config, brush *paint.Brush, log *zap.Logger) (*state, error) {
	s := &state{
		cfg: cfg,
		log: log,
		style: hairstyle.Hairstyle{
			Color:  mgl32.Vec3(cfg.Hair.Color),
			Width:  cfg.Hair.Width,
			Length: cfg.Hair.Length,
		}.Normalize(),
		channel:    paint.Red,
		brushScale: cfg.Brush.Scale,
		intensity:  cfg.Brush.Intensity,
		vsync:      cfg.Window.VSync,
		input:      input.NewState(),
		clock:      clock.New(nil),
		arcball:    arcball.New(cfg.Arcball.Radius),
		brush:      brush,
		surface:    paint.NewSurface(cfg.Mask.Width, cfg.Mask.Height, paint.WithLogger(log)),
		painterCam: camera.NewCamera(
			camera.WithPosition(mgl32.Vec3{0, 0, 1}),
			camera.WithTarget(mgl32.Vec3{0, 0, 0}),
			camera.WithOrthographic(0, 1, 0, 1, cfg.Camera.Near, cfg.Camera.Far),
		),
		modelCam: camera.NewCamera(
			camera.WithPosition(mgl32.Vec3{0, 0, cfg.Camera.ModelDistance}),
			camera.WithTarget(mgl32.Vec3{0, 0, 0}),
			camera.WithPerspective(cfg.Camera.Fov, 1, cfg.Camera.Near, cfg.Camera.Far),
		),
	}

	var err error
	s.saves, err = hairstyle.NewCollection(cfg.Saves.Dir, cfg.Saves.Name, cfg.Saves.Index, hairstyle.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("failed to open save collection: %w", err)
	}
	s.presets, err = hairstyle.NewCollection(cfg.Presets.Dir, cfg.Presets.Name, cfg.Presets.Index, hairstyle.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("failed to open preset collection: %w", err)
	}

	s.layout(cfg.Window.Width, cfg.Window.Height)
	if err := s.clear(paint.MaskAll); err != nil {
		return nil, err
	}
	return s, nil
}

// layout splits a width x height window into the painter (left) and model (right) viewports.
func (s *state) layout(width, height int) {
	s.width, s.height = width, height
	half := float32(width) / 2
	h := float32(height)

	s.painterCam.SetViewport(common.NewRect(0, 0, half, h))
	s.painterCam.SetOrthographic(0, 1, 0, 1, s.cfg.Camera.Near, s.cfg.Camera.Far)

	s.modelCam.SetViewport(common.NewRect(half, 0, half, h))
	s.modelCam.SetPerspective(s.cfg.Camera.Fov, half, h, s.cfg.Camera.Near, s.cfg.Camera.Far)
}

// refreshFocus moves focus to the viewport under the cursor. Outside both viewports focus stays
// where it was.
func (s *state) refreshFocus() {
	p := s.input.MousePosition()
	switch {
	case s.painterCam.Viewport().Inside(p):
		s.painterFocus = true
	case s.modelCam.Viewport().Inside(p):
		s.painterFocus = false
	}
}

// brushPosition maps the cursor to canvas units.
func (s *state) brushPosition() mgl32.Vec2 {
	p := s.painterCam.ViewportToWorldPoint(s.painterCam.ScreenToViewportPoint(s.input.MousePosition()))
	return p.Vec2()
}

// update advances the cameras and the arcball for this frame.
func (s *state) update() {
	s.painterCam.Update()
	s.modelCam.Update()

	left := s.input.LeftDrag()
	if s.painterFocus || !left.Active {
		s.arcball.Freeze()
		return
	}
	start := s.modelCam.ViewportToNDC(s.modelCam.ScreenToViewportPoint(left.Start))
	current := s.modelCam.ViewportToNDC(s.modelCam.ScreenToViewportPoint(left.Current))
	s.arcball.Drag(start, current)
}

// showBrush reports whether the brush preview is drawn this frame. It is hidden while the
// model is being dragged.
func (s *state) showBrush() bool {
	return s.painterFocus || !s.input.IsDragging()
}
