package engine

import (
	"bytes"
	"math"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/hairstylist/common"
	"github.com/Carmen-Shannon/hairstylist/engine/config"
	"github.com/Carmen-Shannon/hairstylist/engine/hairstyle"
	"github.com/Carmen-Shannon/hairstylist/engine/input"
	"github.com/Carmen-Shannon/hairstylist/engine/paint"
	"github.com/Carmen-Shannon/hairstylist/engine/renderer"
	"github.com/Carmen-Shannon/hairstylist/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/hairstylist/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Window is 200x100: the painter covers x < 100, the model x >= 100.
var (
	inPainter = mgl32.Vec2{50, 50}
	inModel   = mgl32.Vec2{150, 50}
)

func newTestState(t *testing.T, edit func(*config.Config)) *state {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Window.Width, cfg.Window.Height = 200, 100
	cfg.Mask.Width, cfg.Mask.Height = 64, 64
	cfg.Saves.Dir = filepath.Join(dir, "Save")
	cfg.Presets.Dir = filepath.Join(dir, "Presets")
	if edit != nil {
		edit(cfg)
	}
	s, err := newEngineState(cfg, paint.SoftBrush(32), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestNewEngineStateStartsAtBaseline(t *testing.T) {
	s := newTestState(t, nil)
	want := [3]byte{0, 128, 128}
	for _, p := range [][2]int{{0, 0}, {32, 32}, {63, 63}} {
		if got := s.surface.Pixel(p[0], p[1]); got != want {
			t.Fatalf("pixel %v = %v, want %v", p, got, want)
		}
	}
	if got := s.painterCam.Viewport(); got != common.NewRect(0, 0, 100, 100) {
		t.Fatalf("painter viewport %+v", got)
	}
	if got := s.modelCam.Viewport(); got != common.NewRect(100, 0, 100, 100) {
		t.Fatalf("model viewport %+v", got)
	}
	if s.channel != paint.Red || s.intensity != 1 {
		t.Fatalf("channel %v intensity %v", s.channel, s.intensity)
	}
}

func TestWheelIntensityFloorsAtZero(t *testing.T) {
	s := newTestState(t, nil)
	s.apply(input.MouseMove{Position: inPainter})

	want := float32(1)
	for i := range 25 {
		s.apply(input.MouseWheel{Delta: -0.5})
		want = max(want-0.05, 0)
		if s.intensity < 0 {
			t.Fatalf("step %d: intensity went negative: %v", i, s.intensity)
		}
		if !near(s.intensity, want) {
			t.Fatalf("step %d: intensity %v, want %v", i, s.intensity, want)
		}
	}
	if s.intensity != 0 {
		t.Fatalf("intensity = %v, want exactly 0", s.intensity)
	}
}

func TestWheelOverModel(t *testing.T) {
	s := newTestState(t, nil)
	s.apply(input.MouseMove{Position: inModel})

	s.apply(input.KeyDown{Key: common.KeyLeftShift})
	s.apply(input.MouseWheel{Delta: 2})
	if s.style.Width != 3 {
		t.Fatalf("width = %v, want 3", s.style.Width)
	}
	s.apply(input.MouseWheel{Delta: 10})
	if s.style.Width != hairstyle.MaxWidth {
		t.Fatalf("width = %v, want clamp to %v", s.style.Width, hairstyle.MaxWidth)
	}
	s.apply(input.KeyUp{Key: common.KeyLeftShift})

	before := s.modelCam.Position().Len()
	s.apply(input.MouseWheel{Delta: -10})
	if got := s.modelCam.Position().Len(); !near(got, before-1) {
		t.Fatalf("camera distance %v, want %v", got, before-1)
	}
	if s.intensity != 1 {
		t.Fatal("wheel over the model changed the brush intensity")
	}
}

func TestKeyMap(t *testing.T) {
	tests := []struct {
		name  string
		focus mgl32.Vec2
		key   int
		check func(*state) bool
	}{
		{"preset red", inModel, common.Key2, func(s *state) bool { return s.style.Color == mgl32.Vec3{1, 0, 0} }},
		{"preset 8", inModel, common.Key8, func(s *state) bool { return s.style.Color == mgl32.Vec3{0.6, 0.3, 0} }},
		{"tilt channel", inModel, common.KeyT, func(s *state) bool { return s.channel == paint.Green }},
		{"blue channel", inModel, common.KeyB, func(s *state) bool { return s.channel == paint.Blue }},
		{"overlay with focus", inPainter, common.KeyD, func(s *state) bool { return s.overlay }},
		{"overlay without focus", inModel, common.KeyD, func(s *state) bool { return !s.overlay }},
		{"brush grows", inPainter, common.KeyEqual, func(s *state) bool { return near(s.brushScale, 0.11) }},
		{"brush shrinks", inPainter, common.KeyKPSubtract, func(s *state) bool { return near(s.brushScale, 0.09) }},
		{"hair grows", inModel, common.KeyKPAdd, func(s *state) bool { return near(s.style.Length, 0.6) }},
		{"hair shrinks", inModel, common.KeyMinus, func(s *state) bool { return near(s.style.Length, 0.4) }},
		{"escape", inModel, common.KeyEsc, func(s *state) bool { return s.quit }},
		{"reload needs dev", inModel, common.KeyF1, func(s *state) bool { return !s.reloadRequested }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(t, nil)
			s.apply(input.MouseButtonDown{Button: input.MouseMiddle, Position: tt.focus})
			s.apply(input.MouseButtonUp{Button: input.MouseMiddle, Position: tt.focus})
			s.apply(input.KeyDown{Key: tt.key})
			if !tt.check(s) {
				t.Fatalf("key %d did not have the expected effect", tt.key)
			}
		})
	}
}

func TestReloadInDevMode(t *testing.T) {
	s := newTestState(t, func(c *config.Config) { c.Debug.Dev = true })
	s.apply(input.KeyDown{Key: common.KeyF1})
	if !s.reloadRequested {
		t.Fatal("F1 did not request a reload")
	}
}

func TestAdjustLimits(t *testing.T) {
	s := newTestState(t, nil)
	s.apply(input.MouseMove{Position: inPainter})
	s.refreshFocus()
	for range 50 {
		s.apply(input.KeyDown{Key: common.KeyMinus, Repeat: true})
	}
	if !near(s.brushScale, s.cfg.Brush.MinScale) {
		t.Fatalf("brush scale %v, want floor %v", s.brushScale, s.cfg.Brush.MinScale)
	}

	s.apply(input.MouseMove{Position: inModel})
	s.refreshFocus()
	for range 10 {
		s.apply(input.KeyDown{Key: common.KeyMinus})
	}
	if s.style.Length != 0 {
		t.Fatalf("length %v, want 0", s.style.Length)
	}
}

func TestRepeatIgnoredForToggles(t *testing.T) {
	s := newTestState(t, nil)
	s.apply(input.MouseMove{Position: inPainter})
	s.refreshFocus()
	s.apply(input.KeyDown{Key: common.KeyD})
	s.apply(input.KeyDown{Key: common.KeyD, Repeat: true})
	if !s.overlay {
		t.Fatal("auto-repeat toggled the overlay back off")
	}
}

func TestMouseDownSetsFocusAndPainting(t *testing.T) {
	s := newTestState(t, nil)
	s.apply(input.MouseButtonDown{Button: input.MouseLeft, Position: inModel})
	if s.painterFocus || !s.paintingAllowed {
		t.Fatalf("focus %v painting %v after left press on the model", s.painterFocus, s.paintingAllowed)
	}
	s.apply(input.MouseButtonUp{Button: input.MouseLeft, Position: inModel})
	s.apply(input.MouseMove{Position: inPainter})
	if s.paintingAllowed {
		t.Fatal("painting allowed after release")
	}
	// Focus only changes on press or wheel.
	if s.painterFocus {
		t.Fatal("mouse move changed focus")
	}
	s.apply(input.MouseButtonDown{Button: input.MouseRight, Position: inPainter})
	if !s.painterFocus || !s.paintingAllowed {
		t.Fatalf("focus %v painting %v after right press on the painter", s.painterFocus, s.paintingAllowed)
	}
}

func TestFocusKeptOutsideViewports(t *testing.T) {
	s := newTestState(t, nil)
	s.apply(input.MouseButtonDown{Button: input.MouseLeft, Position: inPainter})
	s.apply(input.MouseButtonUp{Button: input.MouseLeft, Position: inPainter})
	before := s.modelCam.Position()

	// Off the left edge of the window: neither viewport contains the cursor.
	s.apply(input.MouseMove{Position: mgl32.Vec2{-5, 10}})
	s.apply(input.MouseWheel{Delta: -1})
	if !s.painterFocus {
		t.Fatal("wheel outside both viewports took focus from the painter")
	}
	if !near(s.intensity, 0.9) {
		t.Fatalf("intensity %v, want 0.9", s.intensity)
	}
	if s.modelCam.Position() != before {
		t.Fatal("wheel outside both viewports zoomed the model")
	}

	s.apply(input.MouseButtonDown{Button: input.MouseLeft, Position: inModel})
	s.apply(input.MouseButtonUp{Button: input.MouseLeft, Position: inModel})
	s.apply(input.MouseButtonDown{Button: input.MouseLeft, Position: mgl32.Vec2{250, 50}})
	if s.painterFocus {
		t.Fatal("press outside both viewports gave the painter focus")
	}
}

func TestVSyncToggle(t *testing.T) {
	s := newTestState(t, nil)
	if !s.vsync || s.presentModeChanged {
		t.Fatalf("vsync %v changed %v at start", s.vsync, s.presentModeChanged)
	}
	s.apply(input.KeyDown{Key: common.KeyV})
	if s.vsync || !s.presentModeChanged {
		t.Fatalf("vsync %v changed %v after V", s.vsync, s.presentModeChanged)
	}
	if presentMode(s.vsync) != renderer.PresentModeUncapped {
		t.Fatal("vsync off should present uncapped")
	}
	s.presentModeChanged = false
	s.apply(input.KeyDown{Key: common.KeyV, Repeat: true})
	if s.vsync || s.presentModeChanged {
		t.Fatal("auto-repeat toggled vsync")
	}
	s.apply(input.KeyDown{Key: common.KeyV})
	if presentMode(s.vsync) != renderer.PresentModeVSync {
		t.Fatal("vsync on should present on vblank")
	}
}

func TestBrushPipelinesWriteOneChannel(t *testing.T) {
	programs, err := shader.LoadPrograms("")
	if err != nil {
		t.Fatal(err)
	}
	byKey := map[string]pipeline.Pipeline{}
	for _, p := range newPipelines(programs) {
		byKey[p.PipelineKey()] = p
	}
	if _, ok := byKey[shader.ProgramBrush]; ok {
		t.Fatal("brush should only be registered per channel")
	}
	want := map[paint.Channel]wgpu.ColorWriteMask{
		paint.Red:   wgpu.ColorWriteMaskRed | wgpu.ColorWriteMaskAlpha,
		paint.Green: wgpu.ColorWriteMaskGreen | wgpu.ColorWriteMaskAlpha,
		paint.Blue:  wgpu.ColorWriteMaskBlue | wgpu.ColorWriteMaskAlpha,
	}
	for ch, mask := range want {
		p, ok := byKey[brushPipeline(ch)]
		if !ok {
			t.Fatalf("no brush pipeline for %s", ch)
		}
		if p.WriteMask() != mask {
			t.Fatalf("%s write mask = %v, want %v", ch, p.WriteMask(), mask)
		}
		if b := p.BlendState(); b == nil || b.Color.SrcFactor != wgpu.BlendFactorConstant {
			t.Fatalf("%s blend = %+v, want constant blend", ch, b)
		}
	}
	if byKey[shader.ProgramQuad].WriteMask() != wgpu.ColorWriteMaskAll {
		t.Fatal("canvas quad must write every channel")
	}
	if len(byKey) != len(shader.Programs)+2 {
		t.Fatalf("%d pipelines for %d programs", len(byKey), len(shader.Programs))
	}
}

// startStroke presses button over the painter center and refreshes the cameras.
func startStroke(s *state, b input.MouseButton) {
	s.apply(input.MouseButtonDown{Button: b, Position: inPainter})
	s.update()
}

func TestBrushPositionIsCanvasCenter(t *testing.T) {
	s := newTestState(t, nil)
	startStroke(s, input.MouseLeft)
	if p := s.brushPosition(); !near(p.X(), 0.5) || !near(p.Y(), 0.5) {
		t.Fatalf("brush position %v, want (0.5, 0.5)", p)
	}
}

func TestPaintTouchesOnlyActiveChannel(t *testing.T) {
	for _, ch := range []paint.Channel{paint.Red, paint.Green, paint.Blue} {
		t.Run(ch.String(), func(t *testing.T) {
			s := newTestState(t, nil)
			s.channel = ch
			before := s.surface.Bytes()

			startStroke(s, input.MouseLeft)
			if err := s.paint(); err != nil {
				t.Fatal(err)
			}
			after := s.surface.Bytes()
			if bytes.Equal(before, after) {
				t.Fatal("paint changed nothing")
			}
			for i := range after {
				if i%3 != int(ch) && after[i] != before[i] {
					t.Fatalf("byte %d (channel %d) changed", i, i%3)
				}
			}
			if got := s.surface.Pixel(32, 32)[ch]; got <= before[(32*64+32)*3+int(ch)] {
				t.Fatalf("center %s = %d, did not increase", ch, got)
			}
		})
	}
}

func TestEraseReturnsToChannelBaseline(t *testing.T) {
	s := newTestState(t, nil)
	s.channel = paint.Green
	startStroke(s, input.MouseLeft)
	if err := s.paint(); err != nil {
		t.Fatal(err)
	}
	painted := s.surface.Pixel(32, 32)[paint.Green]
	s.apply(input.MouseButtonUp{Button: input.MouseLeft, Position: inPainter})

	startStroke(s, input.MouseRight)
	if k := s.effectiveIntensity(); k != 0.5 {
		t.Fatalf("erase constant %v, want 0.5", k)
	}
	for range 20 {
		if err := s.paint(); err != nil {
			t.Fatal(err)
		}
	}
	got := s.surface.Pixel(32, 32)[paint.Green]
	if got >= painted || got < 127 || got > 129 {
		t.Fatalf("erased green = %d (painted %d), want about 128", got, painted)
	}

	s.channel = paint.Red
	if k := s.effectiveIntensity(); k != 0 {
		t.Fatalf("red erase constant %v, want 0", k)
	}
}

func TestShiftInvertsIntensity(t *testing.T) {
	s := newTestState(t, nil)
	s.intensity = 0.8
	s.apply(input.KeyDown{Key: common.KeyRightShift})
	if k := s.effectiveIntensity(); !near(k, 0.2) {
		t.Fatalf("constant %v, want 0.2", k)
	}
}

func TestPaintNeedsPainterFocus(t *testing.T) {
	s := newTestState(t, nil)
	before := s.surface.Bytes()
	s.apply(input.MouseButtonDown{Button: input.MouseLeft, Position: inModel})
	// Drag into the painter without a new press: focus stays on the model.
	s.apply(input.MouseMove{Position: inPainter})
	s.update()
	if err := s.paint(); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, s.surface.Bytes()) {
		t.Fatal("painted without painter focus")
	}
}

func TestClearActiveChannel(t *testing.T) {
	s := newTestState(t, nil)
	for _, ch := range []paint.Channel{paint.Red, paint.Green, paint.Blue} {
		s.channel = ch
		startStroke(s, input.MouseLeft)
		if err := s.paint(); err != nil {
			t.Fatal(err)
		}
		s.apply(input.MouseButtonUp{Button: input.MouseLeft, Position: inPainter})
	}
	painted := s.surface.Bytes()

	s.channel = paint.Green
	s.apply(input.KeyDown{Key: common.KeyC})
	after := s.surface.Bytes()
	for i := range after {
		switch i % 3 {
		case int(paint.Green):
			if after[i] != 128 {
				t.Fatalf("green byte %d = %d after clear", i, after[i])
			}
		default:
			if after[i] != painted[i] {
				t.Fatalf("byte %d changed by a green clear", i)
			}
		}
	}

	s.apply(input.KeyDown{Key: common.KeyR})
	if p := s.surface.Pixel(32, 32); p != [3]byte{0, 128, 128} {
		t.Fatalf("pixel after R = %v", p)
	}
}

func TestSaveThenLoadRecent(t *testing.T) {
	s := newTestState(t, nil)
	s.style = hairstyle.Hairstyle{Color: mgl32.Vec3{1, 0, 0}, Width: 2, Length: 0.5}
	startStroke(s, input.MouseLeft)
	if err := s.paint(); err != nil {
		t.Fatal(err)
	}
	s.apply(input.MouseButtonUp{Button: input.MouseLeft, Position: inPainter})
	saved := s.surface.Bytes()

	s.apply(input.KeyDown{Key: common.KeyS})
	if s.saves.Len() != 1 || s.saves.Counter() != 1 {
		t.Fatalf("saves len %d counter %d", s.saves.Len(), s.saves.Counter())
	}

	s.apply(input.KeyDown{Key: common.KeyR})
	s.apply(input.KeyDown{Key: common.Key0})
	s.apply(input.KeyDown{Key: common.KeyX})
	if !bytes.Equal(s.surface.Bytes(), saved) {
		t.Fatal("loaded mask differs from the saved one")
	}
	if s.style.Color != (mgl32.Vec3{1, 0, 0}) || s.style.Width != 2 || s.style.Length != 0.5 {
		t.Fatalf("loaded style %+v", s.style)
	}
}

func TestEmptyCollectionsAreNoOps(t *testing.T) {
	s := newTestState(t, nil)
	style := s.style
	before := s.surface.Bytes()
	for _, k := range []int{common.KeyLeft, common.KeyRight, common.KeyN, common.KeyUp, common.KeyDown, common.KeyF9} {
		s.apply(input.KeyDown{Key: k})
	}
	if s.style != style || !bytes.Equal(before, s.surface.Bytes()) {
		t.Fatal("cycling an empty collection changed state")
	}
}

func TestWindowEvents(t *testing.T) {
	s := newTestState(t, nil)
	s.apply(input.WindowMinimized{})
	if !s.paused {
		t.Fatal("minimise did not pause")
	}
	s.apply(input.WindowResized{Width: 0, Height: 0})
	if s.width != 200 {
		t.Fatal("zero-size resize changed the layout")
	}
	s.apply(input.WindowRestored{})
	s.apply(input.WindowResized{Width: 400, Height: 300})
	if s.paused || s.modelCam.Viewport() != common.NewRect(200, 0, 200, 300) {
		t.Fatalf("paused %v model viewport %+v", s.paused, s.modelCam.Viewport())
	}
	s.apply(input.Quit{})
	if !s.quit {
		t.Fatal("quit event ignored")
	}
}

func TestArcballFollowsModelDrag(t *testing.T) {
	s := newTestState(t, nil)
	s.apply(input.MouseButtonDown{Button: input.MouseLeft, Position: inModel})
	s.apply(input.MouseMove{Position: inModel.Add(mgl32.Vec2{20, 0})})
	s.update()
	rotated := s.arcball.Rotation()
	if rotated.ApproxEqual(mgl32.QuatIdent()) {
		t.Fatal("model drag did not rotate")
	}

	s.apply(input.MouseButtonUp{Button: input.MouseLeft, Position: inModel})
	s.update()
	if !s.arcball.Rotation().ApproxEqual(rotated) {
		t.Fatal("release changed the rotation")
	}

	// A painter-side drag never rotates the model.
	s.apply(input.MouseButtonDown{Button: input.MouseLeft, Position: inPainter})
	s.apply(input.MouseMove{Position: inPainter.Add(mgl32.Vec2{20, 0})})
	s.update()
	if !s.arcball.Rotation().ApproxEqual(rotated) {
		t.Fatal("painter drag rotated the model")
	}
}
