package engine

import (
	"errors"

	"github.com/Carmen-Shannon/hairstylist/common"
	"github.com/Carmen-Shannon/hairstylist/engine/hairstyle"
	"github.com/Carmen-Shannon/hairstylist/engine/input"
	"github.com/Carmen-Shannon/hairstylist/engine/paint"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// apply folds one event into the input snapshot and then runs its handler.
//
// Parameters:
//   - ev: the event to apply
func (s *state) apply(ev input.Event) {
	s.input.Apply(ev)

	switch e := ev.(type) {
	case input.KeyDown:
		s.handleKey(e)
	case input.MouseWheel:
		s.handleWheel(e.Delta)
	case input.MouseButtonDown:
		s.refreshFocus()
		if e.Button == input.MouseLeft || e.Button == input.MouseRight {
			s.paintingAllowed = true
		}
	case input.MouseMove:
		s.paintingAllowed = s.input.IsDragging()
	case input.WindowResized:
		if e.Width > 0 && e.Height > 0 {
			s.layout(e.Width, e.Height)
		}
	case input.WindowMinimized:
		s.paused = true
	case input.WindowRestored:
		s.paused = false
	case input.Quit:
		s.quit = true
	}
}

// handleKey runs the key map. Auto-repeat only reaches the keys that adjust a value.
func (s *state) handleKey(e input.KeyDown) {
	switch e.Key {
	case common.KeyEqual, common.KeyKPAdd:
		s.adjust(1)
		return
	case common.KeyMinus, common.KeyKPSubtract:
		s.adjust(-1)
		return
	}
	if e.Repeat {
		return
	}

	if e.Key >= common.Key0 && e.Key <= common.Key9 {
		s.style.Color = hairstyle.Presets[e.Key-common.Key0]
		return
	}

	switch e.Key {
	case common.KeyL:
		s.channel = paint.Red
	case common.KeyT:
		s.channel = paint.Green
	case common.KeyB:
		s.channel = paint.Blue
	case common.KeyF5, common.KeyS:
		s.save()
	case common.KeyF9, common.KeyX:
		s.selectRecord(s.saves, s.saves.Recent)
	case common.KeyR:
		if s.painterFocus {
			s.logClear(paint.MaskAll)
		}
	case common.KeyC:
		if s.painterFocus {
			s.logClear(paint.ChannelMask(s.channel))
		}
	case common.KeyD:
		if s.painterFocus {
			s.overlay = !s.overlay
		}
	case common.KeyLeft:
		s.selectRecord(s.presets, s.presets.Prev)
	case common.KeyRight, common.KeyN:
		s.selectRecord(s.presets, s.presets.Next)
	case common.KeyUp:
		s.selectRecord(s.saves, s.saves.Next)
	case common.KeyDown:
		s.selectRecord(s.saves, s.saves.Prev)
	case common.KeyV:
		s.vsync = !s.vsync
		s.presentModeChanged = true
	case common.KeyF1:
		if s.cfg.Debug.Dev {
			s.reloadRequested = true
		}
	case common.KeyEsc:
		s.quit = true
	}
}

// adjust steps the brush scale with painter focus, otherwise the hair length.
func (s *state) adjust(sign float32) {
	if s.painterFocus {
		s.brushScale = common.Clamp(s.brushScale+sign*s.cfg.Brush.ScaleStep, s.cfg.Brush.MinScale, 1)
		return
	}
	s.style.Length = max(s.style.Length+sign*s.cfg.Hair.LengthStep, 0)
}

// handleWheel routes the wheel to intensity, strand width or zoom depending on focus and Shift.
func (s *state) handleWheel(delta float32) {
	s.refreshFocus()
	switch {
	case s.painterFocus:
		s.intensity = common.Clamp(s.intensity+delta*s.cfg.Brush.IntensityStep, 0, 1)
	case s.input.ShiftDown():
		s.style.Width = common.Clamp(s.style.Width+delta*s.cfg.Hair.WidthStep, hairstyle.MinWidth, hairstyle.MaxWidth)
	default:
		s.modelCam.Zoom(-delta * s.cfg.Camera.ZoomStep)
	}
}

// save appends the current hairstyle and mask to the save collection.
func (s *state) save() {
	rec, err := s.saves.Save(s.style, s.surface)
	if err != nil {
		s.log.Error("failed to save hairstyle", zap.Error(err))
		return
	}
	s.log.Info("hairstyle saved",
		zap.String("file", rec.Filename),
		zap.String("size", humanize.Bytes(uint64(s.surface.Size()))),
		zap.Int("count", s.saves.Len()))
}

// selectRecord moves through a collection with step and makes the record under the cursor current.
// A failed load leaves the hairstyle and the mask as they were.
func (s *state) selectRecord(c hairstyle.Collection, step func() (hairstyle.Record, error)) {
	rec, err := step()
	if errors.Is(err, hairstyle.ErrEmptyCollection) {
		s.log.Debug("collection is empty", zap.String("collection", c.Name()))
		return
	}
	if err != nil {
		s.log.Warn("failed to select hairstyle", zap.String("collection", c.Name()), zap.Error(err))
		return
	}
	if err := c.LoadMask(rec, s.surface); err != nil {
		s.log.Warn("skipping hairstyle", zap.String("file", rec.Filename), zap.Error(err))
		return
	}
	s.style = rec.Style.Normalize()
	s.log.Info("hairstyle loaded",
		zap.String("collection", c.Name()),
		zap.String("file", rec.Filename),
		zap.Int("index", c.Index()))
}
