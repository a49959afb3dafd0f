package engine

import (
	"fmt"

	"github.com/Carmen-Shannon/hairstylist/engine/paint"
	"go.uber.org/zap"
)

// paint stamps the brush at the cursor into the active channel. Left drag paints with the
// brush intensity (inverted while Shift is held), right drag erases toward the channel's
// baseline. Nothing happens without painter focus.
//
// Returns:
//   - error: error if the surface refused the pass
func (s *state) paint() error {
	if !s.paintingAllowed || !s.painterFocus {
		return nil
	}
	left, right := s.input.LeftDrag(), s.input.RightDrag()
	if !left.Active && !right.Active {
		return nil
	}

	pass := paint.Pass{
		Blend: paint.Blend{Mode: paint.BlendConstantAlpha, Constant: s.effectiveIntensity()},
		Mask:  paint.ChannelMask(s.channel),
	}
	pos := s.brushPosition()
	err := s.surface.Run(pass, func(t *paint.Target) error {
		return t.Stamp(s.brush, pos, s.brushScale)
	})
	if err != nil {
		return fmt.Errorf("paint %s at %v: %w", s.channel, pos, err)
	}
	return nil
}

// effectiveIntensity is the blend constant of a paint stamp.
func (s *state) effectiveIntensity() float32 {
	if s.input.RightDrag().Active {
		return s.channel.EraseValue()
	}
	if s.input.ShiftDown() {
		return 1 - s.intensity
	}
	return s.intensity
}

// clear resets the channels in mask to the baseline color.
//
// Parameters:
//   - mask: the channels to clear
//
// Returns:
//   - error: error if the surface refused the pass
func (s *state) clear(mask paint.ColorMask) error {
	err := s.surface.Run(paint.Pass{Mask: mask}, func(t *paint.Target) error {
		return t.Clear(paint.Baseline)
	})
	if err != nil {
		return fmt.Errorf("clear mask: %w", err)
	}
	return nil
}

func (s *state) logClear(mask paint.ColorMask) {
	if err := s.clear(mask); err != nil {
		s.log.Error("failed to clear mask", zap.Error(err))
	}
}
