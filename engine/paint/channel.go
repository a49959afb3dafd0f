package paint

import "github.com/cogentcore/webgpu/wgpu"

// Channel selects one color layer of the mask.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

// String returns the channel's name.
func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return "unknown"
	}
}

// EraseValue is the value a right-drag writes into the channel: red erases to 0, the tilt
// channels erase to their neutral 0.5 so they match the clear baseline.
func (c Channel) EraseValue() float32 {
	if c == Red {
		return 0
	}
	return 0.5
}

// ColorMask is a set of writable channels.
type ColorMask uint8

const (
	MaskRed ColorMask = 1 << iota
	MaskGreen
	MaskBlue

	MaskNone ColorMask = 0
	MaskAll            = MaskRed | MaskGreen | MaskBlue
)

// ChannelMask returns the mask that writes only c.
func ChannelMask(c Channel) ColorMask {
	switch c {
	case Red:
		return MaskRed
	case Green:
		return MaskGreen
	case Blue:
		return MaskBlue
	default:
		return MaskNone
	}
}

// Has reports whether channel index i (0 = red) is writable.
func (m ColorMask) Has(i int) bool {
	return m&(1<<uint(i)) != 0
}

// WriteMask returns the GPU color write mask that writes the channels of m. Alpha is always written.
func (m ColorMask) WriteMask() wgpu.ColorWriteMask {
	w := wgpu.ColorWriteMaskAlpha
	if m.Has(0) {
		w |= wgpu.ColorWriteMaskRed
	}
	if m.Has(1) {
		w |= wgpu.ColorWriteMaskGreen
	}
	if m.Has(2) {
		w |= wgpu.ColorWriteMaskBlue
	}
	return w
}

// Baseline is the neutral mask color: no hair, untilted strands.
var Baseline = [3]float32{0, 0.5, 0.5}
