package common

import "github.com/go-gl/mathgl/mgl32"

// Rect is an axis-aligned rectangle in window pixel space.
// The origin is the top-left corner of the window and Y grows downward.
type Rect struct {
	X, Y, W, H float32
}

// NewRect builds a Rect from its origin and size.
func NewRect(x, y, w, h float32) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// MinX returns the left edge.
func (r Rect) MinX() float32 { return r.X }

// MinY returns the top edge.
func (r Rect) MinY() float32 { return r.Y }

// MaxX returns the right edge.
func (r Rect) MaxX() float32 { return r.X + r.W }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float32 { return r.Y + r.H }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Inside reports whether p lies within the rectangle. The minimum edges are inclusive
// and the maximum edges exclusive, so two rectangles sharing an edge never both claim a point.
//
// Parameters:
//   - p: the point in window pixel space
//
// Returns:
//   - bool: true if the point is inside
func (r Rect) Inside(p mgl32.Vec2) bool {
	return p.X() >= r.MinX() && p.X() < r.MaxX() && p.Y() >= r.MinY() && p.Y() < r.MaxY()
}

// Aspect returns W/H, or 1 for a degenerate rectangle.
func (r Rect) Aspect() float32 {
	if r.H <= 0 {
		return 1
	}
	return r.W / r.H
}
