// Package physics implements the fixed-timestep, axis-separated collision
// stepper that moves a kinematic Player through a field of unit-cube
// blocks, plus the short-range raycaster used for block selection.
package physics

import "github.com/go-gl/mathgl/mgl32"

// AABB is an axis-aligned box stored as both center/half-extents and
// their derived min/max, so the hot collision path never recomputes
// either representation.
type AABB struct {
	center      mgl32.Vec3
	halfExtents mgl32.Vec3
	min, max    mgl32.Vec3
}

// NewAABB builds a box from a center and full size (hx, hy, hz are full
// extents, not half).
func NewAABB(center mgl32.Vec3, hx, hy, hz float32) AABB {
	b := AABB{}
	b.SetSize(hx, hy, hz)
	b.SetCenter(center)
	return b
}

// SetCenter recomputes min/max from a new center.
func (b *AABB) SetCenter(p mgl32.Vec3) {
	b.center = p
	b.min = p.Sub(b.halfExtents)
	b.max = p.Add(b.halfExtents)
}

// SetSize recomputes half-extents and min/max from full (hx, hy, hz) size.
func (b *AABB) SetSize(hx, hy, hz float32) {
	b.halfExtents = mgl32.Vec3{hx / 2, hy / 2, hz / 2}
	b.min = b.center.Sub(b.halfExtents)
	b.max = b.center.Add(b.halfExtents)
}

// Offset translates the box by (dx, dy, dz).
func (b *AABB) Offset(dx, dy, dz float32) {
	b.SetCenter(b.center.Add(mgl32.Vec3{dx, dy, dz}))
}

// Center returns the box's center point.
func (b AABB) Center() mgl32.Vec3 { return b.center }

// Min returns the box's minimum corner.
func (b AABB) Min() mgl32.Vec3 { return b.min }

// Max returns the box's maximum corner.
func (b AABB) Max() mgl32.Vec3 { return b.max }

// Intersects reports open-interval overlap (strict <, >) on all three
// axes.
func (b AABB) Intersects(o AABB) bool {
	return b.min.X() < o.max.X() && b.max.X() > o.min.X() &&
		b.min.Y() < o.max.Y() && b.max.Y() > o.min.Y() &&
		b.min.Z() < o.max.Z() && b.max.Z() > o.min.Z()
}

// Axis identifies one of the three principal axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// IntersectsOnAxis reports overlap on the named axis AND strictly-more-
// than-MinOverlap overlap on the other two. This distinguishes, e.g.,
// genuine floor contact from a player merely brushing a wall while still
// airborne.
func (b AABB) IntersectsOnAxis(o AABB, axis Axis) bool {
	ox := overlap(b.min.X(), b.max.X(), o.min.X(), o.max.X())
	oy := overlap(b.min.Y(), b.max.Y(), o.min.Y(), o.max.Y())
	oz := overlap(b.min.Z(), b.max.Z(), o.min.Z(), o.max.Z())

	switch axis {
	case AxisX:
		return ox > 0 && oy > MinOverlap && oz > MinOverlap
	case AxisY:
		return oy > 0 && ox > MinOverlap && oz > MinOverlap
	case AxisZ:
		return oz > 0 && ox > MinOverlap && oy > MinOverlap
	}
	return false
}

// overlap returns the amount by which [aMin,aMax] and [bMin,bMax] overlap,
// zero or negative if they don't.
func overlap(aMin, aMax, bMin, bMax float32) float32 {
	lo := aMin
	if bMin > lo {
		lo = bMin
	}
	hi := aMax
	if bMax < hi {
		hi = bMax
	}
	return hi - lo
}
