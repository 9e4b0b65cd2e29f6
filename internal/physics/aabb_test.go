package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestAABBIntersectsOpenInterval(t *testing.T) {
	a := NewAABB(mgl32.Vec3{0, 0, 0}, 1, 1, 1)
	b := NewAABB(mgl32.Vec3{0.5, 0, 0}, 1, 1, 1)
	if !a.Intersects(b) {
		t.Fatal("overlapping boxes should intersect")
	}

	c := NewAABB(mgl32.Vec3{1, 0, 0}, 1, 1, 1)
	if a.Intersects(c) {
		t.Fatal("edge-touching boxes (open interval) should not intersect")
	}

	d := NewAABB(mgl32.Vec3{5, 0, 0}, 1, 1, 1)
	if a.Intersects(d) {
		t.Fatal("disjoint boxes should not intersect")
	}
}

func TestAABBIntersectsOnAxisRequiresMinOverlapOnOtherAxes(t *testing.T) {
	// a is a 1x1x1 box at origin; b is offset so that it only grazes a's
	// corner on X and Z (overlap well under MinOverlap), while Y overlap
	// is substantial. A corner graze must not count as an X or Z hit.
	a := NewAABB(mgl32.Vec3{0, 0, 0}, 1, 1, 1)
	b := NewAABB(mgl32.Vec3{0.995, 0, 0.995}, 1, 1, 1)

	if b.IntersectsOnAxis(a, AxisX) {
		t.Fatal("corner graze (Z overlap below MinOverlap) should not register as an X-axis hit")
	}
	if b.IntersectsOnAxis(a, AxisZ) {
		t.Fatal("corner graze (X overlap below MinOverlap) should not register as a Z-axis hit")
	}

	// Now give it real overlap on all three axes: should register on every axis.
	e := NewAABB(mgl32.Vec3{0.5, 0.5, 0.5}, 1, 1, 1)
	if !e.IntersectsOnAxis(a, AxisX) || !e.IntersectsOnAxis(a, AxisY) || !e.IntersectsOnAxis(a, AxisZ) {
		t.Fatal("substantially overlapping boxes should register on every axis")
	}
}

func TestAABBOffsetAndSetSize(t *testing.T) {
	a := NewAABB(mgl32.Vec3{0, 0, 0}, 2, 2, 2)
	if a.Min() != (mgl32.Vec3{-1, -1, -1}) || a.Max() != (mgl32.Vec3{1, 1, 1}) {
		t.Fatalf("unexpected initial bounds: min=%v max=%v", a.Min(), a.Max())
	}

	a.Offset(1, 0, 0)
	if a.Center() != (mgl32.Vec3{1, 0, 0}) {
		t.Fatalf("Offset did not move center: %v", a.Center())
	}
	if a.Min() != (mgl32.Vec3{0, -1, -1}) {
		t.Fatalf("Offset did not move min in lock-step: %v", a.Min())
	}
}
