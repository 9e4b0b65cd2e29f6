package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"voxelcore/internal/world"
)

func almostEqual(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

// Flat ground: a single ground block at the origin, player dropped from
// above comes to rest exactly on top of it, onGround set, vertical
// velocity zeroed.
func TestStepperFlatGroundLanding(t *testing.T) {
	w := newTestWorld(t)
	placeBlock(t, w, world.BlockPos{X: 0, Y: 0, Z: 0}, world.BlockType(1))

	s := NewStepper(w)
	p := NewPlayer(mgl32.Vec3{0, 5, 0})

	for i := 0; i < 300 && !p.OnGround; i++ {
		s.Update(p, FixedTimestep)
	}

	if !p.OnGround {
		t.Fatal("player never landed")
	}
	if !almostEqual(p.Position.Y(), 0.5, 1e-4) {
		t.Fatalf("landed position.y = %v, want 0.5", p.Position.Y())
	}
	if p.Velocity.Y() != 0 {
		t.Fatalf("velocity.y after landing = %v, want 0", p.Velocity.Y())
	}
}

// A wall block one unit east of the player's start stops horizontal
// motion: the player never tunnels past blockMin - Width/2, and velocity.x
// is zeroed on contact.
func TestStepperWallStop(t *testing.T) {
	w := newTestWorld(t)
	placeBlock(t, w, world.BlockPos{X: 1, Y: 0, Z: 0}, world.BlockType(1))

	s := NewStepper(w)
	p := NewPlayer(mgl32.Vec3{0, 0, 0})
	p.OnGround = true
	p.Velocity = mgl32.Vec3{5, 0, 0}

	for i := 0; i < 60; i++ {
		s.Update(p, FixedTimestep)
	}

	if p.Velocity.X() != 0 {
		t.Fatalf("velocity.x after wall contact = %v, want 0", p.Velocity.X())
	}
	if p.Position.X() >= 0.4 {
		t.Fatalf("position.x = %v, should have stopped short of the wall (< 0.4)", p.Position.X())
	}
}

// Walking off the edge of a ground platform clears onGround on the very
// next step (via the cliff-edge check, since the Y step itself produces no
// vertical motion that tick) and lets gravity take over the step after.
func TestStepperCliffEdgeClearsOnGround(t *testing.T) {
	w := newTestWorld(t)
	for x := 0; x <= 5; x++ {
		for z := 0; z <= 5; z++ {
			placeBlock(t, w, world.BlockPos{X: x, Y: 0, Z: z}, world.BlockType(1))
		}
	}

	s := NewStepper(w)
	p := NewPlayer(mgl32.Vec3{5, 0.5, 0})
	p.OnGround = true

	// Walk directly off the platform's edge in one jump, as if the prior
	// frame's X resolution had already carried the player there.
	p.SetPosition(mgl32.Vec3{6, 0.5, 0})

	s.Update(p, FixedTimestep)
	if p.OnGround {
		t.Fatal("cliff-edge check should have cleared onGround")
	}

	s.Update(p, FixedTimestep)
	if p.Velocity.Y() >= 0 {
		t.Fatalf("velocity.y one tick after leaving the ground = %v, want negative", p.Velocity.Y())
	}
}

func TestStepperTerminalVelocityClamp(t *testing.T) {
	w := newTestWorld(t)
	placeBlock(t, w, world.BlockPos{X: 0, Y: -1000, Z: 0}, world.BlockType(1))
	w.RemoveBlock(world.BlockPos{X: 0, Y: -1000, Z: 0})

	s := NewStepper(w)
	p := NewPlayer(mgl32.Vec3{0, 5000, 0})

	for i := 0; i < 1000; i++ {
		s.Update(p, FixedTimestep)
	}

	if p.Velocity.Y() < TerminalVelocity {
		t.Fatalf("velocity.y = %v fell below TerminalVelocity %v", p.Velocity.Y(), TerminalVelocity)
	}
	if !almostEqual(p.Velocity.Y(), TerminalVelocity, 0.5) {
		t.Fatalf("velocity.y = %v, want it to have converged to TerminalVelocity %v", p.Velocity.Y(), TerminalVelocity)
	}
}

// Update clamps dt to MaxFrameTime before accumulating, so a pathologically
// large frame delta (e.g. after a debugger pause) still only advances
// physics by a bounded amount rather than tunneling the player through
// everything in one jump.
func TestStepperMaxFrameTimeClamp(t *testing.T) {
	w := newTestWorld(t)
	placeBlock(t, w, world.BlockPos{X: 0, Y: 0, Z: 0}, world.BlockType(1))

	s := NewStepper(w)
	p := NewPlayer(mgl32.Vec3{0, 100, 0})

	s.Update(p, 1000.0)

	maxFallPerClamp := float32(math.Abs(float64(TerminalVelocity)) * MaxFrameTime)
	if p.Position.Y() < 100-maxFallPerClamp-1 {
		t.Fatalf("position.y = %v fell further than one clamped frame should allow", p.Position.Y())
	}
}
