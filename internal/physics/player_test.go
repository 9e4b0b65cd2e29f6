package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewPlayerBoxLockStepWithPosition(t *testing.T) {
	p := NewPlayer(mgl32.Vec3{1, 2, 3})
	wantCenter := mgl32.Vec3{1, 2 + Height/2, 3}
	if p.Box.Center() != wantCenter {
		t.Fatalf("Box.Center() = %v, want %v", p.Box.Center(), wantCenter)
	}
}

func TestSetPositionKeepsBoxInLockStep(t *testing.T) {
	p := NewPlayer(mgl32.Vec3{0, 0, 0})
	p.SetPosition(mgl32.Vec3{5, 10, -3})
	wantCenter := mgl32.Vec3{5, 10 + Height/2, -3}
	if p.Box.Center() != wantCenter {
		t.Fatalf("Box.Center() after SetPosition = %v, want %v", p.Box.Center(), wantCenter)
	}
	wantMin := mgl32.Vec3{5 - Width/2, 10, -3 - Width/2}
	if p.Box.Min() != wantMin {
		t.Fatalf("Box.Min() after SetPosition = %v, want %v", p.Box.Min(), wantMin)
	}
}

func TestEyePositionIsFootPlusEyeHeight(t *testing.T) {
	p := NewPlayer(mgl32.Vec3{2, 3, 4})
	want := mgl32.Vec3{2, 3 + EyeHeight, 4}
	if p.EyePosition() != want {
		t.Fatalf("EyePosition() = %v, want %v", p.EyePosition(), want)
	}
}

func TestTryJumpOnlyWorksWhenGrounded(t *testing.T) {
	p := NewPlayer(mgl32.Vec3{0, 0, 0})
	p.OnGround = false
	p.TryJump()
	if p.Velocity.Y() != 0 {
		t.Fatalf("jump while airborne should be a no-op, got velocity.y=%v", p.Velocity.Y())
	}

	p.OnGround = true
	p.TryJump()
	if p.Velocity.Y() != JumpVelocity {
		t.Fatalf("velocity.y after jump = %v, want %v", p.Velocity.Y(), JumpVelocity)
	}
	if p.OnGround {
		t.Fatal("TryJump should clear OnGround")
	}
}
