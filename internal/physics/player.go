package physics

import "github.com/go-gl/mathgl/mgl32"

// Player body dimensions, fixed per the data model.
const (
	Width     = 0.6
	Height    = 1.8
	EyeHeight = 1.62
)

// Player is a kinematic body: world-space foot position, velocity,
// ground state, and an AABB that is always recomputed from Position —
// the two are never allowed to drift apart.
type Player struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	OnGround bool
	Box      AABB

	Yaw, Pitch float32
}

// NewPlayer returns a player standing at the given foot position with its
// AABB already synchronized.
func NewPlayer(position mgl32.Vec3) *Player {
	p := &Player{}
	p.SetPosition(position)
	return p
}

// SetPosition writes Position and recomputes Box in lock-step: the
// invariant `Box.Center() == (pos.x, pos.y + Height/2, pos.z)` must hold
// after every write, not just after a physics step.
func (p *Player) SetPosition(pos mgl32.Vec3) {
	p.Position = pos
	center := mgl32.Vec3{pos.X(), pos.Y() + Height/2, pos.Z()}
	p.Box.SetSize(Width, Height, Width)
	p.Box.SetCenter(center)
}

// EyePosition returns the camera's world-space position.
func (p *Player) EyePosition() mgl32.Vec3 {
	return mgl32.Vec3{p.Position.X(), p.Position.Y() + EyeHeight, p.Position.Z()}
}

// Forward returns the unit look direction for the current yaw/pitch
// (degrees, right-handed, yaw around +Y, pitch around the local right
// axis).
func (p *Player) Forward() mgl32.Vec3 {
	yaw := mgl32.DegToRad(p.Yaw)
	pitch := mgl32.DegToRad(p.Pitch)

	return mgl32.Vec3{
		mgl32.Cos(pitch) * mgl32.Cos(yaw),
		mgl32.Sin(pitch),
		mgl32.Cos(pitch) * mgl32.Sin(yaw),
	}.Normalize()
}

// GetViewMatrix returns the look-at view matrix for the current eye
// position and look direction.
func (p *Player) GetViewMatrix() mgl32.Mat4 {
	eye := p.EyePosition()
	return mgl32.LookAtV(eye, eye.Add(p.Forward()), mgl32.Vec3{0, 1, 0})
}

// TryJump sets vertical velocity to JumpVelocity iff the player is
// currently grounded, and clears OnGround.
func (p *Player) TryJump() {
	if !p.OnGround {
		return
	}
	p.Velocity = mgl32.Vec3{p.Velocity.X(), JumpVelocity, p.Velocity.Z()}
	p.OnGround = false
}
