package physics

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxelcore/internal/profiling"
	"voxelcore/internal/world"
)

// Fixed constants governing the stepper, per the data model.
const (
	Gravity            = -20.0
	JumpVelocity       = 7.0
	TerminalVelocity   = -50.0
	FixedTimestep      = 1.0 / 60.0
	MaxFrameTime       = 0.25
	PhysicsChunkRadius = 1
	CollisionMargin    = 0.001
	MinOverlap         = 0.01
	GroundThreshold    = 0.02
	MinXZOverlap       = 0.1
)

// Stepper integrates a Player through the block field using a fixed-
// timestep accumulator and per-axis (Y, then X, then Z) collision
// resolution. It caches nearby block positions and only refreshes the
// cache when the player crosses into a new chunk or an external
// invalidation is requested, since querying World on every sub-step
// would be wasteful.
type Stepper struct {
	w *world.World

	accumulator float32

	lastChunk    world.ChunkCoord
	hasLastChunk bool
	invalidated  bool

	nearby []world.BlockPos
}

// NewStepper returns a stepper driving against the given World.
func NewStepper(w *world.World) *Stepper {
	return &Stepper{w: w}
}

// InvalidateCache forces the nearby-block cache to refresh on the next
// step even if the player hasn't changed chunks (e.g. after a block edit
// near the player).
func (s *Stepper) InvalidateCache() {
	s.invalidated = true
}

// Update clamps dt to MaxFrameTime, accumulates it, and runs as many
// FixedTimestep steps as the accumulator covers, carrying any remainder
// to the next call.
func (s *Stepper) Update(p *Player, dt float32) {
	defer profiling.Track("physics.Stepper.Update")()

	if dt > MaxFrameTime {
		dt = MaxFrameTime
	}
	s.accumulator += dt
	for s.accumulator >= FixedTimestep {
		s.step(p, FixedTimestep)
		s.accumulator -= FixedTimestep
	}
}

func (s *Stepper) refreshCache(p *Player) {
	chunk := world.ChunkCoordFromBlock(world.BlockPosFromWorld(float64(p.Position.X()), 0, float64(p.Position.Z())))
	if s.hasLastChunk && chunk == s.lastChunk && !s.invalidated {
		return
	}
	s.lastChunk = chunk
	s.hasLastChunk = true
	s.invalidated = false
	s.nearby = s.w.GetNearbyBlockPositions(float64(p.Position.X()), float64(p.Position.Z()), PhysicsChunkRadius)
}

func blockAABB(b world.BlockPos) AABB {
	return NewAABB(mgl32.Vec3{float32(b.X), float32(b.Y), float32(b.Z)}, 1, 1, 1)
}

// step runs one fixed-timestep physics tick: gravity, Y/cliff/X/Z
// resolution, in that fixed order (axis order never reverses: X/Z
// collisions must never touch onGround, or the player would flicker
// grounded/airborne at block seams).
func (s *Stepper) step(p *Player, dt float32) {
	defer profiling.Track("physics.Stepper.step")()

	s.refreshCache(p)

	if !p.OnGround {
		v := p.Velocity
		v[1] += Gravity * dt
		if v[1] < TerminalVelocity {
			v[1] = TerminalVelocity
		}
		p.Velocity = v
	}

	dx := p.Velocity.X() * dt
	dy := p.Velocity.Y() * dt
	dz := p.Velocity.Z() * dt

	s.stepY(p, dy)
	s.cliffEdgeCheck(p, dy)
	s.stepX(p, dx)
	s.stepZ(p, dz)
}

func (s *Stepper) stepY(p *Player, dy float32) {
	pos := p.Position
	pos = mgl32.Vec3{pos.X(), pos.Y() + dy, pos.Z()}
	p.SetPosition(pos)

	collided := false
	for _, b := range s.nearby {
		ba := blockAABB(b)
		if !p.Box.IntersectsOnAxis(ba, AxisY) {
			continue
		}
		collided = true
		if dy > 0 {
			newY := ba.Min().Y() - Height
			p.SetPosition(mgl32.Vec3{p.Position.X(), newY, p.Position.Z()})
			p.OnGround = false
		} else if dy < 0 {
			newY := ba.Max().Y()
			p.SetPosition(mgl32.Vec3{p.Position.X(), newY, p.Position.Z()})
			p.OnGround = true
		}
		p.Velocity = mgl32.Vec3{p.Velocity.X(), 0, p.Velocity.Z()}
		break
	}
	if !collided && dy < 0 {
		p.OnGround = false
	}
}

// cliffEdgeCheck clears OnGround when the player walked past the edge of
// its supporting block: only runs when the Y step itself produced no
// vertical motion, and only ever clears (never sets) onGround, matching
// the "X/Z collision never adjusts onGround" invariant by keeping this
// check strictly within the Y/cliff phase.
func (s *Stepper) cliffEdgeCheck(p *Player, dy float32) {
	if !p.OnGround || dy != 0 {
		return
	}
	for _, b := range s.nearby {
		top := float32(b.Y) + 0.5
		below := p.Position.Y() - top
		if below < 0 || below > GroundThreshold {
			continue
		}
		blockMinX, blockMaxX := float32(b.X)-0.5, float32(b.X)+0.5
		blockMinZ, blockMaxZ := float32(b.Z)-0.5, float32(b.Z)+0.5
		xzOverlap := overlap(p.Box.Min().X(), p.Box.Max().X(), blockMinX, blockMaxX)
		zOverlap := overlap(p.Box.Min().Z(), p.Box.Max().Z(), blockMinZ, blockMaxZ)
		if xzOverlap > MinXZOverlap && zOverlap > MinXZOverlap {
			return
		}
	}
	p.OnGround = false
}

func (s *Stepper) stepX(p *Player, dx float32) {
	pos := p.Position
	pos = mgl32.Vec3{pos.X() + dx, pos.Y(), pos.Z()}
	p.SetPosition(pos)

	for _, b := range s.nearby {
		ba := blockAABB(b)
		if !p.Box.IntersectsOnAxis(ba, AxisX) {
			continue
		}
		var newX float32
		if dx > 0 {
			newX = ba.Min().X() - Width/2 - CollisionMargin
		} else {
			newX = ba.Max().X() + Width/2 + CollisionMargin
		}
		p.SetPosition(mgl32.Vec3{newX, p.Position.Y(), p.Position.Z()})
		p.Velocity = mgl32.Vec3{0, p.Velocity.Y(), p.Velocity.Z()}
		break
	}
}

func (s *Stepper) stepZ(p *Player, dz float32) {
	pos := p.Position
	pos = mgl32.Vec3{pos.X(), pos.Y(), pos.Z() + dz}
	p.SetPosition(pos)

	for _, b := range s.nearby {
		ba := blockAABB(b)
		if !p.Box.IntersectsOnAxis(ba, AxisZ) {
			continue
		}
		var newZ float32
		if dz > 0 {
			newZ = ba.Min().Z() - Width/2 - CollisionMargin
		} else {
			newZ = ba.Max().Z() + Width/2 + CollisionMargin
		}
		p.SetPosition(mgl32.Vec3{p.Position.X(), p.Position.Y(), newZ})
		p.Velocity = mgl32.Vec3{p.Velocity.X(), p.Velocity.Y(), 0}
		break
	}
}
