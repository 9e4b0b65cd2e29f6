package world

import "math"

// BlockPos is the integer address of a single unit block in world space.
// It is immutable by convention: callers construct a new value rather than
// mutating one in place, matching the teacher's ChunkCoord/BlockPos split.
type BlockPos struct {
	X, Y, Z int
}

// BlockPosFromWorld floors each coordinate of a world-space point onto the
// integer storage grid. Blocks are centered on integer coordinates (bounds
// [x-0.5, x+0.5]), so the result is not always the block whose box
// contains the point: 0.7 floors to 0 but lies inside block 1's box.
func BlockPosFromWorld(x, y, z float64) BlockPos {
	return BlockPos{
		X: int(math.Floor(x)),
		Y: int(math.Floor(y)),
		Z: int(math.Floor(z)),
	}
}

// Add returns the block position offset by (dx, dy, dz).
func (p BlockPos) Add(dx, dy, dz int) BlockPos {
	return BlockPos{p.X + dx, p.Y + dy, p.Z + dz}
}

// floorDiv performs integer division that rounds toward negative infinity,
// unlike Go's truncating /.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod is the arithmetic floor-mod: the result always has the sign of
// b (here always positive, since b is always CHUNK_SIZE=16) regardless of
// the sign of a. Go's % is sign-naive and returns a negative remainder for
// negative a, which is the latent bug spec.md §9 calls out; every
// world<->local conversion in this package must go through this helper
// instead of the raw % operator.
func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
