package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"voxelcore/internal/profiling"
	"voxelcore/internal/world"
)

const (
	raycastStep     = 0.05
	raycastMaxRange = 10.0
)

// RaycastResult is the outcome of a block-selection raycast.
type RaycastResult struct {
	Hit       bool
	Block     world.BlockPos
	Normal    mgl32.Vec3
	Placement world.BlockPos
	Distance  float32
}

// Raycast marches from origin along direction (need not be normalized) in
// fixed raycastStep increments up to raycastMaxRange, testing each sample
// point against World.HasBlock. On first containment it returns the
// struck block and the face normal — the axis of maximum absolute
// magnitude of (sample - block_center), with that component's sign. This
// is intentionally a short stepped march rather than a general voxel
// traversal; the step is smaller than a block so grazing hits at shallow
// angles are still caught.
func Raycast(w *world.World, origin, direction mgl32.Vec3) RaycastResult {
	defer profiling.Track("physics.Raycast")()

	dir := direction.Normalize()
	steps := int(raycastMaxRange / raycastStep)

	for i := 0; i <= steps; i++ {
		dist := float32(i) * raycastStep
		sample := origin.Add(dir.Mul(dist))
		bp := centeredBlockAt(sample)
		if !w.HasBlock(bp) {
			continue
		}

		normal := faceNormal(sample, bp)
		placement := bp.Add(int(normal.X()), int(normal.Y()), int(normal.Z()))
		return RaycastResult{
			Hit:       true,
			Block:     bp,
			Normal:    normal,
			Placement: placement,
			Distance:  dist,
		}
	}
	return RaycastResult{}
}

// faceNormal picks the axis of maximum absolute displacement of sample
// from the struck block's center, with the sign of that component. Ties
// resolve by the fixed comparison order X, then Y, then Z.
func faceNormal(sample mgl32.Vec3, block world.BlockPos) mgl32.Vec3 {
	dx := sample.X() - float32(block.X)
	dy := sample.Y() - float32(block.Y)
	dz := sample.Z() - float32(block.Z)

	ax, ay, az := float32(math.Abs(float64(dx))), float32(math.Abs(float64(dy))), float32(math.Abs(float64(dz)))

	if ax >= ay && ax >= az {
		return mgl32.Vec3{sign(dx), 0, 0}
	}
	if ay >= az {
		return mgl32.Vec3{0, sign(dy), 0}
	}
	return mgl32.Vec3{0, 0, sign(dz)}
}

func sign(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}

// centeredBlockAt returns the BlockPos whose physical box (center at the
// integer coordinate, half-extent 0.5) contains the given world point.
// This is deliberately not world.BlockPosFromWorld's plain floor: that
// rule indexes the storage grid from a continuous point, while block
// collision geometry is centered on the integer coordinate, so the
// occupied range for block n is [n-0.5, n+0.5) rather than [n, n+1).
func centeredBlockAt(p mgl32.Vec3) world.BlockPos {
	return world.BlockPos{
		X: int(math.Floor(float64(p.X()) + 0.5)),
		Y: int(math.Floor(float64(p.Y()) + 0.5)),
		Z: int(math.Floor(float64(p.Z()) + 0.5)),
	}
}
