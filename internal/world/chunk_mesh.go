package world

import "voxelcore/internal/meshing"

// ChunkMesh is the owning Chunk's unified renderable geometry. It is
// rebuilt on the render thread whenever the Chunk is Generated but not
// yet Meshed; clearing it (on invalidation) releases the cached geometry
// so the next rebuild pass regenerates it.
type ChunkMesh struct {
	Geometry *meshing.ChunkGeometry
	// Bounds is a coarse Y-range bounding volume used for frustum
	// culling; horizontal extent is always exactly one ChunkSize square.
	BoundsMinY, BoundsMaxY float32
}
