package meshing

import "voxelcore/internal/profiling"

// Vertex is one corner of an emitted triangle: world-space position,
// face normal, and atlas-tile UV.
type Vertex struct {
	X, Y, Z    float32
	NX, NY, NZ float32
	U, V       float32
}

// ChunkGeometry is the unified per-chunk triangle list produced by
// BuildChunkGeometry: two triangles (six vertices, no index buffer) per
// unit quad, already expressed in world coordinates.
type ChunkGeometry struct {
	Vertices []Vertex
}

// tileUV returns the atlas-tile UV rectangle for a block type in a
// gridSize x gridSize atlas, addressed (blockType mod gridSize, blockType
// div gridSize) per the data-model spec.
func tileUV(blockType int32, gridSize int) (u0, v0, u1, v1 float32) {
	if gridSize <= 0 {
		gridSize = 1
	}
	col := int(blockType) % gridSize
	row := int(blockType) / gridSize
	tile := 1.0 / float32(gridSize)
	u0 = float32(col) * tile
	v0 = float32(row) * tile
	return u0, v0, u0 + tile, v0 + tile
}

// BuildChunkGeometry expands merged rectangles back into individual unit
// quads, one per covered cell, each carrying the full tile UV. This is
// what keeps the texture atlas safe from bleeding: a merged 3x3 rectangle
// still emits 9 quads, not one quad with a repeated UV. chunkOriginX/Z is
// the chunk's world-space block origin (ChunkCoord.WorldOrigin()). No
// offset is applied beyond that origin: each block index is used as the
// block's world-space center (block n is centered at n, bounds
// [n-0.5, n+0.5]), and emitUnitQuad places the face corners at ±0.5.
func BuildChunkGeometry(rects []MergedRect, atlasGrid int, chunkOriginX, chunkOriginZ int) *ChunkGeometry {
	defer profiling.Track("meshing.BuildChunkGeometry")()

	geo := &ChunkGeometry{}
	for _, r := range rects {
		u0, v0, u1, v1 := tileUV(r.BlockType, atlasGrid)
		for i := 0; i < r.Width; i++ {
			for j := 0; j < r.Height; j++ {
				x, y, z := subQuadBlock(r, i, j)
				emitUnitQuad(geo, r.Direction, chunkOriginX+x, y, chunkOriginZ+z, u0, v0, u1, v1)
			}
		}
	}
	return geo
}

// subQuadBlock maps a (i,j) offset within a merged rectangle back to the
// chunk-local block index it covers, inverting the Width/Height axis
// assignment made in BuildGreedyMesh for each direction group.
func subQuadBlock(r MergedRect, i, j int) (x, y, z int) {
	switch r.Direction {
	case Front, Back:
		// Width along X, height along Y, Z fixed.
		return r.Origin.X + i, r.Origin.Y + j, r.Origin.Z
	case Left, Right:
		// Width along Z, height along Y, X fixed.
		return r.Origin.X, r.Origin.Y + j, r.Origin.Z + i
	default: // Top, Bottom
		// Width along X, height (depth) along Z, Y fixed.
		return r.Origin.X + i, r.Origin.Y, r.Origin.Z + j
	}
}

// emitUnitQuad appends one block face as two CCW (outward-facing)
// triangles. x, y, z is the block's world-space integer center.
func emitUnitQuad(geo *ChunkGeometry, dir Direction, x, y, z int, u0, v0, u1, v1 float32) {
	fx, fy, fz := float32(x), float32(y), float32(z)
	nx, ny, nz := dir.Normal()
	n := [3]float32{float32(nx), float32(ny), float32(nz)}

	var corners [4][3]float32
	switch dir {
	case Right: // +X
		corners = [4][3]float32{
			{fx + 0.5, fy - 0.5, fz - 0.5},
			{fx + 0.5, fy + 0.5, fz - 0.5},
			{fx + 0.5, fy + 0.5, fz + 0.5},
			{fx + 0.5, fy - 0.5, fz + 0.5},
		}
	case Left: // -X
		corners = [4][3]float32{
			{fx - 0.5, fy - 0.5, fz - 0.5},
			{fx - 0.5, fy - 0.5, fz + 0.5},
			{fx - 0.5, fy + 0.5, fz + 0.5},
			{fx - 0.5, fy + 0.5, fz - 0.5},
		}
	case Top: // +Y
		corners = [4][3]float32{
			{fx - 0.5, fy + 0.5, fz - 0.5},
			{fx - 0.5, fy + 0.5, fz + 0.5},
			{fx + 0.5, fy + 0.5, fz + 0.5},
			{fx + 0.5, fy + 0.5, fz - 0.5},
		}
	case Bottom: // -Y
		corners = [4][3]float32{
			{fx - 0.5, fy - 0.5, fz - 0.5},
			{fx + 0.5, fy - 0.5, fz - 0.5},
			{fx + 0.5, fy - 0.5, fz + 0.5},
			{fx - 0.5, fy - 0.5, fz + 0.5},
		}
	case Front: // +Z
		corners = [4][3]float32{
			{fx - 0.5, fy - 0.5, fz + 0.5},
			{fx + 0.5, fy - 0.5, fz + 0.5},
			{fx + 0.5, fy + 0.5, fz + 0.5},
			{fx - 0.5, fy + 0.5, fz + 0.5},
		}
	case Back: // -Z
		corners = [4][3]float32{
			{fx - 0.5, fy - 0.5, fz - 0.5},
			{fx - 0.5, fy + 0.5, fz - 0.5},
			{fx + 0.5, fy + 0.5, fz - 0.5},
			{fx + 0.5, fy - 0.5, fz - 0.5},
		}
	}

	uv := [4][2]float32{{u0, v0}, {u1, v0}, {u1, v1}, {u0, v1}}

	push := func(idx int) {
		c := corners[idx]
		t := uv[idx]
		geo.Vertices = append(geo.Vertices, Vertex{
			X: c[0], Y: c[1], Z: c[2],
			NX: n[0], NY: n[1], NZ: n[2],
			U: t[0], V: t[1],
		})
	}

	// Triangle 1: 0,1,2 ; Triangle 2: 2,3,0
	push(0)
	push(1)
	push(2)
	push(2)
	push(3)
	push(0)
}
