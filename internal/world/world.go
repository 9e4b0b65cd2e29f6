package world

import (
	"voxelcore/internal/meshing"
	"voxelcore/internal/profiling"
)

// meshBoundsMinY/MaxY is the fixed vertical bounding volume used for
// frustum culling of chunk meshes. Chunks are unbounded vertically in
// storage; this fixed envelope is a documented, unsolved production gap
// (see design notes) rather than a real vertical-extent model.
const (
	meshBoundsMinY = -10
	meshBoundsMaxY = 100
)

// World is the façade over block storage: it owns the ChunkManager and
// exposes block CRUD, physics-facing nearby-block queries, and mesh
// rebuild/aggregation. Nothing outside this package reaches into a Chunk
// directly.
type World struct {
	manager       *ChunkManager
	atlasGridSize int
}

// NewWorld wires a ChunkManager against worldPath, the given generator
// and residency policy, and returns a ready World. atlasGridSize must
// match the embedder's texture atlas (spec default 16).
func NewWorld(worldPath string, generator ChunkGenerator, policy ChunkLoadPolicy, defaultBlockType BlockType, atlasGridSize int) *World {
	serializer := NewChunkSerializer(worldPath)
	manager := NewChunkManager(serializer, generator, policy, defaultBlockType)
	return &World{manager: manager, atlasGridSize: atlasGridSize}
}

// Shutdown stops the background worker pool, waiting up to 5s to drain.
func (w *World) Shutdown() {
	w.manager.Shutdown()
}

// AddBlock inserts a block at a world position. If the owning chunk is
// not loaded/generated, the call is a no-op. Marks the owning chunk's
// mesh dirty and invalidates any boundary/corner-adjacent neighbor's mesh.
func (w *World) AddBlock(pos BlockPos, t BlockType) {
	coord := ChunkCoordFromBlock(pos)
	c, ok := w.manager.Get(coord)
	if !ok || c.State() < Generated {
		return
	}
	c.AddBlockWorld(pos, t)
	c.InvalidateMesh()
	w.invalidateBoundaryNeighbors(coord, pos)
}

// RemoveBlock removes a block at a world position, returning whether one
// was present. Symmetric with AddBlock's mesh invalidation.
func (w *World) RemoveBlock(pos BlockPos) bool {
	coord := ChunkCoordFromBlock(pos)
	c, ok := w.manager.Get(coord)
	if !ok || c.State() < Generated {
		return false
	}
	lx, ly, lz := coord.Local(pos)
	removed := c.RemoveBlockLocal(lx, ly, lz)
	if removed {
		c.InvalidateMesh()
		w.invalidateBoundaryNeighbors(coord, pos)
	}
	return removed
}

// invalidateBoundaryNeighbors invalidates the mesh of every chunk whose
// boundary face (edge or corner) is adjacent to pos's chunk-local (x,z),
// using arithmetic floor-mod so this is correct at negative coordinates.
func (w *World) invalidateBoundaryNeighbors(coord ChunkCoord, pos BlockPos) {
	lx, _, lz := coord.Local(pos)
	atLeftEdge := lx == 0
	atRightEdge := lx == ChunkSize-1
	atFrontEdge := lz == 0
	atBackEdge := lz == ChunkSize-1

	var neighbors []ChunkCoord
	if atLeftEdge {
		neighbors = append(neighbors, ChunkCoord{coord.X - 1, coord.Z})
	}
	if atRightEdge {
		neighbors = append(neighbors, ChunkCoord{coord.X + 1, coord.Z})
	}
	if atFrontEdge {
		neighbors = append(neighbors, ChunkCoord{coord.X, coord.Z - 1})
	}
	if atBackEdge {
		neighbors = append(neighbors, ChunkCoord{coord.X, coord.Z + 1})
	}
	if atLeftEdge && atFrontEdge {
		neighbors = append(neighbors, ChunkCoord{coord.X - 1, coord.Z - 1})
	}
	if atLeftEdge && atBackEdge {
		neighbors = append(neighbors, ChunkCoord{coord.X - 1, coord.Z + 1})
	}
	if atRightEdge && atFrontEdge {
		neighbors = append(neighbors, ChunkCoord{coord.X + 1, coord.Z - 1})
	}
	if atRightEdge && atBackEdge {
		neighbors = append(neighbors, ChunkCoord{coord.X + 1, coord.Z + 1})
	}

	for _, nb := range neighbors {
		w.invalidateChunkMesh(nb)
	}
}

func (w *World) invalidateChunkMesh(coord ChunkCoord) {
	if c, ok := w.manager.Get(coord); ok {
		c.InvalidateMesh()
	}
}

// GetBlockType returns the block type at pos and whether one is present.
// Absent chunk or absent block both report false ("NONE").
func (w *World) GetBlockType(pos BlockPos) (BlockType, bool) {
	coord := ChunkCoordFromBlock(pos)
	c, ok := w.manager.Get(coord)
	if !ok {
		return Air, false
	}
	lx, ly, lz := coord.Local(pos)
	d, found := c.GetBlockLocal(lx, ly, lz)
	if !found {
		return Air, false
	}
	return d.Type, true
}

// HasBlock reports whether a block occupies pos. When the owning chunk
// is not loaded, this intentionally returns true: an unknown neighbor is
// treated as solid so faces at the unloaded edge of the resident region
// are culled instead of flickering into view, and the neighbor's mesh is
// invalidated once it actually loads (see ChunkManager.DrainPending).
func (w *World) HasBlock(pos BlockPos) bool {
	coord := ChunkCoordFromBlock(pos)
	c, ok := w.manager.Get(coord)
	if !ok {
		return true
	}
	lx, ly, lz := coord.Local(pos)
	return c.HasBlockAtLocal(lx, ly, lz)
}

// GetNearbyBlockPositions snapshots every occupied world-space block
// position within chunkRadius (in chunks) of the chunk containing (x, z).
// Used by the physics stepper to build its per-step collision cache.
func (w *World) GetNearbyBlockPositions(x, z float64, chunkRadius int) []BlockPos {
	defer profiling.Track("world.World.GetNearbyBlockPositions")()

	center := ChunkCoordFromBlock(BlockPosFromWorld(x, 0, z))
	var out []BlockPos
	for dz := -chunkRadius; dz <= chunkRadius; dz++ {
		for dx := -chunkRadius; dx <= chunkRadius; dx++ {
			coord := ChunkCoord{X: center.X + dx, Z: center.Z + dz}
			c, ok := w.manager.Get(coord)
			if !ok || c.State() < Generated {
				continue
			}
			origin := coord.WorldOrigin()
			for _, p := range c.GetBlockPosSnapshot() {
				out = append(out, BlockPos{X: origin.X + p.X, Y: p.Y, Z: origin.Z + p.Z})
			}
		}
	}
	return out
}

// UpdateChunks delegates to the ChunkManager's boundary-gated residency
// pass. The caller (EngineLoop) is responsible for invoking this only at
// the tick rate, not every frame.
func (w *World) UpdateChunks(x, z float64) {
	w.manager.UpdateResidency(x, z)
}

// ProcessPending drains newly-completed chunks from the background
// worker pool. Unlike UpdateChunks, this must run every frame so newly
// loaded chunks become visible without waiting for the next tick.
func (w *World) ProcessPending() {
	w.manager.DrainPending(w.invalidateChunkMesh)
}

// ChunksChanged reports and clears whether any chunk became resident or
// was evicted since the last call — consumed by the renderer to know
// when its aggregated mesh list needs rebuilding.
func (w *World) ChunksChanged() bool {
	return w.manager.ConsumeChunksChanged()
}

// RebuildDirtyMeshes rebuilds the unified mesh of every loaded, Generated,
// not-yet-Meshed chunk: builds the per-block visibility mask from 6-way
// neighbor queries, runs the greedy mesher, emits atlas-safe geometry,
// and installs it before transitioning the chunk to Meshed.
func (w *World) RebuildDirtyMeshes() {
	defer profiling.Track("world.World.RebuildDirtyMeshes")()

	for _, coord := range w.manager.Loaded() {
		c, ok := w.manager.Get(coord)
		if !ok || c.State() != Generated {
			continue
		}
		w.rebuildChunkMesh(c)
	}
}

// ChunkMeshEntry pairs a loaded chunk's mesh with its coordinate and
// world-space origin, so a renderer can frustum-cull without reaching
// into chunk internals.
type ChunkMeshEntry struct {
	Coord   ChunkCoord
	OriginX int
	OriginZ int
	Mesh    *ChunkMesh
}

// MeshedChunks returns every loaded, render-ready (state >= Meshed) chunk's
// mesh entry.
func (w *World) MeshedChunks() []ChunkMeshEntry {
	var out []ChunkMeshEntry
	for _, coord := range w.manager.Loaded() {
		c, ok := w.manager.Get(coord)
		if !ok || c.State() < Meshed || c.Mesh == nil {
			continue
		}
		origin := coord.WorldOrigin()
		out = append(out, ChunkMeshEntry{Coord: coord, OriginX: origin.X, OriginZ: origin.Z, Mesh: c.Mesh})
	}
	return out
}

func (w *World) rebuildChunkMesh(c *Chunk) {
	positions := c.GetBlockPosSnapshot()
	if len(positions) == 0 {
		c.SetState(Meshed)
		c.Mesh = &ChunkMesh{BoundsMinY: meshBoundsMinY, BoundsMaxY: meshBoundsMaxY}
		return
	}

	origin := c.Coord.WorldOrigin()
	blocks := make(map[meshing.Pos]int32, len(positions))
	vis := make(map[meshing.Pos]meshing.VisMask, len(positions))
	minY, maxY := positions[0].Y, positions[0].Y

	for _, p := range positions {
		d, ok := c.GetBlockLocal(p.X, p.Y, p.Z)
		if !ok {
			continue
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
		mp := meshing.Pos{X: p.X, Y: p.Y, Z: p.Z}
		blocks[mp] = int32(d.Type)

		worldPos := BlockPos{X: origin.X + p.X, Y: p.Y, Z: origin.Z + p.Z}
		var mask meshing.VisMask
		mask[meshing.Front] = !w.HasBlock(worldPos.Add(0, 0, 1))
		mask[meshing.Back] = !w.HasBlock(worldPos.Add(0, 0, -1))
		mask[meshing.Left] = !w.HasBlock(worldPos.Add(-1, 0, 0))
		mask[meshing.Right] = !w.HasBlock(worldPos.Add(1, 0, 0))
		mask[meshing.Top] = !w.HasBlock(worldPos.Add(0, 1, 0))
		mask[meshing.Bottom] = !w.HasBlock(worldPos.Add(0, -1, 0))
		vis[mp] = mask
	}

	rects := meshing.BuildGreedyMesh(blocks, vis, ChunkSize, minY, maxY)
	geometry := meshing.BuildChunkGeometry(rects, w.atlasGridSize, origin.X, origin.Z)

	c.Mesh = &ChunkMesh{Geometry: geometry, BoundsMinY: meshBoundsMinY, BoundsMaxY: meshBoundsMaxY}
	c.SetState(Meshed)
}
