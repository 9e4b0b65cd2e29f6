package world

import (
	"sync"

	"voxelcore/internal/profiling"
)

// ChunkState is the lifecycle stage of a Chunk.
type ChunkState int

const (
	Empty ChunkState = iota
	Generated
	Meshed
	Active
)

// Chunk owns a 16×16×∞ region of block storage keyed by local BlockPos. Its
// object identity is stable for the whole residency lifetime: the manager
// never swaps the pointer stored in `loaded`, only mutates what it points
// to, so a worker populating a placeholder and the main thread observing it
// later are looking at the same object (see ChunkManager).
type Chunk struct {
	Coord ChunkCoord

	mu     sync.RWMutex
	blocks map[BlockPos]BlockData
	state  ChunkState

	Mesh *ChunkMesh
}

// NewChunk returns an Empty placeholder chunk for the given coordinate.
// This is what the manager inserts into `loaded` before a worker populates
// it.
func NewChunk(coord ChunkCoord) *Chunk {
	return &Chunk{
		Coord:  coord,
		blocks: make(map[BlockPos]BlockData),
		state:  Empty,
	}
}

// State returns the chunk's current lifecycle stage.
func (c *Chunk) State() ChunkState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// SetState transitions the chunk's lifecycle stage. Transitioning away from
// Meshed (e.g. back to Generated on invalidation) also drops the cached
// mesh, since a Meshed state implies mesh presence.
func (c *Chunk) SetState(s ChunkState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s != Meshed && s != Active {
		c.Mesh = nil
	}
	c.state = s
}

// InvalidateMesh drops the cached mesh and regresses Meshed/Active back to
// Generated, so World.RebuildDirtyMeshes picks it up again.
func (c *Chunk) InvalidateMesh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Meshed || c.state == Active {
		c.state = Generated
	}
	c.Mesh = nil
}

// AddBlockLocal inserts a block at chunk-local (lx, ly, lz). wy (ly here)
// is unbounded; duplicates silently overwrite.
func (c *Chunk) AddBlockLocal(lx, ly, lz int, t BlockType) {
	defer profiling.Track("world.Chunk.AddBlockLocal")()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blocks[BlockPos{lx, ly, lz}] = BlockData{Type: t}
}

// RemoveBlockLocal removes a block at chunk-local coordinates, returning
// whether one was present.
func (c *Chunk) RemoveBlockLocal(lx, ly, lz int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := BlockPos{lx, ly, lz}
	if _, ok := c.blocks[p]; !ok {
		return false
	}
	delete(c.blocks, p)
	return true
}

// HasBlockAtLocal bounds-checks lx, lz into [0, ChunkSize) before looking up.
func (c *Chunk) HasBlockAtLocal(lx, ly, lz int) bool {
	if lx < 0 || lx >= ChunkSize || lz < 0 || lz >= ChunkSize {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.blocks[BlockPos{lx, ly, lz}]
	return ok
}

// GetBlockLocal returns the block at chunk-local coordinates, if present.
func (c *Chunk) GetBlockLocal(lx, ly, lz int) (BlockData, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.blocks[BlockPos{lx, ly, lz}]
	return d, ok
}

// AddBlockWorld converts a world-space block position to chunk-local
// coordinates via arithmetic floor-mod (never the sign-naive % operator,
// which misplaces negative-coordinate blocks) and inserts it.
func (c *Chunk) AddBlockWorld(p BlockPos, t BlockType) {
	lx, ly, lz := c.Coord.Local(p)
	c.AddBlockLocal(lx, ly, lz, t)
}

// GetBlockPosSnapshot returns a copy of the chunk's occupied local
// positions. Copying the key set is required because generation workers
// may be inserting into the same map concurrently with a reader — the
// snapshot must not observe a torn iteration.
func (c *Chunk) GetBlockPosSnapshot() []BlockPos {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]BlockPos, 0, len(c.blocks))
	for p := range c.blocks {
		out = append(out, p)
	}
	return out
}

// Len reports the number of stored blocks.
func (c *Chunk) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.blocks)
}

// ForEach visits every stored (BlockPos, BlockData) pair under the read
// lock. The callback must not mutate the chunk.
func (c *Chunk) ForEach(fn func(BlockPos, BlockData)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for p, d := range c.blocks {
		fn(p, d)
	}
}
