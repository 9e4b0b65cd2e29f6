package world

import "testing"

func TestChunkAddGetRemoveLocal(t *testing.T) {
	c := NewChunk(ChunkCoord{X: 0, Z: 0})
	c.AddBlockLocal(3, 5, 7, BlockType(2))

	d, ok := c.GetBlockLocal(3, 5, 7)
	if !ok || d.Type != 2 {
		t.Fatalf("GetBlockLocal = (%v, %v), want (2, true)", d, ok)
	}

	if !c.RemoveBlockLocal(3, 5, 7) {
		t.Fatal("RemoveBlockLocal returned false for a present block")
	}
	if _, ok := c.GetBlockLocal(3, 5, 7); ok {
		t.Fatal("block still present after removal")
	}
	if c.RemoveBlockLocal(3, 5, 7) {
		t.Fatal("RemoveBlockLocal returned true for an absent block")
	}
}

func TestChunkHasBlockAtLocalBoundsChecks(t *testing.T) {
	c := NewChunk(ChunkCoord{X: 0, Z: 0})
	c.AddBlockLocal(0, 0, 0, BlockType(1))
	if c.HasBlockAtLocal(-1, 0, 0) {
		t.Fatal("expected false for out-of-bounds local x")
	}
	if c.HasBlockAtLocal(0, 0, 16) {
		t.Fatal("expected false for out-of-bounds local z")
	}
	if !c.HasBlockAtLocal(0, 0, 0) {
		t.Fatal("expected true for a present in-bounds block")
	}
}

func TestChunkAddBlockWorldUsesFloorMod(t *testing.T) {
	coord := ChunkCoord{X: -1, Z: -1}
	c := NewChunk(coord)
	// world (-1,-1) is local (15, *, 15) inside chunk (-1,-1).
	c.AddBlockWorld(BlockPos{X: -1, Y: 4, Z: -1}, BlockType(9))
	d, ok := c.GetBlockLocal(15, 4, 15)
	if !ok || d.Type != 9 {
		t.Fatalf("expected block at local (15,4,15), got (%v, %v)", d, ok)
	}
}

func TestChunkGeneratedInvariantAllPositionsInBounds(t *testing.T) {
	c := NewChunk(ChunkCoord{X: 2, Z: -3})
	gen := NewFlatGenerator(0, true)
	gen.Generate(c, BlockType(1))
	c.SetState(Generated)

	for _, p := range c.GetBlockPosSnapshot() {
		if p.X < 0 || p.X >= ChunkSize || p.Z < 0 || p.Z >= ChunkSize {
			t.Fatalf("position %v out of chunk-local bounds", p)
		}
	}
}

func TestChunkSnapshotIsACopy(t *testing.T) {
	c := NewChunk(ChunkCoord{X: 0, Z: 0})
	c.AddBlockLocal(1, 1, 1, BlockType(1))
	snap := c.GetBlockPosSnapshot()
	c.AddBlockLocal(2, 2, 2, BlockType(1))
	if len(snap) != 1 {
		t.Fatalf("snapshot mutated by later write: len=%d, want 1", len(snap))
	}
}

func TestChunkInvalidateMeshRegressesState(t *testing.T) {
	c := NewChunk(ChunkCoord{X: 0, Z: 0})
	c.SetState(Generated)
	c.Mesh = &ChunkMesh{}
	c.SetState(Meshed)

	c.InvalidateMesh()
	if c.State() != Generated {
		t.Fatalf("state after invalidate = %v, want Generated", c.State())
	}
	if c.Mesh != nil {
		t.Fatal("mesh should be cleared after invalidation")
	}
}
