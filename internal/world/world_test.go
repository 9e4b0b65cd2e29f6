package world

import (
	"testing"
	"time"
)

// forceLoadSync is for tests that need a chunk resident and Generated
// before they go on: it queues the chunk on the async worker pool via
// StartLoad, then polls ProcessPending until the chunk reaches Generated,
// failing the test after two seconds.
func forceLoadSync(t *testing.T, w *World, coord ChunkCoord) *Chunk {
	t.Helper()
	w.manager.StartLoad(coord)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		w.ProcessPending()
		if c, ok := w.manager.Get(coord); ok && c.State() >= Generated {
			return c
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("chunk %v never reached Generated", coord)
	return nil
}

func newTestWorld(t *testing.T) *World {
	t.Helper()
	w := NewWorld(t.TempDir(), NewFlatGenerator(0, false), NewRadiusLoadPolicy(4, 8, 64), Air, DefaultAtlasGrid)
	t.Cleanup(w.Shutdown)
	return w
}

func TestWorldAddBlockThenGetBlockTypeRoundTrips(t *testing.T) {
	w := newTestWorld(t)
	coord := ChunkCoord{X: 0, Z: 0}
	forceLoadSync(t, w, coord)

	pos := BlockPos{X: 3, Y: 10, Z: 3}
	w.AddBlock(pos, BlockType(5))

	got, ok := w.GetBlockType(pos)
	if !ok || got != 5 {
		t.Fatalf("GetBlockType = (%v, %v), want (5, true)", got, ok)
	}
}

func TestWorldRemoveBlockThenGetBlockTypeIsNone(t *testing.T) {
	w := newTestWorld(t)
	coord := ChunkCoord{X: 0, Z: 0}
	forceLoadSync(t, w, coord)

	pos := BlockPos{X: 3, Y: 10, Z: 3}
	w.AddBlock(pos, BlockType(5))
	if !w.RemoveBlock(pos) {
		t.Fatal("RemoveBlock returned false for a present block")
	}
	if _, ok := w.GetBlockType(pos); ok {
		t.Fatal("block still reported present after removal")
	}
}

func TestWorldAddBlockAtBoundaryInvalidatesNeighbors(t *testing.T) {
	w := newTestWorld(t)
	center := ChunkCoord{X: 0, Z: 0}
	forceLoadSync(t, w, center)
	forceLoadSync(t, w, ChunkCoord{X: -1, Z: 0})
	forceLoadSync(t, w, ChunkCoord{X: -1, Z: -1})
	forceLoadSync(t, w, ChunkCoord{X: 0, Z: -1})

	for _, coord := range []ChunkCoord{center, {-1, 0}, {-1, -1}, {0, -1}} {
		c, _ := w.manager.Get(coord)
		c.SetState(Meshed)
		c.Mesh = &ChunkMesh{}
	}

	// local (0,0) of the center chunk is the shared corner of all four.
	w.AddBlock(BlockPos{X: 0, Y: 5, Z: 0}, BlockType(1))

	for _, coord := range []ChunkCoord{{-1, 0}, {-1, -1}, {0, -1}} {
		c, _ := w.manager.Get(coord)
		if c.State() != Generated {
			t.Errorf("neighbor %v not invalidated: state=%v", coord, c.State())
		}
	}
}

func TestWorldHasBlockUnknownChunkIsSolid(t *testing.T) {
	w := newTestWorld(t)
	if !w.HasBlock(BlockPos{X: 1000, Y: 0, Z: 1000}) {
		t.Fatal("HasBlock for an unloaded chunk should report true (unknown = solid)")
	}
}

func TestWorldUpdateChunksIsIdempotentForSamePlayerPosition(t *testing.T) {
	w := newTestWorld(t)
	w.UpdateChunks(0, 0)
	time.Sleep(50 * time.Millisecond)
	for i := 0; i < 20; i++ {
		w.ProcessPending()
		time.Sleep(time.Millisecond)
	}
	firstLoaded := w.manager.Loaded()

	w.UpdateChunks(0, 0)
	for i := 0; i < 20; i++ {
		w.ProcessPending()
		time.Sleep(time.Millisecond)
	}
	secondLoaded := w.manager.Loaded()

	if len(firstLoaded) != len(secondLoaded) {
		t.Fatalf("second UpdateChunks call changed loaded set size: %d vs %d", len(firstLoaded), len(secondLoaded))
	}
}

func TestWorldChunksChangedReportsAndClears(t *testing.T) {
	w := newTestWorld(t)

	if w.ChunksChanged() {
		t.Fatal("ChunksChanged should start false on an empty world")
	}

	forceLoadSync(t, w, ChunkCoord{X: 0, Z: 0})

	if !w.ChunksChanged() {
		t.Fatal("ChunksChanged should report true after a chunk became resident")
	}
	if w.ChunksChanged() {
		t.Fatal("ChunksChanged should clear itself after being consumed")
	}
}

func TestWorldPlaceholderContinuity(t *testing.T) {
	w := newTestWorld(t)
	coord := ChunkCoord{X: 5, Z: 5}

	w.manager.StartLoad(coord)
	placeholder, ok := w.manager.Get(coord)
	if !ok {
		t.Fatal("placeholder not inserted")
	}

	// Re-entrant residency update for the same coordinate must not submit
	// a second job nor replace the placeholder.
	w.manager.StartLoad(coord)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		w.ProcessPending()
		if c, ok := w.manager.Get(coord); ok && c.State() >= Generated {
			break
		}
		time.Sleep(time.Millisecond)
	}

	final, ok := w.manager.Get(coord)
	if !ok {
		t.Fatal("chunk missing after completion")
	}
	if final != placeholder {
		t.Fatal("chunk object identity changed between placeholder insertion and completion")
	}
}
