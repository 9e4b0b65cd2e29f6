package physics

import (
	"testing"
	"time"

	"voxelcore/internal/world"
)

// newTestWorld returns a world with auto-created ground disabled, so
// tests can place exactly the blocks a scenario needs.
func newTestWorld(t *testing.T) *world.World {
	t.Helper()
	w := world.NewWorld(t.TempDir(), world.NewFlatGenerator(0, false), world.NewRadiusLoadPolicy(4, 8, 64), world.Air, world.DefaultAtlasGrid)
	t.Cleanup(w.Shutdown)
	return w
}

// placeBlock retries AddBlock against the async chunk loader until the
// owning chunk is resident and the write actually lands, since AddBlock
// is a silent no-op before the chunk reaches Generated.
func placeBlock(t *testing.T, w *world.World, pos world.BlockPos, bt world.BlockType) {
	t.Helper()
	w.UpdateChunks(float64(pos.X), float64(pos.Z))
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		w.ProcessPending()
		w.AddBlock(pos, bt)
		if got, ok := w.GetBlockType(pos); ok && got == bt {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("block at %v never landed", pos)
}

// placeGround fills every (x, z) in [minX,maxX] x [minZ,maxZ] at y=groundY
// with the given block type.
func placeGround(t *testing.T, w *world.World, minX, maxX, minZ, maxZ, groundY int, bt world.BlockType) {
	t.Helper()
	for x := minX; x <= maxX; x++ {
		for z := minZ; z <= maxZ; z++ {
			placeBlock(t, w, world.BlockPos{X: x, Y: groundY, Z: z}, bt)
		}
	}
}
