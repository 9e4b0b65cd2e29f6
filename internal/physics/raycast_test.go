package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"voxelcore/internal/world"
)

func TestRaycastStraightHitMatchesScenario(t *testing.T) {
	w := newTestWorld(t)
	placeBlock(t, w, world.BlockPos{X: 0, Y: 0, Z: 5}, world.BlockType(1))

	result := Raycast(w, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 1})

	if !result.Hit {
		t.Fatal("expected a hit")
	}
	if result.Block != (world.BlockPos{X: 0, Y: 0, Z: 5}) {
		t.Fatalf("Block = %v, want (0,0,5)", result.Block)
	}
	if result.Normal != (mgl32.Vec3{0, 0, -1}) {
		t.Fatalf("Normal = %v, want (0,0,-1)", result.Normal)
	}
	if result.Placement != (world.BlockPos{X: 0, Y: 0, Z: 4}) {
		t.Fatalf("Placement = %v, want (0,0,4)", result.Placement)
	}
}

func TestRaycastMissReturnsNoHit(t *testing.T) {
	w := newTestWorld(t)
	placeBlock(t, w, world.BlockPos{X: 0, Y: 0, Z: 0}, world.BlockType(1))
	// Remove it again so the chunk is loaded but genuinely empty along
	// the ray's path; the block was only needed to force the chunk
	// resident.
	w.RemoveBlock(world.BlockPos{X: 0, Y: 0, Z: 0})

	result := Raycast(w, mgl32.Vec3{0, 5, 0}, mgl32.Vec3{0, 1, 0})
	if result.Hit {
		t.Fatalf("expected no hit, got %+v", result)
	}
}

func TestRaycastHitsNearestBlockAlongRay(t *testing.T) {
	w := newTestWorld(t)
	placeBlock(t, w, world.BlockPos{X: 0, Y: 0, Z: 3}, world.BlockType(1))
	placeBlock(t, w, world.BlockPos{X: 0, Y: 0, Z: 7}, world.BlockType(1))

	result := Raycast(w, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 1})
	if !result.Hit {
		t.Fatal("expected a hit")
	}
	if result.Block != (world.BlockPos{X: 0, Y: 0, Z: 3}) {
		t.Fatalf("Block = %v, want the nearer block (0,0,3)", result.Block)
	}
}

func TestRaycastOutOfRangeMisses(t *testing.T) {
	w := newTestWorld(t)
	placeBlock(t, w, world.BlockPos{X: 0, Y: 0, Z: 20}, world.BlockType(1))

	result := Raycast(w, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 1})
	if result.Hit {
		t.Fatalf("block beyond raycastMaxRange should not be hit, got %+v", result)
	}
}
