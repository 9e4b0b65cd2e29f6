package world

import "testing"

func TestFlatGeneratorAutoCreateGroundFillsColumns(t *testing.T) {
	c := NewChunk(ChunkCoord{X: 0, Z: 0})
	gen := NewFlatGenerator(42, true)
	gen.Generate(c, BlockType(3))

	if c.Len() == 0 {
		t.Fatal("expected blocks after generation with auto_create_ground enabled")
	}
	for lx := 0; lx < ChunkSize; lx++ {
		for lz := 0; lz < ChunkSize; lz++ {
			if !c.HasBlockAtLocal(lx, 0, lz) {
				t.Fatalf("expected a ground block at local (%d,0,%d)", lx, lz)
			}
		}
	}
}

func TestFlatGeneratorDisabledProducesEmptyChunk(t *testing.T) {
	c := NewChunk(ChunkCoord{X: 0, Z: 0})
	gen := NewFlatGenerator(42, false)
	gen.Generate(c, BlockType(3))
	if c.Len() != 0 {
		t.Fatalf("expected empty chunk, got %d blocks", c.Len())
	}
}

func TestRadiusLoadPolicyBoundaries(t *testing.T) {
	p := NewRadiusLoadPolicy(2, 4, 100)
	if !p.ShouldLoadToMemory(2, 0, 0, 0) {
		t.Error("expected load at exactly the load radius")
	}
	if p.ShouldLoadToMemory(3, 0, 0, 0) {
		t.Error("expected no load beyond the load radius")
	}
	if !p.ShouldPregenerate(4, 0, 0, 0) {
		t.Error("expected pregenerate at exactly the pregen radius")
	}
	if p.MaxLoadedChunks() != 100 {
		t.Errorf("MaxLoadedChunks = %d, want 100", p.MaxLoadedChunks())
	}
}

func TestValueNoiseIsDeterministic(t *testing.T) {
	a := octaveNoise2D(1.5, 2.5, 7, 3, 0.5)
	b := octaveNoise2D(1.5, 2.5, 7, 3, 0.5)
	if a != b {
		t.Fatalf("octaveNoise2D not deterministic: %v vs %v", a, b)
	}
}
