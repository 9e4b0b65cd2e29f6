package meshing

import "testing"

func flatTopSlab(size int, blockType int32) (map[Pos]int32, map[Pos]VisMask) {
	blocks := make(map[Pos]int32)
	vis := make(map[Pos]VisMask)
	for x := 0; x < size; x++ {
		for z := 0; z < size; z++ {
			p := Pos{X: x, Y: 0, Z: z}
			blocks[p] = blockType
			var mask VisMask
			mask[Top] = true
			vis[p] = mask
		}
	}
	return blocks, vis
}

func TestGreedyMeshMergesUniformSlabIntoOneRectangle(t *testing.T) {
	blocks, vis := flatTopSlab(3, 7)
	rects := BuildGreedyMesh(blocks, vis, 3, 0, 0)

	var top []MergedRect
	for _, r := range rects {
		if r.Direction == Top {
			top = append(top, r)
		}
	}
	if len(top) != 1 {
		t.Fatalf("expected exactly one merged Top rectangle, got %d", len(top))
	}
	r := top[0]
	if r.Width != 3 || r.Height != 3 {
		t.Fatalf("merged rectangle = %dx%d, want 3x3", r.Width, r.Height)
	}
	if r.BlockType != 7 {
		t.Fatalf("merged rectangle blockType = %d, want 7", r.BlockType)
	}
}

func TestGreedyMeshProducesNoOtherDirectionsWhenOnlyTopVisible(t *testing.T) {
	blocks, vis := flatTopSlab(3, 1)
	rects := BuildGreedyMesh(blocks, vis, 3, 0, 0)
	for _, r := range rects {
		if r.Direction != Top {
			t.Fatalf("unexpected rectangle in direction %v with no visible faces", r.Direction)
		}
	}
}

func TestGreedyMeshDoesNotMergeDifferentBlockTypes(t *testing.T) {
	blocks := map[Pos]int32{
		{X: 0, Y: 0, Z: 0}: 1,
		{X: 1, Y: 0, Z: 0}: 2,
	}
	vis := map[Pos]VisMask{
		{X: 0, Y: 0, Z: 0}: {Top: true},
		{X: 1, Y: 0, Z: 0}: {Top: true},
	}
	rects := BuildGreedyMesh(blocks, vis, 2, 0, 0)
	if len(rects) != 2 {
		t.Fatalf("expected 2 separate rectangles for differing block types, got %d", len(rects))
	}
	for _, r := range rects {
		if r.Width != 1 || r.Height != 1 {
			t.Fatalf("expected unit rectangles, got %dx%d", r.Width, r.Height)
		}
	}
}

func TestGreedyMeshCoversExactFaceAreaOnce(t *testing.T) {
	blocks, vis := flatTopSlab(4, 1)
	rects := BuildGreedyMesh(blocks, vis, 4, 0, 0)

	covered := make(map[Pos]bool)
	totalArea := 0
	for _, r := range rects {
		totalArea += r.Width * r.Height
		for i := 0; i < r.Width; i++ {
			for j := 0; j < r.Height; j++ {
				x, y, z := subQuadBlock(r, i, j)
				p := Pos{X: x, Y: y, Z: z}
				if covered[p] {
					t.Fatalf("cell %v emitted twice", p)
				}
				covered[p] = true
			}
		}
	}
	if totalArea != 16 {
		t.Fatalf("total merged area = %d, want 16", totalArea)
	}
}

func TestGreedyMeshIsDeterministic(t *testing.T) {
	blocks, vis := flatTopSlab(5, 2)
	a := BuildGreedyMesh(blocks, vis, 5, 0, 0)
	b := BuildGreedyMesh(blocks, vis, 5, 0, 0)
	if len(a) != len(b) {
		t.Fatalf("non-deterministic rectangle count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("rectangle %d differs between runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
