package world

import "testing"

func TestFloorModNegativeAndPositive(t *testing.T) {
	for n := -1000; n <= 1000; n++ {
		got := floorMod(n, 16)
		if got < 0 || got >= 16 {
			t.Fatalf("floorMod(%d, 16) = %d, want in [0,16)", n, got)
		}
		want := ((n % 16) + 16) % 16
		if got != want {
			t.Fatalf("floorMod(%d, 16) = %d, want %d", n, got, want)
		}
	}
}

func TestFloorDivMatchesFloorSemantics(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{15, 16, 0},
		{16, 16, 1},
		{-1, 16, -1},
		{-16, 16, -1},
		{-17, 16, -2},
	}
	for _, c := range cases {
		if got := floorDiv(c.a, c.b); got != c.want {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestChunkCoordLocalUsesFloorMod(t *testing.T) {
	coord := ChunkCoordFromBlock(BlockPos{X: -1, Y: 0, Z: -1})
	lx, _, lz := coord.Local(BlockPos{X: -1, Y: 0, Z: -1})
	if lx != 15 || lz != 15 {
		t.Fatalf("local of (-1,-1) = (%d,%d), want (15,15)", lx, lz)
	}
}
