package meshing

import "voxelcore/internal/profiling"

// rect2D is one rectangle produced by merge2D within a single sweep plane:
// its origin in (primary, secondary) plane coordinates, its extent along
// each, and the block type it covers.
type rect2D struct {
	primary, secondary int
	width, height       int
	blockType           int32
}

// merge2D performs the per-plane greedy merge described in §4.5: scan
// outer (primary) -> inner (secondary), extend width along secondary
// while same type and present, extend height along primary while the
// entire width strip matches, emit, zero out. Traversal order is fixed
// (ascending primary, then ascending secondary), so identical inputs
// always yield identical rectangle sequences.
func merge2D(primarySize, secondarySize int, cell func(p, s int) (int32, bool)) []rect2D {
	mask := make([]int32, primarySize*secondarySize)
	present := make([]bool, primarySize*secondarySize)
	for p := 0; p < primarySize; p++ {
		for s := 0; s < secondarySize; s++ {
			bt, ok := cell(p, s)
			if ok {
				idx := p*secondarySize + s
				mask[idx] = bt
				present[idx] = true
			}
		}
	}

	var rects []rect2D
	for p := 0; p < primarySize; p++ {
		for s := 0; s < secondarySize; s++ {
			idx := p*secondarySize + s
			if !present[idx] {
				continue
			}
			bt := mask[idx]

			width := 1
			for s2 := s + 1; s2 < secondarySize; s2++ {
				j := p*secondarySize + s2
				if !present[j] || mask[j] != bt {
					break
				}
				width++
			}

			height := 1
		extendHeight:
			for p2 := p + 1; p2 < primarySize; p2++ {
				for s2 := s; s2 < s+width; s2++ {
					j := p2*secondarySize + s2
					if !present[j] || mask[j] != bt {
						break extendHeight
					}
				}
				height++
			}

			rects = append(rects, rect2D{primary: p, secondary: s, width: width, height: height, blockType: bt})

			for p2 := p; p2 < p+height; p2++ {
				for s2 := s; s2 < s+width; s2++ {
					present[p2*secondarySize+s2] = false
				}
			}
		}
	}
	return rects
}

// BuildGreedyMesh merges visible, same-type unit faces across the whole
// chunk volume into maximal rectangles, independently for each of the six
// face directions. blocks holds every occupied local position with its
// type; vis holds the precomputed per-face visibility mask for each of
// those positions (built by the caller from neighbor queries). minY/maxY
// bound the vertical sweep (inclusive) since chunks have no fixed array
// extent.
func BuildGreedyMesh(blocks map[Pos]int32, vis map[Pos]VisMask, size, minY, maxY int) []MergedRect {
	defer profiling.Track("meshing.BuildGreedyMesh")()

	height := maxY - minY + 1
	if height <= 0 {
		return nil
	}

	var out []MergedRect

	// Front/Back: sweep planes of constant z; merge X (width) then Y (height).
	for _, dir := range [2]Direction{Front, Back} {
		for z := 0; z < size; z++ {
			rects := merge2D(height, size, func(p, s int) (int32, bool) {
				y := minY + p
				x := s
				pos := Pos{X: x, Y: y, Z: z}
				bt, ok := blocks[pos]
				if !ok || !vis[pos][dir] {
					return 0, false
				}
				return bt, true
			})
			for _, r := range rects {
				out = append(out, MergedRect{
					Direction: dir,
					BlockType: r.blockType,
					Origin:    Pos{X: r.secondary, Y: minY + r.primary, Z: z},
					Width:     r.width,
					Height:    r.height,
				})
			}
		}
	}

	// Left/Right: sweep planes of constant x; merge Z (width) then Y (height).
	for _, dir := range [2]Direction{Left, Right} {
		for x := 0; x < size; x++ {
			rects := merge2D(height, size, func(p, s int) (int32, bool) {
				y := minY + p
				z := s
				pos := Pos{X: x, Y: y, Z: z}
				bt, ok := blocks[pos]
				if !ok || !vis[pos][dir] {
					return 0, false
				}
				return bt, true
			})
			for _, r := range rects {
				out = append(out, MergedRect{
					Direction: dir,
					BlockType: r.blockType,
					Origin:    Pos{X: x, Y: minY + r.primary, Z: r.secondary},
					Width:     r.width,
					Height:    r.height,
				})
			}
		}
	}

	// Top/Bottom: sweep planes of constant y; merge X (width) then Z (depth).
	for _, dir := range [2]Direction{Top, Bottom} {
		for y := minY; y <= maxY; y++ {
			rects := merge2D(size, size, func(p, s int) (int32, bool) {
				z := p
				x := s
				pos := Pos{X: x, Y: y, Z: z}
				bt, ok := blocks[pos]
				if !ok || !vis[pos][dir] {
					return 0, false
				}
				return bt, true
			})
			for _, r := range rects {
				out = append(out, MergedRect{
					Direction: dir,
					BlockType: r.blockType,
					Origin:    Pos{X: r.secondary, Y: y, Z: r.primary},
					Width:     r.width,
					Height:    r.height,
				})
			}
		}
	}

	return out
}
