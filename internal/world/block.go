package world

// BlockType is an opaque integer block identifier. voxelcore attaches no
// semantics to the value beyond selecting an atlas tile: every stored
// block is solid whatever its type, including type 0 — anything richer
// (hardness, tool requirements, light emission) is a Non-goal and lives in
// the embedder if at all.
type BlockType int32

// Air is the zero block type, returned alongside false by lookups of an
// empty cell. A block stored with type 0 is still a solid block.
const Air BlockType = 0

// BlockData is the payload stored per occupied cell. It is intentionally
// just the type id today; the struct exists so call sites that snapshot or
// serialize blocks don't need to change shape if a second field is ever
// added.
type BlockData struct {
	Type BlockType
}

// DefaultAtlasGrid is the fallback tile-grid width/height used when no
// config value overrides it (spec.md §6, atlas_grid_size).
const DefaultAtlasGrid = 16

// AtlasTile returns the (column, row) of this block type's texture tile
// within a square grid atlas of the given width, using row-major indexing
// starting at the top-left tile. gridSize must be > 0.
func (b BlockType) AtlasTile(gridSize int) (col, row int) {
	idx := int(b)
	return idx % gridSize, idx / gridSize
}
