package world

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// chunkByteOrder is the fixed byte order for the on-disk chunk format.
// Little-endian, chosen once and used everywhere in this package.
var chunkByteOrder = binary.LittleEndian

// ErrHeaderMismatch is returned by LoadInto when a chunk file's header
// coordinates don't match the chunk it was asked to populate. Unlike a
// plain I/O failure this is not retryable by regenerating the same
// chunk in place: the file belongs to a different coordinate, so the
// caller must treat the load as fatal for this chunk rather than fall
// back to world-generation.
var ErrHeaderMismatch = errors.New("chunk serializer: header mismatch")

// ChunkSerializer reads and writes chunks under <worldPath>/chunks/.
type ChunkSerializer struct {
	worldPath string
}

// NewChunkSerializer returns a serializer rooted at worldPath.
func NewChunkSerializer(worldPath string) *ChunkSerializer {
	return &ChunkSerializer{worldPath: worldPath}
}

func (s *ChunkSerializer) pathFor(coord ChunkCoord) string {
	return filepath.Join(s.worldPath, "chunks", fmt.Sprintf("chunk_%d_%d.dat", coord.X, coord.Z))
}

// Exists reports whether a saved file exists for the given chunk.
func (s *ChunkSerializer) Exists(coord ChunkCoord) bool {
	_, err := os.Stat(s.pathFor(coord))
	return err == nil
}

// Save persists a chunk's current block set. Directories are created on
// demand. Errors are returned to the caller, who is expected (per the
// manager's error policy) to log and continue rather than propagate.
func (s *ChunkSerializer) Save(c *Chunk) error {
	path := s.pathFor(c.Coord)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("chunk serializer: mkdir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("chunk serializer: create: %w", err)
	}
	defer f.Close()

	positions := c.GetBlockPosSnapshot()
	if err := binary.Write(f, chunkByteOrder, int32(c.Coord.X)); err != nil {
		return err
	}
	if err := binary.Write(f, chunkByteOrder, int32(c.Coord.Z)); err != nil {
		return err
	}
	if err := binary.Write(f, chunkByteOrder, int32(len(positions))); err != nil {
		return err
	}
	for _, p := range positions {
		d, ok := c.GetBlockLocal(p.X, p.Y, p.Z)
		if !ok {
			continue
		}
		vals := [4]int32{int32(p.X), int32(p.Y), int32(p.Z), int32(d.Type)}
		for _, v := range vals {
			if err := binary.Write(f, chunkByteOrder, v); err != nil {
				return fmt.Errorf("chunk serializer: write: %w", err)
			}
		}
	}
	return nil
}

// LoadInto reads a chunk file's contents into an already-existing Chunk,
// preserving its object identity across the async load path (the whole
// point of placeholder continuity). The header's chunkX/chunkZ must match
// the target chunk; mismatch is a fatal read error for that chunk per the
// error-handling policy.
func (s *ChunkSerializer) LoadInto(c *Chunk) error {
	path := s.pathFor(c.Coord)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("chunk serializer: open: %w", err)
	}
	defer f.Close()

	var cx, cz, count int32
	if err := binary.Read(f, chunkByteOrder, &cx); err != nil {
		return fmt.Errorf("chunk serializer: read header: %w", err)
	}
	if err := binary.Read(f, chunkByteOrder, &cz); err != nil {
		return fmt.Errorf("chunk serializer: read header: %w", err)
	}
	if int(cx) != c.Coord.X || int(cz) != c.Coord.Z {
		return fmt.Errorf("%w: file is (%d,%d), target is (%d,%d)",
			ErrHeaderMismatch, cx, cz, c.Coord.X, c.Coord.Z)
	}
	if err := binary.Read(f, chunkByteOrder, &count); err != nil {
		return fmt.Errorf("chunk serializer: read block count: %w", err)
	}

	for i := int32(0); i < count; i++ {
		var lx, ly, lz, bt int32
		if err := binary.Read(f, chunkByteOrder, &lx); err != nil {
			return unwrapShortRead(err)
		}
		if err := binary.Read(f, chunkByteOrder, &ly); err != nil {
			return unwrapShortRead(err)
		}
		if err := binary.Read(f, chunkByteOrder, &lz); err != nil {
			return unwrapShortRead(err)
		}
		if err := binary.Read(f, chunkByteOrder, &bt); err != nil {
			return unwrapShortRead(err)
		}
		c.AddBlockLocal(int(lx), int(ly), int(lz), BlockType(bt))
	}
	return nil
}

func unwrapShortRead(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("chunk serializer: truncated file: %w", err)
	}
	return fmt.Errorf("chunk serializer: read block: %w", err)
}

// LoadNew constructs a fresh Chunk from disk, for synchronous initial-load
// paths that don't need a pre-existing placeholder.
func (s *ChunkSerializer) LoadNew(coord ChunkCoord) (*Chunk, error) {
	c := NewChunk(coord)
	if err := s.LoadInto(c); err != nil {
		return nil, err
	}
	c.SetState(Generated)
	return c, nil
}
