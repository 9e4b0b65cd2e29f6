package world

import "math"

// ChunkGenerator is supplied by the embedder. Generate must be safe to call
// concurrently (one call per chunk, never two calls for the same chunk)
// and pure with respect to the chunk passed in — it should only read the
// chunk's coordinate and write its blocks.
type ChunkGenerator interface {
	Generate(c *Chunk, defaultBlockType BlockType)
}

// ChunkLoadPolicy is supplied by the embedder and decides which chunks are
// resident, pregenerated, or evicted.
type ChunkLoadPolicy interface {
	ShouldLoadToMemory(cx, cz, pcx, pcz int) bool
	ShouldPregenerate(cx, cz, pcx, pcz int) bool
	MaxLoadedChunks() int
}

// RadiusLoadPolicy is a simple reference ChunkLoadPolicy: load within
// loadRadius of the player, pregenerate (file-only) within pregenRadius,
// and cap total residency at maxLoaded.
type RadiusLoadPolicy struct {
	LoadRadius    int
	PregenRadius  int
	MaxLoaded     int
}

func NewRadiusLoadPolicy(loadRadius, pregenRadius, maxLoaded int) *RadiusLoadPolicy {
	return &RadiusLoadPolicy{LoadRadius: loadRadius, PregenRadius: pregenRadius, MaxLoaded: maxLoaded}
}

func (p *RadiusLoadPolicy) ShouldLoadToMemory(cx, cz, pcx, pcz int) bool {
	dx, dz := cx-pcx, cz-pcz
	return dx*dx+dz*dz <= p.LoadRadius*p.LoadRadius
}

func (p *RadiusLoadPolicy) ShouldPregenerate(cx, cz, pcx, pcz int) bool {
	dx, dz := cx-pcx, cz-pcz
	return dx*dx+dz*dz <= p.PregenRadius*p.PregenRadius
}

func (p *RadiusLoadPolicy) MaxLoadedChunks() int {
	return p.MaxLoaded
}

// FlatGenerator is a trivial reference ChunkGenerator: when
// autoCreateGround is set it fills every column of the chunk with
// defaultBlockType from y=0 up to the noise height given by heightAt
// (a few blocks at most), otherwise it leaves the chunk empty. Real terrain
// generation is caller-supplied; this exists only so the module is
// runnable out of the box.
type FlatGenerator struct {
	AutoCreateGround bool
	Seed             int64
}

func NewFlatGenerator(seed int64, autoCreateGround bool) *FlatGenerator {
	return &FlatGenerator{AutoCreateGround: autoCreateGround, Seed: seed}
}

func (g *FlatGenerator) Generate(c *Chunk, defaultBlockType BlockType) {
	if !g.AutoCreateGround {
		return
	}
	for lx := 0; lx < ChunkSize; lx++ {
		for lz := 0; lz < ChunkSize; lz++ {
			wx := c.Coord.X*ChunkSize + lx
			wz := c.Coord.Z*ChunkSize + lz
			height := g.heightAt(wx, wz)
			for y := 0; y <= height; y++ {
				c.AddBlockLocal(lx, y, lz, defaultBlockType)
			}
		}
	}
}

// heightAt is a trivial three-octave value-noise height field, a reference
// implementation only — embedders are expected to bring their own.
func (g *FlatGenerator) heightAt(wx, wz int) int {
	n := octaveNoise2D(float64(wx)*0.05, float64(wz)*0.05, g.Seed, 3, 0.5)
	return int(n * 4)
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func hash2(x, z int, seed int64) float64 {
	h := int64(x)*374761393 + int64(z)*668265263 + seed*2147483647
	h = (h ^ (h >> 13)) * 1274126177
	h = h ^ (h >> 16)
	return float64(h&0xffffff) / float64(0xffffff)
}

func latticeValue(ix, iz int, seed int64) float64 {
	return hash2(ix, iz, seed)
}

func valueNoise2D(x, z float64, seed int64) float64 {
	x0, z0 := int(math.Floor(x)), int(math.Floor(z))
	x1, z1 := x0+1, z0+1
	tx, tz := fade(x-float64(x0)), fade(z-float64(z0))

	v00 := latticeValue(x0, z0, seed)
	v10 := latticeValue(x1, z0, seed)
	v01 := latticeValue(x0, z1, seed)
	v11 := latticeValue(x1, z1, seed)

	top := lerp(v00, v10, tx)
	bottom := lerp(v01, v11, tx)
	return lerp(top, bottom, tz)
}

func octaveNoise2D(x, z float64, seed int64, octaves int, persistence float64) float64 {
	var total, amplitude, maxValue float64
	amplitude = 1
	freq := 1.0
	for i := 0; i < octaves; i++ {
		total += valueNoise2D(x*freq, z*freq, seed+int64(i)) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		freq *= 2
	}
	if maxValue == 0 {
		return 0
	}
	return total / maxValue
}
