package world

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"voxelcore/internal/profiling"
)

const pendingDrainPerFrame = 4

// jobKind distinguishes an in-memory residency load from a file-only
// pregeneration pass.
type jobKind int

const (
	jobLoadToMemory jobKind = iota
	jobPregenerate
)

type managerJob struct {
	coord ChunkCoord
	kind  jobKind
}

// ChunkManager owns every Chunk's lifecycle: residency decisions,
// asynchronous generation/deserialization, LRU eviction, and publishing
// completed chunks to the main thread via a pending FIFO. Workers only
// ever mutate the interior of a Chunk object the main thread already
// inserted — they never touch the `loaded` map itself.
type ChunkManager struct {
	generator        ChunkGenerator
	policy           ChunkLoadPolicy
	serializer       *ChunkSerializer
	defaultBlockType BlockType

	mu         sync.RWMutex
	loaded     map[ChunkCoord]*Chunk
	accessTime map[ChunkCoord]time.Time

	loadingMu sync.Mutex
	loading   map[ChunkCoord]struct{}

	pendingMu sync.Mutex
	pending   []*Chunk

	lastPlayerChunk    ChunkCoord
	hasLastPlayerChunk bool
	chunksChanged      atomic.Bool

	jobs   chan managerJob
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewChunkManager starts a two-worker background pool and returns a ready
// ChunkManager.
func NewChunkManager(serializer *ChunkSerializer, generator ChunkGenerator, policy ChunkLoadPolicy, defaultBlockType BlockType) *ChunkManager {
	ctx, cancel := context.WithCancel(context.Background())
	m := &ChunkManager{
		generator:        generator,
		policy:           policy,
		serializer:       serializer,
		defaultBlockType: defaultBlockType,
		loaded:           make(map[ChunkCoord]*Chunk),
		accessTime:       make(map[ChunkCoord]time.Time),
		loading:          make(map[ChunkCoord]struct{}),
		jobs:             make(chan managerJob, 256),
		ctx:              ctx,
		cancel:           cancel,
	}
	const workerCount = 2
	for i := 0; i < workerCount; i++ {
		m.wg.Add(1)
		go m.worker()
	}
	return m
}

// Shutdown stops accepting new work and waits up to 5s for the worker pool
// to drain gracefully.
func (m *ChunkManager) Shutdown() {
	m.cancel()
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		log.Println("chunk manager: shutdown timed out waiting for workers")
	}
}

// Get returns the chunk at coord, if loaded.
func (m *ChunkManager) Get(coord ChunkCoord) (*Chunk, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.loaded[coord]
	return c, ok
}

// Loaded returns a snapshot of currently loaded chunk coordinates.
func (m *ChunkManager) Loaded() []ChunkCoord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ChunkCoord, 0, len(m.loaded))
	for c := range m.loaded {
		out = append(out, c)
	}
	return out
}

// ConsumeChunksChanged reports and clears the chunks-changed flag.
func (m *ChunkManager) ConsumeChunksChanged() bool {
	return m.chunksChanged.Swap(false)
}

func (m *ChunkManager) worker() {
	defer m.wg.Done()
	for {
		select {
		case job, ok := <-m.jobs:
			if !ok {
				return
			}
			switch job.kind {
			case jobLoadToMemory:
				m.processLoad(job.coord)
			case jobPregenerate:
				m.processPregenerate(job.coord)
			}
		case <-m.ctx.Done():
			return
		}
	}
}

// processLoad is the worker-side half of "asynchronous load-or-generate":
// it expects a placeholder chunk already present in `loaded`, reads it
// from disk if a file exists, otherwise regenerates it, then enqueues the
// now-populated chunk for main-thread publish. A header mismatch on read
// means the file on disk belongs to a different chunk entirely, so it is
// fatal for this load: the placeholder is left at Empty and nothing is
// published, leaving the next boundary crossing to retry from scratch. A
// plain I/O failure (missing/truncated file, permission error) is not
// fatal: it falls back to regenerating the chunk in place.
func (m *ChunkManager) processLoad(coord ChunkCoord) {
	defer profiling.Track("world.ChunkManager.processLoad")()

	m.mu.RLock()
	c, ok := m.loaded[coord]
	m.mu.RUnlock()
	if !ok {
		m.clearLoading(coord)
		return
	}

	if m.serializer.Exists(coord) {
		if err := m.serializer.LoadInto(c); err != nil {
			if errors.Is(err, ErrHeaderMismatch) {
				log.Printf("chunk manager: load %v: %v, leaving chunk empty", coord, err)
				m.clearLoading(coord)
				return
			}
			log.Printf("chunk manager: load %v failed, regenerating: %v", coord, err)
			m.generator.Generate(c, m.defaultBlockType)
		}
	} else {
		m.generator.Generate(c, m.defaultBlockType)
	}
	c.SetState(Generated)

	m.pendingMu.Lock()
	m.pending = append(m.pending, c)
	m.pendingMu.Unlock()
}

// processPregenerate generates a chunk purely to persist it to disk,
// without ever publishing it into `loaded`.
func (m *ChunkManager) processPregenerate(coord ChunkCoord) {
	defer profiling.Track("world.ChunkManager.processPregenerate")()
	defer m.clearLoading(coord)

	c := NewChunk(coord)
	m.generator.Generate(c, m.defaultBlockType)
	c.SetState(Generated)
	if err := m.serializer.Save(c); err != nil {
		log.Printf("chunk manager: pregenerate save %v failed: %v", coord, err)
	}
}

func (m *ChunkManager) clearLoading(coord ChunkCoord) {
	m.loadingMu.Lock()
	delete(m.loading, coord)
	m.loadingMu.Unlock()
}

// StartLoad begins the asynchronous load-or-generate path for coord,
// inserting a placeholder Chunk into `loaded` if one isn't already there.
// A second call while the first is still in flight is a no-op: the
// `loading` set guards against duplicate jobs and the placeholder is
// never replaced (placeholder continuity).
func (m *ChunkManager) StartLoad(coord ChunkCoord) {
	m.mu.Lock()
	if _, ok := m.loaded[coord]; !ok {
		m.loaded[coord] = NewChunk(coord)
	}
	m.mu.Unlock()

	m.loadingMu.Lock()
	if _, inFlight := m.loading[coord]; inFlight {
		m.loadingMu.Unlock()
		return
	}
	m.loading[coord] = struct{}{}
	m.loadingMu.Unlock()

	select {
	case m.jobs <- managerJob{coord: coord, kind: jobLoadToMemory}:
	case <-m.ctx.Done():
		m.clearLoading(coord)
	}
}

// startPregenerate begins a file-only generation pass for coord, skipping
// it entirely if a file already exists or a job is already in flight.
func (m *ChunkManager) startPregenerate(coord ChunkCoord) {
	if m.serializer.Exists(coord) {
		return
	}
	m.loadingMu.Lock()
	if _, inFlight := m.loading[coord]; inFlight {
		m.loadingMu.Unlock()
		return
	}
	m.loading[coord] = struct{}{}
	m.loadingMu.Unlock()

	select {
	case m.jobs <- managerJob{coord: coord, kind: jobPregenerate}:
	case <-m.ctx.Done():
		m.clearLoading(coord)
	}
}

// DrainPending publishes at most pendingDrainPerFrame completed chunks
// from the worker pool onto the main thread: clearing their `loading`
// entry, updating access_time, flagging chunks_changed, and invalidating
// the four cardinal neighbors' meshes since a newly-loaded chunk may
// newly occlude or expose their boundary faces. invalidateNeighbor is
// supplied by World, which is the one that knows how to look a neighbor
// chunk up.
func (m *ChunkManager) DrainPending(invalidateNeighbor func(ChunkCoord)) {
	m.pendingMu.Lock()
	n := len(m.pending)
	if n > pendingDrainPerFrame {
		n = pendingDrainPerFrame
	}
	batch := m.pending[:n]
	m.pending = m.pending[n:]
	m.pendingMu.Unlock()

	now := time.Now()
	for _, c := range batch {
		m.clearLoading(c.Coord)

		m.mu.Lock()
		m.accessTime[c.Coord] = now
		m.mu.Unlock()

		m.chunksChanged.Store(true)

		for _, nb := range c.Coord.Neighbors() {
			invalidateNeighbor(nb)
		}
	}
}

// UpdateResidency is the boundary-gated residency pass: called at the
// chunk tick rate (not every frame). If the player hasn't crossed into a
// new chunk, it is a no-op beyond pending drain (handled separately by
// the caller). Otherwise it walks the search radius, starts load/pregen
// jobs per policy, and evicts if over capacity.
func (m *ChunkManager) UpdateResidency(playerX, playerZ float64) {
	defer profiling.Track("world.ChunkManager.UpdateResidency")()

	pc := ChunkCoordFromBlock(BlockPosFromWorld(playerX, 0, playerZ))
	if m.hasLastPlayerChunk && pc == m.lastPlayerChunk {
		return
	}
	m.lastPlayerChunk = pc
	m.hasLastPlayerChunk = true

	maxLoaded := m.policy.MaxLoadedChunks()
	radius := 10
	if maxLoaded/10 > radius {
		radius = maxLoaded / 10
	}

	required := make(map[ChunkCoord]struct{})
	for dz := -radius; dz <= radius; dz++ {
		for dx := -radius; dx <= radius; dx++ {
			d := ChunkCoord{X: pc.X + dx, Z: pc.Z + dz}
			if m.policy.ShouldLoadToMemory(d.X, d.Z, pc.X, pc.Z) {
				required[d] = struct{}{}
				m.mu.RLock()
				_, loaded := m.loaded[d]
				m.mu.RUnlock()
				if !loaded {
					m.StartLoad(d)
				}
			} else if m.policy.ShouldPregenerate(d.X, d.Z, pc.X, pc.Z) {
				m.startPregenerate(d)
			}
		}
	}

	m.mu.RLock()
	overLimit := len(m.loaded) > maxLoaded
	m.mu.RUnlock()
	if overLimit {
		m.evict(required, maxLoaded)
	}
}

// evict drops the least-recently-accessed chunks until residency is back
// under maxLoaded, sparing anything in required, and overshoots by 10 to
// reduce eviction churn on the next call.
func (m *ChunkManager) evict(required map[ChunkCoord]struct{}, maxLoaded int) {
	defer profiling.Track("world.ChunkManager.evict")()

	m.mu.RLock()
	type entry struct {
		coord ChunkCoord
		t     time.Time
	}
	candidates := make([]entry, 0, len(m.loaded))
	for coord := range m.loaded {
		if _, spared := required[coord]; spared {
			continue
		}
		candidates = append(candidates, entry{coord: coord, t: m.accessTime[coord]})
	}
	over := len(m.loaded) - maxLoaded
	m.mu.RUnlock()
	if over <= 0 {
		return
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].t.Before(candidates[j].t) })

	target := over + 10
	if target > len(candidates) {
		target = len(candidates)
	}

	for i := 0; i < target; i++ {
		coord := candidates[i].coord
		m.mu.RLock()
		c := m.loaded[coord]
		m.mu.RUnlock()
		if c == nil {
			continue
		}
		if err := m.serializer.Save(c); err != nil {
			log.Printf("chunk manager: evict save %v failed: %v", coord, err)
		}
		m.mu.Lock()
		delete(m.loaded, coord)
		delete(m.accessTime, coord)
		m.mu.Unlock()
	}
	m.chunksChanged.Store(true)
}
