// Package profiling is a lightweight per-frame timing accumulator: call
// sites record how long an operation took under a name, and a frame's
// totals can be read back for a debug overlay. It never allocates on the
// hot path beyond the returned closure and a map entry.
package profiling

import (
	"fmt"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)
)

// Track starts timing an operation and returns a stop function that
// records the elapsed time under name, accumulating across repeated
// calls within the same frame. Usage: defer profiling.Track("pkg.Op")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		frameTotals[name] += d
		mu.Unlock()
	}
}

// ResetFrame clears the accumulated totals; callers that want a
// per-frame (rather than running-total) view call this once per frame
// before the next round of Track calls.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	mu.Unlock()
}

// Snapshot returns a copy of the current accumulated totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(frameTotals))
	maps.Copy(out, frameTotals)
	return out
}

// SumWithPrefix sums every tracked duration whose name starts with any
// of the given prefixes, e.g. SumWithPrefix("world.ChunkManager.") to
// total every chunk-manager operation.
func SumWithPrefix(prefixes ...string) time.Duration {
	ss := Snapshot()
	var sum time.Duration
	for k, v := range ss {
		for _, p := range prefixes {
			if strings.HasPrefix(k, p) {
				sum += v
				break
			}
		}
	}
	return sum
}

// TopN formats the N longest-running tracked operations, longest first,
// e.g. "world.ChunkManager.UpdateResidency:4.2ms, physics.Raycast:0.3ms".
func TopN(n int) string {
	ss := Snapshot()

	type pair struct {
		name string
		dur  time.Duration
	}
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].dur > list[j].dur })
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ms := float64(list[i].dur.Microseconds()) / 1000.0
		parts = append(parts, fmt.Sprintf("%s:%.1fms", list[i].name, ms))
	}
	return strings.Join(parts, ", ")
}
