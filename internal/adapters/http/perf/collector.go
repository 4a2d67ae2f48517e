package perf

import (
	"math"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultRingSize is the default capacity of the ring buffer.
const DefaultRingSize = 10000

// EntryKind distinguishes request vs query entries.
type EntryKind uint8

const (
	KindRequest EntryKind = iota
	KindQuery
)

// Entry is a single timing record.
type Entry struct {
	Kind       EntryKind
	Label      string // "GET /api/payroll" or "SELECT check_in"
	StatusCode int    // 0 for queries
	DurationMs float64
	Timestamp  time.Time
}

// Collector is a fixed-size ring buffer of timing entries.
// When full, the oldest entry is overwritten. Aggregation happens on read.
type Collector struct {
	mu       sync.Mutex
	entries  []Entry
	pos      int
	requests atomic.Int64
	queries  atomic.Int64
}

// NewCollector creates a collector holding at most size entries.
// PRE: size > 0, otherwise DefaultRingSize is used
func NewCollector(size int) *Collector {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Collector{entries: make([]Entry, size)}
}

// Record stores an entry, overwriting the oldest when the buffer is full.
func (c *Collector) Record(e Entry) {
	c.mu.Lock()
	c.entries[c.pos] = e
	c.pos = (c.pos + 1) % len(c.entries)
	c.mu.Unlock()
	if e.Kind == KindQuery {
		c.queries.Add(1)
	} else {
		c.requests.Add(1)
	}
}

// TotalRecorded returns the number of entries ever recorded.
func (c *Collector) TotalRecorded() int64 {
	return c.requests.Load() + c.queries.Load()
}

// Snapshot is the aggregated view served by the admin perf endpoint.
type Snapshot struct {
	Since          time.Time   `json:"since"`
	TotalRequests  int64       `json:"total_requests"`
	TotalQueries   int64       `json:"total_queries"`
	RequestP50Ms   float64     `json:"request_p50_ms"`
	RequestP95Ms   float64     `json:"request_p95_ms"`
	RequestP99Ms   float64     `json:"request_p99_ms"`
	ServerErrors   int         `json:"server_errors"`
	SlowestRoutes  []LabelStat `json:"slowest_routes"`
	SlowestQueries []LabelStat `json:"slowest_queries"`
}

// LabelStat aggregates timings sharing a label.
type LabelStat struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	AvgMs   float64 `json:"avg_ms"`
	MaxMs   float64 `json:"max_ms"`
	TotalMs float64 `json:"-"`
}

// Snapshot aggregates the entries recorded at or after since.
// PRE: topN > 0
// POST: SlowestRoutes and SlowestQueries hold at most topN labels ordered by average
func (c *Collector) Snapshot(since time.Time, topN int) Snapshot {
	c.mu.Lock()
	buf := slices.Clone(c.entries)
	c.mu.Unlock()

	var durations []float64
	routes := make(map[string]*LabelStat)
	queries := make(map[string]*LabelStat)
	snap := Snapshot{
		Since:         since,
		TotalRequests: c.requests.Load(),
		TotalQueries:  c.queries.Load(),
	}

	for _, e := range buf {
		if e.Timestamp.IsZero() || e.Timestamp.Before(since) {
			continue
		}
		stats := queries
		if e.Kind == KindRequest {
			stats = routes
			durations = append(durations, e.DurationMs)
			if e.StatusCode >= 500 {
				snap.ServerErrors++
			}
		}
		s, ok := stats[e.Label]
		if !ok {
			s = &LabelStat{Label: e.Label}
			stats[e.Label] = s
		}
		s.Count++
		s.TotalMs += e.DurationMs
		s.MaxMs = math.Max(s.MaxMs, e.DurationMs)
	}

	snap.SlowestRoutes = topByAvg(routes, topN)
	snap.SlowestQueries = topByAvg(queries, topN)

	if len(durations) > 0 {
		slices.Sort(durations)
		snap.RequestP50Ms = percentile(durations, 50)
		snap.RequestP95Ms = percentile(durations, 95)
		snap.RequestP99Ms = percentile(durations, 99)
	}
	return snap
}

// percentile interpolates the p-th percentile of a sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p / 100) * float64(len(sorted)-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))
	if lower == upper || upper >= len(sorted) {
		return sorted[lower]
	}
	frac := idx - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

func topByAvg(stats map[string]*LabelStat, n int) []LabelStat {
	list := make([]LabelStat, 0, len(stats))
	for _, s := range stats {
		s.AvgMs = s.TotalMs / float64(s.Count)
		list = append(list, *s)
	}
	slices.SortFunc(list, func(a, b LabelStat) int {
		if a.AvgMs != b.AvgMs {
			if a.AvgMs > b.AvgMs {
				return -1
			}
			return 1
		}
		if a.Label < b.Label {
			return -1
		}
		if a.Label > b.Label {
			return 1
		}
		return 0
	})
	if len(list) > n {
		list = list[:n]
	}
	return list
}
