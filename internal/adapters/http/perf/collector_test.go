package perf

import (
	"sync"
	"testing"
	"time"
)

// TestCollector_Record_And_Snapshot verifies basic record and snapshot functionality.
func TestCollector_Record_And_Snapshot(t *testing.T) {
	c := NewCollector(100)
	now := time.Now()

	c.Record(Entry{Kind: KindRequest, Label: "GET /api/payroll", StatusCode: 200, DurationMs: 10, Timestamp: now})
	c.Record(Entry{Kind: KindRequest, Label: "GET /api/payroll", StatusCode: 500, DurationMs: 30, Timestamp: now})
	c.Record(Entry{Kind: KindQuery, Label: "SELECT check_in", DurationMs: 5, Timestamp: now})

	snap := c.Snapshot(now.Add(-time.Minute), 10)
	if snap.TotalRequests != 2 || snap.TotalQueries != 1 {
		t.Errorf("totals = %d requests, %d queries; want 2, 1", snap.TotalRequests, snap.TotalQueries)
	}
	if snap.ServerErrors != 1 {
		t.Errorf("ServerErrors = %d, want 1", snap.ServerErrors)
	}
	if len(snap.SlowestRoutes) != 1 {
		t.Fatalf("SlowestRoutes len = %d, want 1", len(snap.SlowestRoutes))
	}
	if snap.SlowestRoutes[0].AvgMs != 20 || snap.SlowestRoutes[0].MaxMs != 30 {
		t.Errorf("route stat = %+v, want avg 20 max 30", snap.SlowestRoutes[0])
	}
	if len(snap.SlowestQueries) != 1 || snap.SlowestQueries[0].Label != "SELECT check_in" {
		t.Fatalf("SlowestQueries = %+v", snap.SlowestQueries)
	}
}

// TestCollector_RingBuffer_Overwrites verifies oldest entries are overwritten when full.
func TestCollector_RingBuffer_Overwrites(t *testing.T) {
	c := NewCollector(3)
	now := time.Now()

	for i := 0; i < 5; i++ {
		c.Record(Entry{Kind: KindRequest, Label: "GET /x", DurationMs: float64(i), Timestamp: now})
	}

	if c.TotalRecorded() != 5 {
		t.Errorf("TotalRecorded = %d, want 5", c.TotalRecorded())
	}

	snap := c.Snapshot(now.Add(-time.Minute), 10)
	if len(snap.SlowestRoutes) != 1 {
		t.Fatalf("SlowestRoutes len = %d, want 1", len(snap.SlowestRoutes))
	}
	if snap.SlowestRoutes[0].Count != 3 {
		t.Errorf("Count = %d, want 3", snap.SlowestRoutes[0].Count)
	}
}

// TestCollector_Percentiles verifies P50/P95/P99 calculation.
func TestCollector_Percentiles(t *testing.T) {
	c := NewCollector(200)
	now := time.Now()

	for i := 1; i <= 100; i++ {
		c.Record(Entry{Kind: KindRequest, Label: "GET /p", DurationMs: float64(i), Timestamp: now})
	}

	snap := c.Snapshot(now.Add(-time.Minute), 10)
	if snap.RequestP50Ms < 49 || snap.RequestP50Ms > 51 {
		t.Errorf("P50 = %v, want ~50", snap.RequestP50Ms)
	}
	if snap.RequestP95Ms < 94 || snap.RequestP95Ms > 96 {
		t.Errorf("P95 = %v, want ~95", snap.RequestP95Ms)
	}
	if snap.RequestP99Ms < 98 || snap.RequestP99Ms > 100 {
		t.Errorf("P99 = %v, want ~99", snap.RequestP99Ms)
	}
}

// TestCollector_Snapshot_FiltersBySince verifies old entries are excluded.
func TestCollector_Snapshot_FiltersBySince(t *testing.T) {
	c := NewCollector(100)
	old := time.Now().Add(-2 * time.Hour)
	recent := time.Now()

	c.Record(Entry{Kind: KindRequest, Label: "GET /old", DurationMs: 100, Timestamp: old})
	c.Record(Entry{Kind: KindRequest, Label: "GET /new", DurationMs: 10, Timestamp: recent})

	snap := c.Snapshot(time.Now().Add(-1*time.Hour), 10)
	if len(snap.SlowestRoutes) != 1 {
		t.Fatalf("SlowestRoutes len = %d, want 1", len(snap.SlowestRoutes))
	}
	if snap.SlowestRoutes[0].Label != "GET /new" {
		t.Errorf("Label = %q, want GET /new", snap.SlowestRoutes[0].Label)
	}
}

// TestCollector_TopN verifies ordering by average and truncation.
func TestCollector_TopN(t *testing.T) {
	c := NewCollector(10)
	now := time.Now()
	c.Record(Entry{Kind: KindQuery, Label: "SELECT class", DurationMs: 1, Timestamp: now})
	c.Record(Entry{Kind: KindQuery, Label: "SELECT profile", DurationMs: 9, Timestamp: now})
	c.Record(Entry{Kind: KindQuery, Label: "INSERT check_in", DurationMs: 4, Timestamp: now})

	snap := c.Snapshot(now.Add(-time.Second), 2)
	if len(snap.SlowestQueries) != 2 {
		t.Fatalf("len = %d, want 2", len(snap.SlowestQueries))
	}
	if snap.SlowestQueries[0].Label != "SELECT profile" || snap.SlowestQueries[1].Label != "INSERT check_in" {
		t.Errorf("order = %+v", snap.SlowestQueries)
	}
}

// TestCollector_ConcurrentWrites verifies goroutine safety of Record.
func TestCollector_ConcurrentWrites(t *testing.T) {
	c := NewCollector(1000)
	now := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				c.Record(Entry{Kind: KindRequest, Label: "GET /c", DurationMs: float64(n), Timestamp: now})
			}
		}(i)
	}
	wg.Wait()
	if c.TotalRecorded() != 1000 {
		t.Errorf("TotalRecorded = %d, want 1000", c.TotalRecorded())
	}
}
