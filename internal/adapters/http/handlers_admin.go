package web

import (
	"net/http"
	"strconv"
	"time"
)

// handleGetPerf handles GET /api/admin/perf?window=1h&top=10.
func (s *server) handleGetPerf(w http.ResponseWriter, r *http.Request) {
	if s.collector == nil {
		writeError(w, http.StatusNotFound, "performance collection is disabled")
		return
	}
	window := time.Hour
	if v := r.URL.Query().Get("window"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			writeError(w, http.StatusBadRequest, "window must be a positive duration such as 15m")
			return
		}
		window = d
	}
	top := 10
	if v := r.URL.Query().Get("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			writeError(w, http.StatusBadRequest, "top must be between 1 and 100")
			return
		}
		top = n
	}
	writeJSON(w, http.StatusOK, s.collector.Snapshot(s.now().Add(-window), top))
}
