package web

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/ftebtw/dsdc-sub000/internal/application/projections"
	"github.com/ftebtw/dsdc-sub000/internal/domain/payroll"
)

func (s *server) payrollDeps() projections.GetPayrollDatasetDeps {
	return projections.GetPayrollDatasetDeps{
		CoachStore:          s.stores.CoachStore,
		CheckInStore:        s.stores.CheckInStore,
		PrivateSessionStore: s.stores.PrivateSessionStore,
		ClassStore:          s.stores.ClassStore,
		ProfileStore:        s.stores.ProfileStore,
		Converter:           s.conv,
	}
}

// parseRange reads ?start&end, writing a 400 on validation failure.
func (s *server) parseRange(w http.ResponseWriter, r *http.Request) (payroll.DateRange, bool) {
	q := r.URL.Query()
	rng, err := payroll.ParseDateRange(q.Get("start"), q.Get("end"), s.now())
	if err != nil {
		if payroll.IsValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
		} else {
			internalError(w, err)
		}
		return payroll.DateRange{}, false
	}
	return rng, true
}

// handleGetPayroll handles GET /api/payroll?start&end&coach_id.
func (s *server) handleGetPayroll(w http.ResponseWriter, r *http.Request) {
	rng, ok := s.parseRange(w, r)
	if !ok {
		return
	}
	ds, err := projections.QueryGetPayrollDataset(r.Context(), projections.PayrollQuery{
		Range:   rng,
		CoachID: r.URL.Query().Get("coach_id"),
	}, s.payrollDeps())
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

// handleGetPayrollHours handles GET /api/payroll/hours?start&end.
func (s *server) handleGetPayrollHours(w http.ResponseWriter, r *http.Request) {
	rng, ok := s.parseRange(w, r)
	if !ok {
		return
	}
	total, err := projections.QueryGetPayrollTotalHours(r.Context(), rng, projections.GetPayrollTotalHoursDeps{
		CheckInStore:        s.stores.CheckInStore,
		PrivateSessionStore: s.stores.PrivateSessionStore,
		ClassStore:          s.stores.ClassStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"range": rng, "total_hours": total})
}

// handleExportPayrollCSV handles GET /api/payroll/export.csv?start&end&coach_id.
// The ledger is buffered so a failure mid-write still yields a clean 500.
func (s *server) handleExportPayrollCSV(w http.ResponseWriter, r *http.Request) {
	rng, ok := s.parseRange(w, r)
	if !ok {
		return
	}
	ds, err := projections.QueryGetPayrollDataset(r.Context(), projections.PayrollQuery{
		Range:   rng,
		CoachID: r.URL.Query().Get("coach_id"),
	}, s.payrollDeps())
	if err != nil {
		internalError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := payroll.WriteLedgerCSV(&buf, ds.Sessions); err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="payroll-%s-%s.csv"`, rng.Start, rng.End))
	w.Write(buf.Bytes())
}
