package web

import "net/http"

// registerRoutes attaches every API route to mux.
func (s *server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/csrf-token", handleCSRFToken)

	// Payroll
	mux.HandleFunc("GET /api/payroll", s.handleGetPayroll)
	mux.HandleFunc("GET /api/payroll/hours", s.handleGetPayrollHours)
	mux.HandleFunc("GET /api/payroll/export.csv", s.handleExportPayrollCSV)

	// Calendar
	mux.HandleFunc("GET /api/calendar", s.handleGetCalendar)
	mux.HandleFunc("POST /api/calendar/events", s.handleCreateCalendarEvent)
	mux.HandleFunc("DELETE /api/calendar/events/{id}", s.handleDeleteCalendarEvent)

	// Check-in
	mux.HandleFunc("POST /api/checkins", s.handleRecordCheckIn)

	// Admin
	mux.HandleFunc("GET /api/admin/perf", s.handleGetPerf)
}
