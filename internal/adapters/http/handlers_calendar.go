package web

import (
	"errors"
	"net/http"

	"github.com/ftebtw/dsdc-sub000/internal/application/orchestrators"
	"github.com/ftebtw/dsdc-sub000/internal/application/projections"
	"github.com/ftebtw/dsdc-sub000/internal/domain/schedule"
	"github.com/ftebtw/dsdc-sub000/internal/domain/timezone"
)

// defaultCalendarDays is the window shown when ?to is omitted.
const defaultCalendarDays = 7

// handleGetCalendar handles GET /api/calendar?from&to&tz&class_type&coach_id.
// A missing from means today in the viewer's zone.
func (s *server) handleGetCalendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := projections.CalendarQuery{
		From:           q.Get("from"),
		To:             q.Get("to"),
		ViewerTimezone: q.Get("tz"),
		Filter: projections.CalendarFilter{
			ClassType: q.Get("class_type"),
			CoachID:   q.Get("coach_id"),
		},
	}
	if query.From == "" {
		query.From, _ = s.conv.FromInstant(s.now(), query.ViewerTimezone)
	}
	if query.To == "" {
		to, err := timezone.AddDays(query.From, defaultCalendarDays-1)
		if err != nil {
			writeError(w, http.StatusBadRequest, schedule.ErrInvalidWindow.Error())
			return
		}
		query.To = to
	}

	result, err := projections.QueryGetCalendar(r.Context(), query, projections.GetCalendarDeps{
		ClassStore: s.stores.ClassStore,
		EventStore: s.stores.EventStore,
		TermStore:  s.stores.TermStore,
		Converter:  s.conv,
	})
	switch {
	case errors.Is(err, schedule.ErrInvalidWindow), errors.Is(err, projections.ErrCalendarWindowTooLong):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		internalError(w, err)
	default:
		writeJSON(w, http.StatusOK, result)
	}
}

// handleCreateCalendarEvent handles POST /api/calendar/events.
func (s *server) handleCreateCalendarEvent(w http.ResponseWriter, r *http.Request) {
	var input orchestrators.CreateCalendarEventInput
	if err := strictDecode(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	event, err := orchestrators.ExecuteCreateCalendarEvent(r.Context(), input, orchestrators.CreateCalendarEventDeps{
		EventStore: s.stores.EventStore,
		Now:        s.now,
	})
	switch {
	case errors.Is(err, orchestrators.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		internalError(w, err)
	default:
		writeJSON(w, http.StatusCreated, event)
	}
}

// handleDeleteCalendarEvent handles DELETE /api/calendar/events/{id}.
// Deleting an unknown ID is not an error.
func (s *server) handleDeleteCalendarEvent(w http.ResponseWriter, r *http.Request) {
	if err := s.stores.EventStore.Delete(r.Context(), r.PathValue("id")); err != nil {
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
