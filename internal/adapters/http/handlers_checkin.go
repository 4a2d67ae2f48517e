package web

import (
	"errors"
	"net/http"

	"github.com/ftebtw/dsdc-sub000/internal/application/orchestrators"
)

// handleRecordCheckIn handles POST /api/checkins {coach_id, class_id}.
// A new check-in answers 201; a repeat for the same meeting answers 200 with
// the original.
func (s *server) handleRecordCheckIn(w http.ResponseWriter, r *http.Request) {
	var input orchestrators.RecordCheckInInput
	if err := strictDecode(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := orchestrators.ExecuteRecordCheckIn(r.Context(), input, orchestrators.RecordCheckInDeps{
		ClassStore:   s.stores.ClassStore,
		CheckInStore: s.stores.CheckInStore,
		Converter:    s.conv,
		Now:          s.now,
	})
	switch {
	case errors.Is(err, orchestrators.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, orchestrators.ErrClassNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, orchestrators.ErrCoachNotAssigned):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, orchestrators.ErrNotScheduledToday), errors.Is(err, orchestrators.ErrOutsideTerm):
		writeError(w, http.StatusConflict, err.Error())
	case err != nil:
		internalError(w, err)
	case result.Existing:
		writeJSON(w, http.StatusOK, result)
	default:
		writeJSON(w, http.StatusCreated, result)
	}
}
