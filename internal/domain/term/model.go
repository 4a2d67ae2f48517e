package term

import (
	"errors"
	"strings"

	"github.com/ftebtw/dsdc-sub000/internal/domain/timezone"
)

// Domain errors
var (
	ErrEmptyName      = errors.New("term name cannot be empty")
	ErrInvalidDates   = errors.New("start date must be before end date")
	ErrEmptyStartDate = errors.New("start date must be YYYY-MM-DD")
	ErrEmptyEndDate   = errors.New("end date must be YYYY-MM-DD")
)

// Term is a teaching term; classes carry their own copy of the active range.
type Term struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

// Validate checks if the Term has valid data.
// PRE: Term struct is populated
// POST: Returns nil if valid, error otherwise
func (t *Term) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if _, err := timezone.ParseDate(t.StartDate); err != nil {
		return ErrEmptyStartDate
	}
	if _, err := timezone.ParseDate(t.EndDate); err != nil {
		return ErrEmptyEndDate
	}
	if t.StartDate >= t.EndDate {
		return ErrInvalidDates
	}
	return nil
}

// Contains returns true if the given YYYY-MM-DD date falls within this term.
// INVARIANT: Term fields are not mutated
func (t *Term) Contains(date string) bool {
	return date >= t.StartDate && date <= t.EndDate
}

// Overlaps reports whether the term shares any day with [from, to].
func (t *Term) Overlaps(from, to string) bool {
	return t.StartDate <= to && t.EndDate >= from
}
