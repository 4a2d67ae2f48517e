package calendar

import (
	"errors"
	"time"

	"github.com/ftebtw/dsdc-sub000/internal/domain/timezone"
)

// Event type constants.
const (
	TypeEvent      = "event"      // club event (showcase, parent evening)
	TypeTournament = "tournament" // external tournament students attend
	TypeClosure    = "closure"    // no classes run
)

// Max length constants.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
	MaxLocationLength    = 200
)

// Event is a dated club calendar entry. Dates are whole days and are shown
// on the same date key for every viewer.
// INVARIANT: EndDate >= StartDate when EndDate is set.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	StartDate   string    `json:"start_date"`         // YYYY-MM-DD
	EndDate     string    `json:"end_date,omitempty"` // empty means single-day
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate checks the event's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (e *Event) Validate() error {
	if e.Title == "" {
		return errors.New("event title cannot be empty")
	}
	if len(e.Title) > MaxTitleLength {
		return errors.New("event title cannot exceed 200 characters")
	}
	if e.Type != TypeEvent && e.Type != TypeTournament && e.Type != TypeClosure {
		return errors.New("event type must be 'event', 'tournament' or 'closure'")
	}
	if _, err := timezone.ParseDate(e.StartDate); err != nil {
		return errors.New("event start date is required")
	}
	if e.EndDate != "" {
		if _, err := timezone.ParseDate(e.EndDate); err != nil {
			return errors.New("event end date must be YYYY-MM-DD")
		}
		if e.EndDate < e.StartDate {
			return errors.New("event end date cannot be before start date")
		}
	}
	if len(e.Description) > MaxDescriptionLength {
		return errors.New("event description cannot exceed 2000 characters")
	}
	if len(e.Location) > MaxLocationLength {
		return errors.New("event location cannot exceed 200 characters")
	}
	return nil
}

// LastDate returns EndDate, or StartDate for single-day events.
func (e *Event) LastDate() string {
	if e.EndDate == "" {
		return e.StartDate
	}
	return e.EndDate
}

// IsMultiDay returns true if the event spans more than one day.
func (e *Event) IsMultiDay() bool {
	return e.LastDate() != e.StartDate
}

// DatesWithin lists the event's days that fall inside [from, to].
// PRE: event is valid
func (e *Event) DatesWithin(from, to string) []string {
	var out []string
	date := e.StartDate
	if date < from {
		date = from
	}
	last := e.LastDate()
	if last > to {
		last = to
	}
	for date <= last {
		out = append(out, date)
		next, err := timezone.AddDays(date, 1)
		if err != nil {
			break
		}
		date = next
	}
	return out
}
