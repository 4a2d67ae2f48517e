package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ftebtw/dsdc-sub000/internal/domain/calendar"
)

// CalendarEventStore defines the event persistence needed to create events.
type CalendarEventStore interface {
	Save(ctx context.Context, e calendar.Event) error
}

// CreateCalendarEventInput carries input for creating a club calendar event.
type CreateCalendarEventInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Type        string `json:"type" validate:"required,oneof=event tournament closure"`
	Description string `json:"description" validate:"max=2000"`
	Location    string `json:"location" validate:"max=200"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	CreatedBy   string `json:"created_by" validate:"max=64"`
}

// CreateCalendarEventDeps holds dependencies for CreateCalendarEvent.
type CreateCalendarEventDeps struct {
	EventStore CalendarEventStore
	GenerateID func() string    // nil means uuid
	Now        func() time.Time // nil means time.Now
}

// ExecuteCreateCalendarEvent validates and stores a new calendar event.
// PRE: none
// POST: on success the event is persisted with a fresh ID and CreatedAt in
// UTC; validation failures wrap ErrInvalidInput
func ExecuteCreateCalendarEvent(ctx context.Context, input CreateCalendarEventInput, deps CreateCalendarEventDeps) (calendar.Event, error) {
	input.Title = strings.TrimSpace(input.Title)
	if err := validateInput(input); err != nil {
		return calendar.Event{}, err
	}
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	id := uuid.New().String()
	if deps.GenerateID != nil {
		id = deps.GenerateID()
	}

	e := calendar.Event{
		ID:          id,
		Title:       input.Title,
		Type:        input.Type,
		Description: strings.TrimSpace(input.Description),
		Location:    strings.TrimSpace(input.Location),
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   now().UTC(),
	}
	// A same-day end date is stored as single-day.
	if e.EndDate == e.StartDate {
		e.EndDate = ""
	}
	if err := e.Validate(); err != nil {
		return calendar.Event{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := deps.EventStore.Save(ctx, e); err != nil {
		return calendar.Event{}, fmt.Errorf("failed to save event: %w", err)
	}
	slog.Info("calendar_event_created", "event_id", e.ID, "type", e.Type, "start_date", e.StartDate, "end_date", e.EndDate)
	return e, nil
}
