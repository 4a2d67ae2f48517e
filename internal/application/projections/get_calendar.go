package projections

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	scheduleStore "github.com/ftebtw/dsdc-sub000/internal/adapters/storage/schedule"
	"github.com/ftebtw/dsdc-sub000/internal/domain/calendar"
	"github.com/ftebtw/dsdc-sub000/internal/domain/payroll"
	"github.com/ftebtw/dsdc-sub000/internal/domain/schedule"
	"github.com/ftebtw/dsdc-sub000/internal/domain/term"
	"github.com/ftebtw/dsdc-sub000/internal/domain/timezone"
)

// ErrCalendarWindowTooLong is returned for windows longer than payroll.MaxRangeDays.
var ErrCalendarWindowTooLong = errors.New("calendar window cannot exceed 366 days")

// CalendarClassStore defines the class lookup needed by the calendar.
type CalendarClassStore interface {
	List(ctx context.Context, filter scheduleStore.ListFilter) ([]schedule.Class, error)
}

// CalendarEventStore defines the event lookup needed by the calendar.
type CalendarEventStore interface {
	ListByDateRange(ctx context.Context, from, to string) ([]calendar.Event, error)
}

// CalendarTermStore defines the term lookup needed by the calendar.
type CalendarTermStore interface {
	ListOverlapping(ctx context.Context, from, to string) ([]term.Term, error)
}

// GetCalendarDeps holds dependencies for the projection.
type GetCalendarDeps struct {
	ClassStore CalendarClassStore
	EventStore CalendarEventStore
	TermStore  CalendarTermStore
	Converter  timezone.Converter // nil means timezone.Standard
}

// CalendarFilter narrows the classes shown. Events and terms are never filtered.
type CalendarFilter struct {
	ClassType string
	CoachID   string
}

// CalendarQuery is a window of viewer-local dates.
type CalendarQuery struct {
	From           string
	To             string
	ViewerTimezone string
	Filter         CalendarFilter
}

// CalendarDay is one grid cell.
type CalendarDay struct {
	Date    string                `json:"date"`
	Closed  bool                  `json:"closed"`
	Classes []schedule.Occurrence `json:"classes"`
	Events  []calendar.Event      `json:"events"`
}

// TermInfo describes a term overlapping the window.
type TermInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Current   bool   `json:"current"` // the window's first day falls inside the term
}

// CalendarResult is keyed by viewer-local date; every date in the window has
// an entry, empty or not.
type CalendarResult struct {
	From     string                 `json:"from"`
	To       string                 `json:"to"`
	Timezone string                 `json:"timezone"`
	Days     map[string]CalendarDay `json:"days"`
	Terms    []TermInfo             `json:"terms"`
}

// QueryGetCalendar places class occurrences and club events on the viewer's
// calendar grid.
// Algorithm: 1) validate the window, 2) concurrently load filtered classes,
// events and overlapping terms, 3) project classes into the viewer zone, 4) bucket
// occurrences by converted date sorted by start, and events by every day they
// cover.
// PRE: none
// POST: returns schedule.ErrInvalidWindow or ErrCalendarWindowTooLong before
// any store call when the window is malformed
func QueryGetCalendar(ctx context.Context, q CalendarQuery, deps GetCalendarDeps) (CalendarResult, error) {
	conv := deps.Converter
	if conv == nil {
		conv = timezone.Standard
	}
	fromDate, err := timezone.ParseDate(q.From)
	if err != nil {
		return CalendarResult{}, schedule.ErrInvalidWindow
	}
	toDate, err := timezone.ParseDate(q.To)
	if err != nil || toDate.Before(fromDate) {
		return CalendarResult{}, schedule.ErrInvalidWindow
	}
	if (payroll.DateRange{Start: q.From, End: q.To}).Days() > payroll.MaxRangeDays {
		return CalendarResult{}, ErrCalendarWindowTooLong
	}

	var (
		classes []schedule.Class
		events  []calendar.Event
		terms   []term.Term
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := deps.ClassStore.List(gctx, scheduleStore.ListFilter{ClassType: q.Filter.ClassType, CoachID: q.Filter.CoachID})
		if err != nil {
			return fmt.Errorf("failed to load classes: %w", err)
		}
		classes = rows
		return nil
	})
	g.Go(func() error {
		rows, err := deps.EventStore.ListByDateRange(gctx, q.From, q.To)
		if err != nil {
			return fmt.Errorf("failed to load events: %w", err)
		}
		events = rows
		return nil
	})
	g.Go(func() error {
		rows, err := deps.TermStore.ListOverlapping(gctx, q.From, q.To)
		if err != nil {
			return fmt.Errorf("failed to load terms: %w", err)
		}
		terms = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return CalendarResult{}, err
	}

	occurrences, err := schedule.Project(conv, classes, q.ViewerTimezone, q.From, q.To)
	if err != nil {
		return CalendarResult{}, err
	}

	result := CalendarResult{
		From:     q.From,
		To:       q.To,
		Timezone: conv.Resolve(q.ViewerTimezone).String(),
		Days:     make(map[string]CalendarDay),
		Terms:    make([]TermInfo, 0, len(terms)),
	}
	for date := q.From; date <= q.To; {
		result.Days[date] = CalendarDay{Date: date, Classes: []schedule.Occurrence{}, Events: []calendar.Event{}}
		if date, err = timezone.AddDays(date, 1); err != nil {
			return CalendarResult{}, err
		}
	}

	for date, occ := range schedule.GroupByDate(occurrences) {
		day, ok := result.Days[date]
		if !ok {
			continue
		}
		schedule.SortByStart(occ)
		day.Classes = occ
		result.Days[date] = day
	}

	for _, e := range events {
		for _, date := range e.DatesWithin(q.From, q.To) {
			day := result.Days[date]
			day.Events = append(day.Events, e)
			if e.Type == calendar.TypeClosure {
				day.Closed = true
			}
			result.Days[date] = day
		}
	}

	for _, t := range terms {
		result.Terms = append(result.Terms, TermInfo{
			ID:        t.ID,
			Name:      t.Name,
			StartDate: t.StartDate,
			EndDate:   t.EndDate,
			Current:   t.Contains(q.From),
		})
	}
	return result, nil
}
