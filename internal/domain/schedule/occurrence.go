package schedule

import (
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/ftebtw/dsdc-sub000/internal/domain/timezone"
)

// ErrInvalidWindow is returned when a projection window is malformed.
var ErrInvalidWindow = errors.New("window must be two YYYY-MM-DD dates with from <= to")

// zoneShiftDays bounds how far a conversion can move a wall-clock date.
// UTC offsets span -12h..+14h, so two zones differ by at most 26 hours.
const zoneShiftDays = 2

// Occurrence is one concrete meeting of a Class, expressed in the viewer's
// zone. Date is the calendar cell it belongs to.
type Occurrence struct {
	ClassID        string    `json:"class_id"`
	ClassName      string    `json:"class_name"`
	ClassType      string    `json:"class_type"`
	CoachID        string    `json:"coach_id"`
	SourceDate     string    `json:"source_date"`     // class-local date
	SourceStart    string    `json:"source_start"`    // class-local HH:MM
	SourceEnd      string    `json:"source_end"`      // class-local HH:MM
	SourceTimezone string    `json:"source_timezone"` // class zone
	Date           string    `json:"date"`            // viewer-local date of the start
	StartTime      string    `json:"start_time"`      // viewer-local HH:MM
	EndDate        string    `json:"end_date"`        // viewer-local date of the end
	EndTime        string    `json:"end_time"`        // viewer-local HH:MM
	Timezone       string    `json:"timezone"`        // viewer zone
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
}

// Project expands classes into occurrences whose viewer-local start date
// falls inside [from, to]. Classes are walked on their own calendar and each
// meeting is then converted, so a meeting that lands on a different viewer
// date is filed under that date. Output order follows input order.
// PRE: from and to are YYYY-MM-DD in the viewer's frame, from <= to
// POST: returns occurrences for every in-term meeting that lands in the window
func Project(conv timezone.Converter, classes []Class, viewerZone, from, to string) ([]Occurrence, error) {
	fromDate, err := timezone.ParseDate(from)
	if err != nil {
		return nil, ErrInvalidWindow
	}
	toDate, err := timezone.ParseDate(to)
	if err != nil {
		return nil, ErrInvalidWindow
	}
	if toDate.Before(fromDate) {
		return nil, ErrInvalidWindow
	}
	if conv == nil {
		conv = timezone.Standard
	}
	viewer := conv.Resolve(viewerZone).String()

	scanFrom := fromDate.AddDate(0, 0, -zoneShiftDays)
	scanTo := toDate.AddDate(0, 0, zoneShiftDays)

	var out []Occurrence
	for _, c := range classes {
		wd, ok := c.Weekday()
		if !ok {
			slog.Warn("class_invalid_day", "class_id", c.ID, "day", c.Day)
			continue
		}
		if !termIntersects(c, scanFrom.Format(timezone.DateLayout), scanTo.Format(timezone.DateLayout)) {
			continue
		}
		source := c.Timezone
		for d := firstWeekday(scanFrom, wd); !d.After(scanTo); d = d.AddDate(0, 0, 7) {
			date := d.Format(timezone.DateLayout)
			if !c.InTerm(date) {
				continue
			}
			start, err := conv.ToInstant(date, c.StartTime, source)
			if err != nil {
				slog.Warn("class_invalid_time", "class_id", c.ID, "error", err)
				break
			}
			end, err := conv.ToInstant(date, c.EndTime, source)
			if err != nil {
				slog.Warn("class_invalid_time", "class_id", c.ID, "error", err)
				break
			}
			if !end.After(start) {
				end = end.Add(24 * time.Hour)
			}
			startDate, startClock := conv.FromInstant(start, viewer)
			if startDate < from || startDate > to {
				continue
			}
			endDate, endClock := conv.FromInstant(end, viewer)
			out = append(out, Occurrence{
				ClassID:        c.ID,
				ClassName:      c.Name,
				ClassType:      c.ClassType,
				CoachID:        c.CoachID,
				SourceDate:     date,
				SourceStart:    c.StartTime,
				SourceEnd:      c.EndTime,
				SourceTimezone: conv.Resolve(source).String(),
				Date:           startDate,
				StartTime:      startClock,
				EndDate:        endDate,
				EndTime:        endClock,
				Timezone:       viewer,
				Start:          start.UTC(),
				End:            end.UTC(),
			})
		}
	}
	return out, nil
}

// GroupByDate files occurrences under their viewer-local date key.
func GroupByDate(occurrences []Occurrence) map[string][]Occurrence {
	cells := make(map[string][]Occurrence)
	for _, o := range occurrences {
		cells[o.Date] = append(cells[o.Date], o)
	}
	return cells
}

// SortByStart orders occurrences by viewer-local start, then class name.
func SortByStart(occurrences []Occurrence) {
	sort.SliceStable(occurrences, func(i, j int) bool {
		if !occurrences[i].Start.Equal(occurrences[j].Start) {
			return occurrences[i].Start.Before(occurrences[j].Start)
		}
		return occurrences[i].ClassName < occurrences[j].ClassName
	})
}

func termIntersects(c Class, from, to string) bool {
	if c.TermEnd != "" && c.TermEnd < from {
		return false
	}
	if c.TermStart != "" && c.TermStart > to {
		return false
	}
	return true
}

func firstWeekday(from time.Time, wd time.Weekday) time.Time {
	delta := (int(wd) - int(from.Weekday()) + 7) % 7
	return from.AddDate(0, 0, delta)
}
