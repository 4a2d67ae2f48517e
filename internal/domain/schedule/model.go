package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ftebtw/dsdc-sub000/internal/domain/timezone"
)

// Day of week constants
const (
	Monday    = "monday"
	Tuesday   = "tuesday"
	Wednesday = "wednesday"
	Thursday  = "thursday"
	Friday    = "friday"
	Saturday  = "saturday"
	Sunday    = "sunday"
)

// ValidDays contains all valid day values.
var ValidDays = []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdays = map[string]time.Weekday{
	Monday:    time.Monday,
	Tuesday:   time.Tuesday,
	Wednesday: time.Wednesday,
	Thursday:  time.Thursday,
	Friday:    time.Friday,
	Saturday:  time.Saturday,
	Sunday:    time.Sunday,
}

// Domain errors
var (
	ErrEmptyName       = errors.New("class name cannot be empty")
	ErrEmptyCoachID    = errors.New("coach ID cannot be empty")
	ErrInvalidDay      = errors.New("day must be a valid day of the week")
	ErrEmptyStartTime  = errors.New("start time cannot be empty")
	ErrEmptyEndTime    = errors.New("end time cannot be empty")
	ErrEndBeforeStart  = errors.New("end time must be after start time")
	ErrInvalidTermDate = errors.New("term dates must be YYYY-MM-DD")
	ErrTermInverted    = errors.New("term start must not be after term end")
)

// Class is a weekly recurring class: one weekday, a local start and end
// time, and the IANA zone those times are expressed in. Concrete sessions are
// derived on the fly for any window; they are never stored.
type Class struct {
	ID        string
	Name      string
	ClassType string
	CoachID   string
	Day       string // monday, tuesday, etc.
	StartTime string // HH:MM in Timezone
	EndTime   string // HH:MM in Timezone
	Timezone  string // IANA name
	TermStart string // YYYY-MM-DD, empty means open
	TermEnd   string // YYYY-MM-DD, empty means open
}

// Validate checks if the Class has valid data.
// PRE: Class struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Class) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(c.CoachID) == "" {
		return ErrEmptyCoachID
	}
	if _, ok := ParseDay(c.Day); !ok {
		return ErrInvalidDay
	}
	if strings.TrimSpace(c.StartTime) == "" {
		return ErrEmptyStartTime
	}
	if strings.TrimSpace(c.EndTime) == "" {
		return ErrEmptyEndTime
	}
	start, err := timezone.MinutesOfDay(c.StartTime)
	if err != nil {
		return err
	}
	end, err := timezone.MinutesOfDay(c.EndTime)
	if err != nil {
		return err
	}
	// Classes never span midnight.
	if end <= start {
		return ErrEndBeforeStart
	}
	for _, d := range []string{c.TermStart, c.TermEnd} {
		if d == "" {
			continue
		}
		if _, err := timezone.ParseDate(d); err != nil {
			return ErrInvalidTermDate
		}
	}
	if c.TermStart != "" && c.TermEnd != "" && c.TermStart > c.TermEnd {
		return ErrTermInverted
	}
	return nil
}

// InTerm reports whether a class-local date falls inside the active range.
func (c *Class) InTerm(date string) bool {
	if c.TermStart != "" && date < c.TermStart {
		return false
	}
	if c.TermEnd != "" && date > c.TermEnd {
		return false
	}
	return true
}

// Weekday returns the class weekday.
func (c *Class) Weekday() (time.Weekday, bool) {
	return ParseDay(c.Day)
}

// DurationHours returns the scheduled session length in hours.
// PRE: StartTime and EndTime are in HH:MM format
// POST: Returns duration as float64 hours, or error if times can't be parsed
func (c *Class) DurationHours() (float64, error) {
	return DurationHours(c.StartTime, c.EndTime)
}

// DurationHours returns end minus start in hours. A non-positive difference
// wraps past midnight, so the result is always in (0, 24].
func DurationHours(startTime, endTime string) (float64, error) {
	start, err := timezone.MinutesOfDay(startTime)
	if err != nil {
		return 0, fmt.Errorf("invalid start time %q: %w", startTime, err)
	}
	end, err := timezone.MinutesOfDay(endTime)
	if err != nil {
		return 0, fmt.Errorf("invalid end time %q: %w", endTime, err)
	}
	minutes := end - start
	if minutes <= 0 {
		minutes += 24 * 60
	}
	return float64(minutes) / 60, nil
}

// ParseDay maps a day name (any case) to its weekday.
func ParseDay(day string) (time.Weekday, bool) {
	wd, ok := weekdays[strings.ToLower(strings.TrimSpace(day))]
	return wd, ok
}
