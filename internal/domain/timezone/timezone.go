package timezone

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultZone is substituted whenever a zone name cannot be resolved.
const DefaultZone = "America/Vancouver"

// Layouts for the wall-clock strings stored alongside schedules.
const (
	DateLayout       = "2006-01-02"
	ClockLayout      = "15:04"
	clockLayoutTrail = "15:04:05"
)

// Domain errors
var (
	ErrInvalidDate  = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidClock = errors.New("time must be in HH:MM format")
)

// Converter turns wall-clock times in one named zone into instants and back.
// All schedule and attendance code goes through a Converter so the
// daylight-saving and fallback rules are applied the same way everywhere.
type Converter interface {
	Resolve(name string) *time.Location
	ToInstant(date, clock, zone string) (time.Time, error)
	FromInstant(instant time.Time, zone string) (date, clock string)
	Convert(date, clock, fromZone, toZone string) (string, string, error)
}

// Zones is the Converter used in production. Fallback names the zone used
// when a lookup fails; an empty Fallback means DefaultZone.
type Zones struct {
	Fallback string
}

// Standard is the process-wide converter with the documented default zone.
var Standard Converter = Zones{Fallback: DefaultZone}

// Compile-time check that Zones satisfies Converter.
var _ Converter = Zones{}

// Resolve loads the named IANA zone, substituting the fallback zone when the
// name is empty or unknown. It never fails; UTC is the last resort.
func (z Zones) Resolve(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name != "" && name != "Local" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	fallback := z.Fallback
	if fallback == "" {
		fallback = DefaultZone
	}
	if loc, err := time.LoadLocation(fallback); err == nil {
		return loc
	}
	return time.UTC
}

// ToInstant interprets date+clock as wall-clock time in zone and returns the
// absolute instant, using the UTC offset in force on that date.
// PRE: date is YYYY-MM-DD, clock is HH:MM (HH:MM:SS accepted)
// POST: returns the instant, or an error for malformed input only
func (z Zones) ToInstant(date, clock, zone string) (time.Time, error) {
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	h, m, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), h, m, 0, 0, z.Resolve(zone)), nil
}

// FromInstant renders an instant as date and clock strings in zone.
func (z Zones) FromInstant(instant time.Time, zone string) (string, string) {
	local := instant.In(z.Resolve(zone))
	return local.Format(DateLayout), local.Format(ClockLayout)
}

// Convert returns the wall-clock date and time in toZone that corresponds to
// date+clock in fromZone. It depends only on its four inputs.
func (z Zones) Convert(date, clock, fromZone, toZone string) (string, string, error) {
	instant, err := z.ToInstant(date, clock, fromZone)
	if err != nil {
		return "", "", err
	}
	d, c := z.FromInstant(instant, toZone)
	return d, c, nil
}

// Resolve uses the Standard converter.
func Resolve(name string) *time.Location { return Standard.Resolve(name) }

// ToInstant uses the Standard converter.
func ToInstant(date, clock, zone string) (time.Time, error) {
	return Standard.ToInstant(date, clock, zone)
}

// FromInstant uses the Standard converter.
func FromInstant(instant time.Time, zone string) (string, string) {
	return Standard.FromInstant(instant, zone)
}

// Convert uses the Standard converter.
func Convert(date, clock, fromZone, toZone string) (string, string, error) {
	return Standard.Convert(date, clock, fromZone, toZone)
}

// ParseDate parses a YYYY-MM-DD calendar date at midnight UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// ParseClock parses HH:MM (or HH:MM:SS, as returned by Postgres time
// columns) into hour and minute. Seconds are discarded.
func ParseClock(s string) (hour, minute int, err error) {
	s = strings.TrimSpace(s)
	t, perr := time.Parse(ClockLayout, s)
	if perr != nil {
		t, perr = time.Parse(clockLayoutTrail, s)
	}
	if perr != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return t.Hour(), t.Minute(), nil
}

// MinutesOfDay returns the number of minutes since midnight for an HH:MM clock.
func MinutesOfDay(clock string) (int, error) {
	h, m, err := ParseClock(clock)
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}

// AddDays shifts a YYYY-MM-DD date by n calendar days.
func AddDays(date string, n int) (string, error) {
	d, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return d.AddDate(0, 0, n).Format(DateLayout), nil
}
