package payroll

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/ftebtw/dsdc-sub000/internal/domain/timezone"
)

// MaxRangeDays caps the inclusive span of a payroll query.
const MaxRangeDays = 366

// Domain errors
var (
	ErrStartAfterEnd = errors.New("start date must be on or before end date")
	ErrRangeTooLong  = errors.New("date range cannot exceed 366 days")
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// DateRange is an inclusive pair of YYYY-MM-DD dates.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ParseDateRange normalizes optional start/end strings. Missing or malformed
// values default to the first of the current UTC month and today in UTC.
// PRE: now is the request time
// POST: returns a range with Start <= End spanning at most MaxRangeDays,
// or ErrStartAfterEnd / ErrRangeTooLong
func ParseDateRange(start, end string, now time.Time) (DateRange, error) {
	today := now.UTC()
	r := DateRange{
		Start: time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).Format(timezone.DateLayout),
		End:   today.Format(timezone.DateLayout),
	}
	if s, ok := normalizeDate(start); ok {
		r.Start = s
	}
	if e, ok := normalizeDate(end); ok {
		r.End = e
	}
	if r.Start > r.End {
		return DateRange{}, ErrStartAfterEnd
	}
	if r.Days() > MaxRangeDays {
		return DateRange{}, ErrRangeTooLong
	}
	return r, nil
}

// PreviousMonth returns the whole calendar month before now's month, in UTC.
func PreviousMonth(now time.Time) DateRange {
	first := time.Date(now.UTC().Year(), now.UTC().Month(), 1, 0, 0, 0, 0, time.UTC)
	return DateRange{
		Start: first.AddDate(0, -1, 0).Format(timezone.DateLayout),
		End:   first.AddDate(0, 0, -1).Format(timezone.DateLayout),
	}
}

// Days returns the inclusive number of calendar days in the range.
// PRE: Start and End are valid dates
func (r DateRange) Days() int {
	s, err := timezone.ParseDate(r.Start)
	if err != nil {
		return 0
	}
	e, err := timezone.ParseDate(r.End)
	if err != nil {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// Contains reports whether a YYYY-MM-DD date lies inside the range.
func (r DateRange) Contains(date string) bool {
	return date >= r.Start && date <= r.End
}

// IsValidationError reports whether err is a date-range validation failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrStartAfterEnd) || errors.Is(err, ErrRangeTooLong)
}

func normalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !datePattern.MatchString(s) {
		return "", false
	}
	if _, err := timezone.ParseDate(s); err != nil {
		return "", false
	}
	return s, true
}
