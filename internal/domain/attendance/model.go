package attendance

import (
	"errors"
	"time"

	"github.com/ftebtw/dsdc-sub000/internal/domain/timezone"
)

// GracePeriod is how long after the scheduled start a check-in still counts
// as on time.
const GracePeriod = 10 * time.Minute

// Domain errors
var (
	ErrEmptyCoachID     = errors.New("check-in must be associated with a coach")
	ErrEmptyClassID     = errors.New("check-in must be associated with a class")
	ErrInvalidDate      = errors.New("session date must be YYYY-MM-DD")
	ErrEmptyCheckInTime = errors.New("check-in time must be set")
)

// CheckIn records a coach arriving for one meeting of a class.
// SessionDate is the meeting's date in the class's own zone.
// Check-ins are immutable once recorded.
type CheckIn struct {
	ID          string    `json:"id"`
	CoachID     string    `json:"coach_id"`
	ClassID     string    `json:"class_id"`
	SessionDate string    `json:"session_date"` // YYYY-MM-DD
	CheckedInAt time.Time `json:"checked_in_at"`
}

// Validate checks if the CheckIn has valid data.
// PRE: CheckIn struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (c *CheckIn) Validate() error {
	if c.CoachID == "" {
		return ErrEmptyCoachID
	}
	if c.ClassID == "" {
		return ErrEmptyClassID
	}
	if _, err := timezone.ParseDate(c.SessionDate); err != nil {
		return ErrInvalidDate
	}
	if c.CheckedInAt.IsZero() {
		return ErrEmptyCheckInTime
	}
	return nil
}

// IsLate reports whether checkedInAt is strictly later than the scheduled
// start plus GracePeriod. The scheduled start is sessionDate+startTime
// interpreted in classZone, so the comparison is between instants.
// PRE: sessionDate is YYYY-MM-DD, startTime is HH:MM
// POST: returns true iff checkedInAt > start + GracePeriod
func IsLate(checkedInAt time.Time, sessionDate, startTime, classZone string) (bool, error) {
	return IsLateWith(timezone.Standard, checkedInAt, sessionDate, startTime, classZone)
}

// IsLateWith is IsLate using an explicit converter.
func IsLateWith(conv timezone.Converter, checkedInAt time.Time, sessionDate, startTime, classZone string) (bool, error) {
	start, err := conv.ToInstant(sessionDate, startTime, classZone)
	if err != nil {
		return false, err
	}
	return checkedInAt.After(start.Add(GracePeriod)), nil
}
