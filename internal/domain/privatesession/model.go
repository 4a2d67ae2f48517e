package privatesession

import (
	"errors"
	"time"

	"github.com/ftebtw/dsdc-sub000/internal/domain/timezone"
)

// Status constants.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Domain errors.
var (
	ErrEmptyCoachID   = errors.New("coach ID cannot be empty")
	ErrEmptyStudentID = errors.New("student ID cannot be empty")
	ErrInvalidDate    = errors.New("requested date must be YYYY-MM-DD")
	ErrInvalidStatus  = errors.New("status must be pending, confirmed, completed or cancelled")
	ErrNegativePrice  = errors.New("price cannot be negative")
)

// Session is a one-to-one coaching session requested by a student.
// Only completed sessions count toward payroll.
type Session struct {
	ID            string
	CoachID       string
	StudentID     string
	RequestedDate string // YYYY-MM-DD in Timezone
	StartTime     string // HH:MM
	EndTime       string // HH:MM
	Timezone      string
	Status        string
	Price         *float64   // fixed price, nil when not agreed
	CompletedAt   *time.Time // nil when completion was not stamped
}

// Validate checks the session invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (s *Session) Validate() error {
	if s.CoachID == "" {
		return ErrEmptyCoachID
	}
	if s.StudentID == "" {
		return ErrEmptyStudentID
	}
	if _, err := timezone.ParseDate(s.RequestedDate); err != nil {
		return ErrInvalidDate
	}
	if _, err := timezone.MinutesOfDay(s.StartTime); err != nil {
		return err
	}
	if _, err := timezone.MinutesOfDay(s.EndTime); err != nil {
		return err
	}
	switch s.Status {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
	default:
		return ErrInvalidStatus
	}
	if s.Price != nil && *s.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}

// IsCompleted returns true if the session counts toward payroll.
func (s *Session) IsCompleted() bool {
	return s.Status == StatusCompleted
}

// ScheduledStart returns the instant the session was booked to begin.
func (s *Session) ScheduledStart(conv timezone.Converter) (time.Time, error) {
	return conv.ToInstant(s.RequestedDate, s.StartTime, s.Timezone)
}

// PayableAt returns the completion stamp, falling back to the scheduled start.
func (s *Session) PayableAt(conv timezone.Converter) (time.Time, error) {
	if s.CompletedAt != nil && !s.CompletedAt.IsZero() {
		return *s.CompletedAt, nil
	}
	return s.ScheduledStart(conv)
}
