package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ftebtw/dsdc-sub000/internal/application/listutil"
	"github.com/ftebtw/dsdc-sub000/internal/domain/attendance"
	"github.com/ftebtw/dsdc-sub000/internal/domain/schedule"
	"github.com/ftebtw/dsdc-sub000/internal/domain/timezone"
)

// Check-in rejections.
var (
	ErrClassNotFound     = errors.New("class not found")
	ErrCoachNotAssigned  = errors.New("coach is not assigned to this class")
	ErrNotScheduledToday = errors.New("class does not meet today")
	ErrOutsideTerm       = errors.New("class is not running on this date")
)

// CheckInClassStore defines the class lookup needed for check-in.
type CheckInClassStore interface {
	FindByID(ctx context.Context, id string) (listutil.Optional[schedule.Class], error)
}

// CheckInStore defines the check-in persistence needed for check-in.
type CheckInStore interface {
	Save(ctx context.Context, c attendance.CheckIn) error
	FindByCoachClassDate(ctx context.Context, coachID, classID, sessionDate string) (listutil.Optional[attendance.CheckIn], error)
}

// RecordCheckInInput carries input for the check-in orchestrator.
type RecordCheckInInput struct {
	CoachID string `json:"coach_id" validate:"required,max=64"`
	ClassID string `json:"class_id" validate:"required,max=64"`
}

// RecordCheckInDeps holds dependencies for RecordCheckIn.
type RecordCheckInDeps struct {
	ClassStore   CheckInClassStore
	CheckInStore CheckInStore
	Converter    timezone.Converter // nil means timezone.Standard
	GenerateID   func() string      // nil means uuid
	Now          func() time.Time   // nil means time.Now
}

// RecordCheckInResult is the stored check-in and how it was classified.
type RecordCheckInResult struct {
	CheckIn  attendance.CheckIn `json:"check_in"`
	Late     bool               `json:"late"`
	Existing bool               `json:"existing"` // an earlier check-in for the same meeting was returned
}

// ExecuteRecordCheckIn records a coach arriving for today's meeting of a class.
// The session date is the current date in the class's own zone, so a coach
// checking in from another zone still lands on the class's meeting.
// PRE: none
// POST: at most one check-in exists per (coach, class, session date) written
// through this path; a repeat returns the first with Existing set
func ExecuteRecordCheckIn(ctx context.Context, input RecordCheckInInput, deps RecordCheckInDeps) (RecordCheckInResult, error) {
	if err := validateInput(input); err != nil {
		return RecordCheckInResult{}, err
	}
	conv := deps.Converter
	if conv == nil {
		conv = timezone.Standard
	}
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	newID := func() string { return uuid.New().String() }
	if deps.GenerateID != nil {
		newID = deps.GenerateID
	}

	found, err := deps.ClassStore.FindByID(ctx, input.ClassID)
	if err != nil {
		return RecordCheckInResult{}, fmt.Errorf("failed to load class: %w", err)
	}
	class, ok := found.First()
	if !ok {
		return RecordCheckInResult{}, ErrClassNotFound
	}
	if class.CoachID != input.CoachID {
		return RecordCheckInResult{}, ErrCoachNotAssigned
	}

	at := now()
	sessionDate, _ := conv.FromInstant(at, class.Timezone)
	day, err := timezone.ParseDate(sessionDate)
	if err != nil {
		return RecordCheckInResult{}, err
	}
	if wd, ok := class.Weekday(); !ok || wd != day.Weekday() {
		return RecordCheckInResult{}, ErrNotScheduledToday
	}
	if !class.InTerm(sessionDate) {
		return RecordCheckInResult{}, ErrOutsideTerm
	}

	prior, err := deps.CheckInStore.FindByCoachClassDate(ctx, input.CoachID, input.ClassID, sessionDate)
	if err != nil {
		return RecordCheckInResult{}, fmt.Errorf("failed to look up check-in: %w", err)
	}
	if existing, ok := prior.First(); ok {
		late, err := attendance.IsLateWith(conv, existing.CheckedInAt, existing.SessionDate, class.StartTime, class.Timezone)
		if err != nil {
			return RecordCheckInResult{}, err
		}
		return RecordCheckInResult{CheckIn: existing, Late: late, Existing: true}, nil
	}

	c := attendance.CheckIn{
		ID:          newID(),
		CoachID:     input.CoachID,
		ClassID:     input.ClassID,
		SessionDate: sessionDate,
		CheckedInAt: at.UTC(),
	}
	if err := c.Validate(); err != nil {
		return RecordCheckInResult{}, err
	}
	late, err := attendance.IsLateWith(conv, c.CheckedInAt, sessionDate, class.StartTime, class.Timezone)
	if err != nil {
		return RecordCheckInResult{}, err
	}
	if err := deps.CheckInStore.Save(ctx, c); err != nil {
		return RecordCheckInResult{}, fmt.Errorf("failed to save check-in: %w", err)
	}

	slog.Info("checkin_event", "event", "coach_checked_in", "coach_id", c.CoachID, "class_id", c.ClassID, "session_date", sessionDate, "late", late)
	return RecordCheckInResult{CheckIn: c, Late: late}, nil
}
