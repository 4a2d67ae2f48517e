package projections

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	attendanceStore "github.com/ftebtw/dsdc-sub000/internal/adapters/storage/attendance"
	"github.com/ftebtw/dsdc-sub000/internal/application/listutil"
	"github.com/ftebtw/dsdc-sub000/internal/domain/attendance"
	"github.com/ftebtw/dsdc-sub000/internal/domain/coach"
	"github.com/ftebtw/dsdc-sub000/internal/domain/payroll"
	"github.com/ftebtw/dsdc-sub000/internal/domain/privatesession"
	"github.com/ftebtw/dsdc-sub000/internal/domain/profile"
	"github.com/ftebtw/dsdc-sub000/internal/domain/schedule"
	"github.com/ftebtw/dsdc-sub000/internal/domain/timezone"
)

// PayrollCoachStore defines the coach lookups needed by payroll.
type PayrollCoachStore interface {
	ListProfiles(ctx context.Context, coachID string) ([]coach.Profile, error)
	ListTierAssignments(ctx context.Context, coachIDs []string) ([]coach.TierAssignment, error)
}

// PayrollCheckInStore defines the check-in lookup needed by payroll.
type PayrollCheckInStore interface {
	ListByDateRange(ctx context.Context, filter attendanceStore.RangeFilter) ([]attendance.CheckIn, error)
}

// PayrollPrivateSessionStore defines the private session lookup needed by payroll.
type PayrollPrivateSessionStore interface {
	ListCompletedByDateRange(ctx context.Context, start, end string, coachIDs []string) ([]privatesession.Session, error)
}

// PayrollClassStore defines the class lookup needed by payroll.
type PayrollClassStore interface {
	ListByIDs(ctx context.Context, ids []string) ([]schedule.Class, error)
}

// PayrollProfileStore defines the name lookup needed by payroll.
type PayrollProfileStore interface {
	ListByIDs(ctx context.Context, ids []string) ([]profile.Profile, error)
}

// GetPayrollDatasetDeps holds dependencies for the projection.
type GetPayrollDatasetDeps struct {
	CoachStore          PayrollCoachStore
	CheckInStore        PayrollCheckInStore
	PrivateSessionStore PayrollPrivateSessionStore
	ClassStore          PayrollClassStore
	ProfileStore        PayrollProfileStore
	Converter           timezone.Converter // nil means timezone.Standard
}

// PayrollQuery selects the payroll window and optionally a single coach.
type PayrollQuery struct {
	Range   payroll.DateRange
	CoachID string
}

// QueryGetPayrollDataset builds the per-session ledger and per-coach summary
// for the range.
// Algorithm: 1) load coach pay profiles, returning an empty dataset when there
// are none, 2) concurrently load check-ins, completed private sessions and
// tier assignments for those coaches, 3) concurrently resolve the classes the
// check-ins reference and the coach and student profiles, 4) build session
// rows, dropping any whose class or profile is missing, 5) fold into the
// dataset.
// PRE: q.Range has been validated by payroll.ParseDateRange
// POST: on error no partial dataset is returned
func QueryGetPayrollDataset(ctx context.Context, q PayrollQuery, deps GetPayrollDatasetDeps) (payroll.Dataset, error) {
	conv := deps.Converter
	if conv == nil {
		conv = timezone.Standard
	}

	profiles, err := deps.CoachStore.ListProfiles(ctx, q.CoachID)
	if err != nil {
		return payroll.Dataset{}, fmt.Errorf("failed to load coach profiles: %w", err)
	}
	if len(profiles) == 0 {
		return payroll.EmptyDataset(q.Range), nil
	}
	coachIDs := listutil.Unique(profiles, func(p coach.Profile) string { return p.CoachID })

	var (
		checkIns []attendance.CheckIn
		sessions []privatesession.Session
		tierRows []coach.TierAssignment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := deps.CheckInStore.ListByDateRange(gctx, attendanceStore.RangeFilter{
			Start:    q.Range.Start,
			End:      q.Range.End,
			CoachIDs: coachIDs,
		})
		if err != nil {
			return fmt.Errorf("failed to load check-ins: %w", err)
		}
		checkIns = rows
		return nil
	})
	g.Go(func() error {
		rows, err := deps.PrivateSessionStore.ListCompletedByDateRange(gctx, q.Range.Start, q.Range.End, coachIDs)
		if err != nil {
			return fmt.Errorf("failed to load private sessions: %w", err)
		}
		sessions = rows
		return nil
	})
	g.Go(func() error {
		rows, err := deps.CoachStore.ListTierAssignments(gctx, coachIDs)
		if err != nil {
			return fmt.Errorf("failed to load tier assignments: %w", err)
		}
		tierRows = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return payroll.Dataset{}, err
	}

	classIDs := listutil.Unique(checkIns, func(c attendance.CheckIn) string { return c.ClassID })
	personIDs := append(append([]string{}, coachIDs...),
		listutil.Unique(sessions, func(s privatesession.Session) string { return s.StudentID })...)

	var (
		classes []schedule.Class
		people  []profile.Profile
	)
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := deps.ClassStore.ListByIDs(gctx, classIDs)
		if err != nil {
			return fmt.Errorf("failed to load classes: %w", err)
		}
		classes = rows
		return nil
	})
	g.Go(func() error {
		rows, err := deps.ProfileStore.ListByIDs(gctx, listutil.Unique(personIDs, func(id string) string { return id }))
		if err != nil {
			return fmt.Errorf("failed to load profiles: %w", err)
		}
		people = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return payroll.Dataset{}, err
	}

	classByID := listutil.NewIndex(classes, func(c schedule.Class) string { return c.ID })
	personByID := listutil.NewIndex(people, func(p profile.Profile) string { return p.ID })
	tiers := coach.GroupTiers(tierRows)

	coaches := make([]payroll.Coach, 0, len(profiles))
	for _, p := range profiles {
		c := payroll.Coach{
			CoachID:    p.CoachID,
			Name:       p.CoachID,
			HourlyRate: p.HourlyRate,
			IsTA:       p.IsTA,
			Tiers:      coach.ResolveTiers(tiers[p.CoachID], p.LegacyTier),
		}
		if person, ok := personByID.Get(p.CoachID).First(); ok {
			c.Name = person.Name()
			c.Email = person.Email
		}
		coaches = append(coaches, c)
	}
	coachByID := listutil.NewIndex(coaches, func(c payroll.Coach) string { return c.CoachID })

	rows := make([]payroll.SessionRow, 0, len(checkIns)+len(sessions))
	for _, ci := range checkIns {
		row, ok := checkInRow(conv, ci, classByID, coachByID)
		if ok {
			rows = append(rows, row)
		}
	}
	for _, s := range sessions {
		row, ok := privateSessionRow(conv, s, personByID, coachByID)
		if ok {
			rows = append(rows, row)
		}
	}

	ds := payroll.Build(q.Range, coaches, rows)
	slog.Info("payroll_dataset_built",
		"start", q.Range.Start,
		"end", q.Range.End,
		"coach_id", q.CoachID,
		"coaches", len(ds.Summary),
		"sessions", len(ds.Sessions),
		"dropped", len(checkIns)+len(sessions)-len(ds.Sessions),
	)
	return ds, nil
}

func checkInRow(conv timezone.Converter, ci attendance.CheckIn, classes listutil.Index[schedule.Class], coaches listutil.Index[payroll.Coach]) (payroll.SessionRow, bool) {
	class, ok := classes.Get(ci.ClassID).First()
	if !ok {
		return payroll.SessionRow{}, false
	}
	c, ok := coaches.Get(ci.CoachID).First()
	if !ok {
		return payroll.SessionRow{}, false
	}
	hours, err := class.DurationHours()
	if err != nil {
		slog.Warn("payroll_row_skipped", "check_in_id", ci.ID, "class_id", class.ID, "error", err)
		return payroll.SessionRow{}, false
	}
	late, err := attendance.IsLateWith(conv, ci.CheckedInAt, ci.SessionDate, class.StartTime, class.Timezone)
	if err != nil {
		slog.Warn("payroll_row_skipped", "check_in_id", ci.ID, "class_id", class.ID, "error", err)
		return payroll.SessionRow{}, false
	}
	return payroll.SessionRow{
		ID:          ci.ID,
		CoachID:     c.CoachID,
		CoachName:   c.Name,
		CoachEmail:  c.Email,
		ClassID:     class.ID,
		ClassName:   class.Name,
		SessionDate: ci.SessionDate,
		StartTime:   class.StartTime,
		EndTime:     class.EndTime,
		Timezone:    conv.Resolve(class.Timezone).String(),
		CheckedInAt: ci.CheckedInAt,
		Hours:       hours,
		Late:        late,
	}, true
}

func privateSessionRow(conv timezone.Converter, s privatesession.Session, people listutil.Index[profile.Profile], coaches listutil.Index[payroll.Coach]) (payroll.SessionRow, bool) {
	if !s.IsCompleted() {
		return payroll.SessionRow{}, false
	}
	student, ok := people.Get(s.StudentID).First()
	if !ok {
		return payroll.SessionRow{}, false
	}
	c, ok := coaches.Get(s.CoachID).First()
	if !ok {
		return payroll.SessionRow{}, false
	}
	hours, err := schedule.DurationHours(s.StartTime, s.EndTime)
	if err != nil {
		slog.Warn("payroll_row_skipped", "private_session_id", s.ID, "error", err)
		return payroll.SessionRow{}, false
	}
	at, err := s.PayableAt(conv)
	if err != nil {
		slog.Warn("payroll_row_skipped", "private_session_id", s.ID, "error", err)
		return payroll.SessionRow{}, false
	}
	return payroll.SessionRow{
		ID:               s.ID,
		CoachID:          c.CoachID,
		CoachName:        c.Name,
		CoachEmail:       c.Email,
		ClassName:        payroll.PrivateSessionClassName(student.Name()),
		SessionDate:      s.RequestedDate,
		StartTime:        s.StartTime,
		EndTime:          s.EndTime,
		Timezone:         conv.Resolve(s.Timezone).String(),
		CheckedInAt:      at,
		Hours:            hours,
		IsPrivateSession: true,
		StudentName:      student.Name(),
		Price:            s.Price,
	}, true
}
