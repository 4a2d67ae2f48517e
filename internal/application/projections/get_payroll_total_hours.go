package projections

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	attendanceStore "github.com/ftebtw/dsdc-sub000/internal/adapters/storage/attendance"
	"github.com/ftebtw/dsdc-sub000/internal/application/listutil"
	"github.com/ftebtw/dsdc-sub000/internal/domain/attendance"
	"github.com/ftebtw/dsdc-sub000/internal/domain/payroll"
	"github.com/ftebtw/dsdc-sub000/internal/domain/privatesession"
	"github.com/ftebtw/dsdc-sub000/internal/domain/schedule"
)

// GetPayrollTotalHoursDeps holds dependencies for the projection.
type GetPayrollTotalHoursDeps struct {
	CheckInStore        PayrollCheckInStore
	PrivateSessionStore PayrollPrivateSessionStore
	ClassStore          PayrollClassStore
}

// QueryGetPayrollTotalHours sums payable hours for the range without rate or
// tier detail. Durations are re-derived from class definitions.
// Check-ins whose class is missing contribute nothing. Coach and student
// profiles are not consulted, so the figure can exceed the dataset total when
// the dataset drops rows for missing profiles.
// PRE: r has been validated by payroll.ParseDateRange
// POST: result is rounded to two decimals
func QueryGetPayrollTotalHours(ctx context.Context, r payroll.DateRange, deps GetPayrollTotalHoursDeps) (float64, error) {
	var (
		checkIns []attendance.CheckIn
		sessions []privatesession.Session
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := deps.CheckInStore.ListByDateRange(gctx, attendanceStore.RangeFilter{Start: r.Start, End: r.End})
		if err != nil {
			return fmt.Errorf("failed to load check-ins: %w", err)
		}
		checkIns = rows
		return nil
	})
	g.Go(func() error {
		rows, err := deps.PrivateSessionStore.ListCompletedByDateRange(gctx, r.Start, r.End, nil)
		if err != nil {
			return fmt.Errorf("failed to load private sessions: %w", err)
		}
		sessions = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}
	classes, err := deps.ClassStore.ListByIDs(ctx, listutil.Unique(checkIns, func(c attendance.CheckIn) string { return c.ClassID }))
	if err != nil {
		return 0, fmt.Errorf("failed to load classes: %w", err)
	}

	hoursByClass := make(map[string]float64, len(classes))
	for _, c := range classes {
		if h, err := c.DurationHours(); err == nil {
			hoursByClass[c.ID] = h
		}
	}

	var total float64
	for _, ci := range checkIns {
		total += hoursByClass[ci.ClassID]
	}
	for _, s := range sessions {
		if !s.IsCompleted() {
			continue
		}
		if h, err := schedule.DurationHours(s.StartTime, s.EndTime); err == nil {
			total += h
		}
	}
	return payroll.Round(total), nil
}
