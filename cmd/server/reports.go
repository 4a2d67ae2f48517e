package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ftebtw/dsdc-sub000/internal/adapters/email"
	"github.com/ftebtw/dsdc-sub000/internal/application/orchestrators"
	"github.com/ftebtw/dsdc-sub000/internal/application/projections"
	"github.com/ftebtw/dsdc-sub000/internal/domain/payroll"
)

// reportTimeout bounds one scheduled payroll report run.
const reportTimeout = 4 * time.Minute

// reportJob mails last month's payroll on each cron tick.
type reportJob struct {
	Recipients      []string
	CoachStatements bool
	Dataset         projections.GetPayrollDatasetDeps
	Sender          email.Sender
	Now             func() time.Time
}

// Run sends the report for the calendar month before Now.
func (j reportJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	rng := payroll.PreviousMonth(j.Now())
	res, err := orchestrators.ExecuteSendPayrollReport(ctx, orchestrators.SendPayrollReportInput{
		Range:           rng,
		Recipients:      j.Recipients,
		CoachStatements: j.CoachStatements,
	}, orchestrators.SendPayrollReportDeps{Dataset: j.Dataset, Sender: j.Sender})
	if err != nil {
		slog.Error("payroll_report_failed", "start", rng.Start, "end", rng.End, "error", err)
		return
	}
	slog.Info("payroll_report_job_done", "start", rng.Start, "end", rng.End, "message_id", res.MessageID)
}

// newReportScheduler registers job on a standard five-field cron spec.
// Overlapping runs are skipped.
func newReportScheduler(spec string, job reportJob) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddJob(spec, job); err != nil {
		return nil, err
	}
	return c, nil
}
