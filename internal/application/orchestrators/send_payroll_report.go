package orchestrators

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/ftebtw/dsdc-sub000/internal/adapters/email"
	"github.com/ftebtw/dsdc-sub000/internal/application/projections"
	"github.com/ftebtw/dsdc-sub000/internal/domain/payroll"
)

// reportRenderer renders report markdown with GFM tables. Raw HTML in names
// is escaped because WithUnsafe is not set.
var reportRenderer = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// SendPayrollReportInput carries input for the payroll report orchestrator.
type SendPayrollReportInput struct {
	Range           payroll.DateRange
	Recipients      []string `validate:"required,min=1,dive,email"`
	CoachStatements bool     // also mail each coach their own lines
}

// SendPayrollReportDeps holds dependencies for SendPayrollReport.
type SendPayrollReportDeps struct {
	Dataset projections.GetPayrollDatasetDeps
	Sender  email.Sender
}

// SendPayrollReportResult describes what was sent.
type SendPayrollReportResult struct {
	MessageID  string
	Statements int
	Totals     payroll.Totals
}

// ExecuteSendPayrollReport builds the payroll dataset for a range and mails
// the summary table to the recipients with the ledger attached as CSV.
// PRE: input.Range has been validated by payroll.ParseDateRange
// POST: the summary email is sent before any coach statement; a statement
// failure is logged and does not fail the report
func ExecuteSendPayrollReport(ctx context.Context, input SendPayrollReportInput, deps SendPayrollReportDeps) (SendPayrollReportResult, error) {
	if err := validateInput(input); err != nil {
		return SendPayrollReportResult{}, err
	}

	ds, err := projections.QueryGetPayrollDataset(ctx, projections.PayrollQuery{Range: input.Range}, deps.Dataset)
	if err != nil {
		return SendPayrollReportResult{}, err
	}

	html, err := renderMarkdown(summaryMarkdown(ds))
	if err != nil {
		return SendPayrollReportResult{}, fmt.Errorf("failed to render report: %w", err)
	}
	var ledger bytes.Buffer
	if err := payroll.WriteLedgerCSV(&ledger, ds.Sessions); err != nil {
		return SendPayrollReportResult{}, fmt.Errorf("failed to write ledger: %w", err)
	}

	sent, err := deps.Sender.Send(ctx, email.SendRequest{
		To:      input.Recipients,
		Subject: fmt.Sprintf("Payroll %s to %s", ds.Range.Start, ds.Range.End),
		HTML:    html,
		Attachments: []email.Attachment{{
			Filename:    fmt.Sprintf("payroll-%s-%s.csv", ds.Range.Start, ds.Range.End),
			ContentType: "text/csv",
			Content:     ledger.Bytes(),
		}},
	})
	if err != nil {
		return SendPayrollReportResult{}, fmt.Errorf("failed to send payroll report: %w", err)
	}
	result := SendPayrollReportResult{MessageID: sent.MessageID, Totals: ds.Totals}

	if input.CoachStatements {
		reqs, err := statementRequests(ds)
		if err != nil {
			return result, fmt.Errorf("failed to render statements: %w", err)
		}
		if len(reqs) > 0 {
			statements, err := deps.Sender.SendBatch(ctx, reqs)
			if err != nil {
				slog.Error("payroll_statements_failed", "error", err, "sent", len(statements), "wanted", len(reqs))
			}
			result.Statements = len(statements)
		}
	}

	slog.Info("payroll_report_sent",
		"start", ds.Range.Start,
		"end", ds.Range.End,
		"recipients", len(input.Recipients),
		"sessions", ds.Totals.Sessions,
		"statements", result.Statements,
	)
	return result, nil
}

// statementRequests builds one email per coach with an address and at least
// one session in the range.
func statementRequests(ds payroll.Dataset) ([]email.SendRequest, error) {
	byCoach := make(map[string][]payroll.SessionRow)
	for _, s := range ds.Sessions {
		byCoach[s.CoachID] = append(byCoach[s.CoachID], s)
	}
	var reqs []email.SendRequest
	for _, row := range ds.Summary {
		if row.CoachEmail == "" || row.Sessions == 0 {
			continue
		}
		html, err := renderMarkdown(statementMarkdown(ds.Range, row, byCoach[row.CoachID]))
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, email.SendRequest{
			To:      []string{row.CoachEmail},
			Subject: fmt.Sprintf("Your sessions %s to %s", ds.Range.Start, ds.Range.End),
			HTML:    html,
		})
	}
	return reqs, nil
}

func summaryMarkdown(ds payroll.Dataset) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Payroll %s to %s\n\n", ds.Range.Start, ds.Range.End)
	if len(ds.Summary) == 0 {
		b.WriteString("No coaches have pay settings yet.\n")
		return b.String()
	}
	b.WriteString("| Coach | Sessions | Hours | Late | Rate | Pay |\n")
	b.WriteString("|---|---:|---:|---:|---:|---:|\n")
	for _, r := range ds.Summary {
		fmt.Fprintf(&b, "| %s | %d | %.2f | %d | %s | %s |\n",
			mdEscape(r.CoachName), r.Sessions, r.TotalHours, r.LateCount, money(r.HourlyRate), money(r.CalculatedPay))
	}
	fmt.Fprintf(&b, "| **Total** | %d | %.2f | %d | | %.2f |\n",
		ds.Totals.Sessions, ds.Totals.TotalHours, ds.Totals.LateCount, ds.Totals.CalculatedPay)
	return b.String()
}

func statementMarkdown(r payroll.DateRange, row payroll.SummaryRow, sessions []payroll.SessionRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nHere are your sessions from %s to %s.\n\n", mdEscape(row.CoachName), r.Start, r.End)
	b.WriteString("| Date | Class | Time | Hours | Late |\n")
	b.WriteString("|---|---|---|---:|---|\n")
	for _, s := range sessions {
		late := ""
		if s.Late {
			late = "yes"
		}
		fmt.Fprintf(&b, "| %s | %s | %s-%s | %.2f | %s |\n",
			s.SessionDate, mdEscape(s.ClassName), s.StartTime, s.EndTime, s.Hours, late)
	}
	fmt.Fprintf(&b, "\n**%.2f hours** over %d sessions.", row.TotalHours, row.Sessions)
	if row.CalculatedPay != nil {
		fmt.Fprintf(&b, " Estimated pay: **%.2f**.", *row.CalculatedPay)
	}
	b.WriteString("\n")
	return b.String()
}

func renderMarkdown(md string) (string, error) {
	var buf bytes.Buffer
	if err := reportRenderer.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var mdReplacer = strings.NewReplacer(`|`, `\|`, `*`, `\*`, `_`, `\_`)

// mdEscape keeps names from breaking table cells or turning into emphasis.
func mdEscape(s string) string {
	return mdReplacer.Replace(s)
}

func money(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}
