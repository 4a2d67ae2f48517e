package payroll

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

// ledgerHeader is the column order of the exported ledger.
var ledgerHeader = []string{
	"session_date", "coach_name", "coach_email", "class_name", "start_time", "end_time",
	"timezone", "checked_in_at", "hours", "late", "private", "student_name", "price",
}

// WriteLedgerCSV writes the session ledger, header first, in the order given.
// PRE: rows are already sorted
// POST: one record per row; empty price for classes and unpriced sessions
func WriteLedgerCSV(w io.Writer, rows []SessionRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ledgerHeader); err != nil {
		return err
	}
	for _, r := range rows {
		price := ""
		if r.Price != nil {
			price = strconv.FormatFloat(*r.Price, 'f', 2, 64)
		}
		rec := []string{
			r.SessionDate,
			cellText(r.CoachName),
			cellText(r.CoachEmail),
			cellText(r.ClassName),
			r.StartTime,
			r.EndTime,
			r.Timezone,
			r.CheckedInAt.UTC().Format(time.RFC3339),
			strconv.FormatFloat(r.Hours, 'f', 2, 64),
			strconv.FormatBool(r.Late),
			strconv.FormatBool(r.IsPrivateSession),
			cellText(r.StudentName),
			price,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// cellText quotes free text that a spreadsheet would otherwise evaluate as a
// formula.
func cellText(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
