package payroll

import (
	"math"
	"sort"
	"strings"
	"time"
)

// privateSessionPrefix names ledger rows that come from private sessions.
const privateSessionPrefix = "Private Session – "

// SessionRow is one payable session in the ledger.
type SessionRow struct {
	ID               string    `json:"id"`
	CoachID          string    `json:"coach_id"`
	CoachName        string    `json:"coach_name"`
	CoachEmail       string    `json:"coach_email"`
	ClassID          string    `json:"class_id,omitempty"`
	ClassName        string    `json:"class_name"`
	SessionDate      string    `json:"session_date"`
	StartTime        string    `json:"start_time"`
	EndTime          string    `json:"end_time"`
	Timezone         string    `json:"timezone"`
	CheckedInAt      time.Time `json:"checked_in_at"`
	Hours            float64   `json:"hours"`
	Late             bool      `json:"late"`
	IsPrivateSession bool      `json:"is_private_session"`
	StudentName      string    `json:"student_name,omitempty"`
	Price            *float64  `json:"price,omitempty"`
}

// SummaryRow is one coach's totals for the range.
// CalculatedPay is nil when the coach has no hourly rate.
type SummaryRow struct {
	CoachID       string   `json:"coach_id"`
	CoachName     string   `json:"coach_name"`
	CoachEmail    string   `json:"coach_email"`
	HourlyRate    *float64 `json:"hourly_rate"`
	IsTA          bool     `json:"is_ta"`
	Tiers         []string `json:"tiers"`
	Sessions      int      `json:"sessions"`
	TotalHours    float64  `json:"total_hours"`
	LateCount     int      `json:"late_count"`
	CalculatedPay *float64 `json:"calculated_pay"`
}

// Totals are the grand totals across all coaches.
type Totals struct {
	Sessions      int     `json:"sessions"`
	TotalHours    float64 `json:"total_hours"`
	CalculatedPay float64 `json:"calculated_pay"`
	LateCount     int     `json:"late_count"`
}

// Dataset is the full payroll answer for a range.
type Dataset struct {
	Range    DateRange    `json:"range"`
	Sessions []SessionRow `json:"sessions"`
	Summary  []SummaryRow `json:"summary"`
	Totals   Totals       `json:"totals"`
}

// Coach carries the resolved identity and pay settings of one coach.
type Coach struct {
	CoachID    string
	Name       string
	Email      string
	HourlyRate *float64
	IsTA       bool
	Tiers      []string
}

// EmptyDataset returns an all-zero dataset for r.
func EmptyDataset(r DateRange) Dataset {
	return Dataset{Range: r, Sessions: []SessionRow{}, Summary: []SummaryRow{}}
}

// PrivateSessionClassName returns the ledger label for a private session.
func PrivateSessionClassName(studentName string) string {
	return privateSessionPrefix + studentName
}

// Round rounds to two decimal places.
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}

// accumulator folds raw session rows for one coach; rounding happens in row().
type accumulator struct {
	coach    Coach
	sessions int
	hours    float64
	late     int
	pay      float64
}

func (a *accumulator) add(s SessionRow) {
	a.sessions++
	a.hours += s.Hours
	if s.Late {
		a.late++
	}
	if a.coach.HourlyRate != nil {
		a.pay += s.Hours * *a.coach.HourlyRate
	}
}

func (a *accumulator) row() SummaryRow {
	tiers := a.coach.Tiers
	if tiers == nil {
		tiers = []string{}
	}
	r := SummaryRow{
		CoachID:    a.coach.CoachID,
		CoachName:  a.coach.Name,
		CoachEmail: a.coach.Email,
		HourlyRate: a.coach.HourlyRate,
		IsTA:       a.coach.IsTA,
		Tiers:      tiers,
		Sessions:   a.sessions,
		TotalHours: Round(a.hours),
		LateCount:  a.late,
	}
	if a.coach.HourlyRate != nil {
		pay := Round(a.pay)
		r.CalculatedPay = &pay
	}
	return r
}

// Build folds unrounded session rows into a dataset. Every coach gets a
// summary row, including coaches with no sessions. Rows whose coach is not in
// coaches are dropped. Hours and pay are rounded only on the way out.
// PRE: sessions carry raw (unrounded) Hours
// POST: ledger sorted by (date, start); summary sorted by coach name
func Build(r DateRange, coaches []Coach, sessions []SessionRow) Dataset {
	accs := make(map[string]*accumulator, len(coaches))
	order := make([]*accumulator, 0, len(coaches))
	for _, c := range coaches {
		if _, dup := accs[c.CoachID]; dup {
			continue
		}
		a := &accumulator{coach: c}
		accs[c.CoachID] = a
		order = append(order, a)
	}

	ledger := make([]SessionRow, 0, len(sessions))
	for _, s := range sessions {
		a, ok := accs[s.CoachID]
		if !ok {
			continue
		}
		a.add(s)
		s.Hours = Round(s.Hours)
		ledger = append(ledger, s)
	}
	SortLedger(ledger)

	summary := make([]SummaryRow, 0, len(order))
	for _, a := range order {
		summary = append(summary, a.row())
	}
	sort.SliceStable(summary, func(i, j int) bool {
		ni, nj := strings.ToLower(summary[i].CoachName), strings.ToLower(summary[j].CoachName)
		if ni != nj {
			return ni < nj
		}
		return summary[i].CoachID < summary[j].CoachID
	})

	return Dataset{
		Range:    r,
		Sessions: ledger,
		Summary:  summary,
		Totals:   FoldTotals(summary),
	}
}

// SortLedger orders rows by session date, then zero-padded start time.
func SortLedger(rows []SessionRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].SessionDate != rows[j].SessionDate {
			return rows[i].SessionDate < rows[j].SessionDate
		}
		return rows[i].StartTime < rows[j].StartTime
	})
}

// FoldTotals sums summary rows into grand totals. A nil CalculatedPay
// counts as zero here only.
func FoldTotals(summary []SummaryRow) Totals {
	var t Totals
	for _, s := range summary {
		t.Sessions += s.Sessions
		t.TotalHours += s.TotalHours
		t.LateCount += s.LateCount
		if s.CalculatedPay != nil {
			t.CalculatedPay += *s.CalculatedPay
		}
	}
	t.TotalHours = Round(t.TotalHours)
	t.CalculatedPay = Round(t.CalculatedPay)
	return t
}
