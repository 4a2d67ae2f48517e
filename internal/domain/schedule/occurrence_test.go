package schedule_test

import (
	"testing"

	"github.com/ftebtw/dsdc-sub000/internal/domain/schedule"
	"github.com/ftebtw/dsdc-sub000/internal/domain/timezone"
)

// TestProject_SameZoneWeek verifies a single weekly class in its own zone
// yields exactly one unshifted occurrence for the week.
func TestProject_SameZoneWeek(t *testing.T) {
	classes := []schedule.Class{validClass()}

	got, err := schedule.Project(timezone.Standard, classes, "America/Vancouver", "2025-03-10", "2025-03-16")
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1: %+v", len(got), got)
	}
	o := got[0]
	if o.Date != "2025-03-10" || o.SourceDate != "2025-03-10" {
		t.Errorf("date = %s (source %s), want 2025-03-10", o.Date, o.SourceDate)
	}
	if o.StartTime != "16:00" || o.EndTime != "17:00" {
		t.Errorf("times = %s-%s, want 16:00-17:00", o.StartTime, o.EndTime)
	}
	if o.ClassName != "Novice Debate A" {
		t.Errorf("class name = %q", o.ClassName)
	}
}

// TestProject_ShiftsForwardIntoNextDay verifies a late Friday class appears on
// Saturday for a viewer many hours ahead.
func TestProject_ShiftsForwardIntoNextDay(t *testing.T) {
	c := validClass()
	c.Day, c.StartTime, c.EndTime = schedule.Friday, "23:00", "23:45"

	got, err := schedule.Project(timezone.Standard, []schedule.Class{c}, "Asia/Tokyo", "2025-03-03", "2025-03-09")
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1: %+v", len(got), got)
	}
	cells := schedule.GroupByDate(got)
	if len(cells["2025-03-07"]) != 0 {
		t.Error("occurrence filed under Friday, want Saturday")
	}
	sat := cells["2025-03-08"]
	if len(sat) != 1 {
		t.Fatalf("saturday cell = %d occurrences, want 1", len(sat))
	}
	if sat[0].StartTime != "16:00" || sat[0].EndTime != "16:45" {
		t.Errorf("times = %s-%s, want 16:00-16:45", sat[0].StartTime, sat[0].EndTime)
	}
	if sat[0].SourceDate != "2025-03-07" {
		t.Errorf("source date = %s, want 2025-03-07", sat[0].SourceDate)
	}
}

// TestProject_ShiftsBackwardFromOutsideWindow verifies a meeting whose own date
// is after the window can still land inside it for a viewer behind.
func TestProject_ShiftsBackwardFromOutsideWindow(t *testing.T) {
	c := validClass()
	c.Timezone, c.StartTime, c.EndTime = "Asia/Shanghai", "01:00", "02:00"

	got, err := schedule.Project(timezone.Standard, []schedule.Class{c}, "America/Vancouver", "2025-03-10", "2025-03-16")
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1: %+v", len(got), got)
	}
	if got[0].Date != "2025-03-16" || got[0].SourceDate != "2025-03-17" {
		t.Errorf("date = %s source = %s, want 2025-03-16 from 2025-03-17", got[0].Date, got[0].SourceDate)
	}
	if got[0].StartTime != "10:00" {
		t.Errorf("start = %s, want 10:00", got[0].StartTime)
	}
}

// TestProject_RespectsTerm verifies meetings outside the term are skipped.
func TestProject_RespectsTerm(t *testing.T) {
	c := validClass()
	c.TermStart, c.TermEnd = "2025-03-11", "2025-03-24"
	ended := validClass()
	ended.ID = "c2"
	ended.TermEnd = "2025-02-01"

	got, err := schedule.Project(timezone.Standard, []schedule.Class{c, ended}, "America/Vancouver", "2025-03-01", "2025-03-31")
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(got), got)
	}
	if got[0].Date != "2025-03-17" || got[1].Date != "2025-03-24" {
		t.Errorf("dates = %s, %s, want 2025-03-17, 2025-03-24", got[0].Date, got[1].Date)
	}
}

// TestProject_UnknownViewerZoneFallsBack verifies a bad viewer zone uses the default.
func TestProject_UnknownViewerZoneFallsBack(t *testing.T) {
	got, err := schedule.Project(timezone.Standard, []schedule.Class{validClass()}, "Nowhere/Special", "2025-03-10", "2025-03-16")
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if len(got) != 1 || got[0].Timezone != timezone.DefaultZone || got[0].StartTime != "16:00" {
		t.Errorf("got %+v, want one 16:00 occurrence in %s", got, timezone.DefaultZone)
	}
}

// TestProject_InvalidWindow verifies malformed windows are rejected.
func TestProject_InvalidWindow(t *testing.T) {
	for _, w := range [][2]string{{"2025-03-16", "2025-03-10"}, {"", "2025-03-10"}, {"2025-03-10", "03/16/2025"}} {
		if _, err := schedule.Project(timezone.Standard, nil, "UTC", w[0], w[1]); err != schedule.ErrInvalidWindow {
			t.Errorf("Project(%v) error = %v, want ErrInvalidWindow", w, err)
		}
	}
}

// TestSortByStart verifies presentation ordering by converted start.
func TestSortByStart(t *testing.T) {
	late := validClass()
	late.ID, late.Name, late.StartTime, late.EndTime = "c2", "Senior", "18:00", "19:00"
	early := validClass()
	early.ID, early.Name, early.StartTime, early.EndTime = "c3", "Junior", "09:00", "10:00"

	got, err := schedule.Project(timezone.Standard, []schedule.Class{late, validClass(), early}, "America/Vancouver", "2025-03-10", "2025-03-10")
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	schedule.SortByStart(got)
	want := []string{"Junior", "Novice Debate A", "Senior"}
	for i, name := range want {
		if got[i].ClassName != name {
			t.Errorf("position %d = %s, want %s", i, got[i].ClassName, name)
		}
	}
}
