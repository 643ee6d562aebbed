package fixture

import (
	"testing"
	"time"

	"github.com/AndresMate/amateur-league-system/models"
)

// monday is 2026-09-07, a Monday.
var monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func TestParseClock(t *testing.T) {
	got, err := ParseClock("19:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := 19*60 + 30; got != want {
		t.Errorf("got %d, want %d", got, want)
	}

	if _, err := ParseClock("25:00"); err == nil {
		t.Error("expected error for out-of-range hour")
	}
	if _, err := ParseClock("evening"); err == nil {
		t.Error("expected error for non-clock value")
	}
}

func TestBuildAvailabilityIndexSkipsUnusableRows(t *testing.T) {
	rows := []models.TeamAvailability{
		{TeamID: 1, DayOfWeek: models.Monday, StartTime: "18:00", EndTime: "20:00", Available: true},
		{TeamID: 1, DayOfWeek: models.Tuesday, StartTime: "18:00", EndTime: "20:00", Available: false},
		{TeamID: 2, DayOfWeek: "FUNDAY", StartTime: "18:00", EndTime: "20:00", Available: true},
		{TeamID: 2, DayOfWeek: models.Monday, StartTime: "21:00", EndTime: "19:00", Available: true},
		{TeamID: 2, DayOfWeek: models.Monday, StartTime: "half past", EndTime: "20:00", Available: true},
	}

	idx := BuildAvailabilityIndex(rows)

	if got := len(idx.WindowsFor(1)); got != 1 {
		t.Errorf("team 1: got %d windows, want 1", got)
	}
	if got := idx.WindowsFor(2); got != nil {
		t.Errorf("team 2: got %v, want no windows", got)
	}
}

func TestFindSlotIntersectsWindows(t *testing.T) {
	home := []Window{{Day: time.Monday, Start: 18 * 60, End: 20 * 60}}
	away := []Window{{Day: time.Monday, Start: 19 * 60, End: 21 * 60}}

	slot, ok := FindSlot(home, away, monday, DefaultSlotHorizonDays)
	if !ok {
		t.Fatal("expected a slot")
	}
	if slot.Start != 19*60 {
		t.Errorf("got start %d, want %d", slot.Start, 19*60)
	}
	if !slot.Date.Equal(monday) {
		t.Errorf("got date %v, want %v", slot.Date, monday)
	}
	if want := monday.Add(19 * time.Hour); !slot.StartsAt().Equal(want) {
		t.Errorf("got StartsAt %v, want %v", slot.StartsAt(), want)
	}
}

func TestFindSlotWalksToNextMatchingDay(t *testing.T) {
	home := []Window{{Day: time.Thursday, Start: 18 * 60, End: 20 * 60}}
	away := []Window{{Day: time.Thursday, Start: 18 * 60, End: 20 * 60}}

	slot, ok := FindSlot(home, away, monday, DefaultSlotHorizonDays)
	if !ok {
		t.Fatal("expected a slot")
	}
	if slot.Date.Weekday() != time.Thursday {
		t.Errorf("got weekday %v, want Thursday", slot.Date.Weekday())
	}
	if want := monday.AddDate(0, 0, 3); !slot.Date.Equal(want) {
		t.Errorf("got date %v, want %v", slot.Date, want)
	}
}

func TestFindSlotNoOverlap(t *testing.T) {
	home := []Window{{Day: time.Monday, Start: 18 * 60, End: 19 * 60}}
	away := []Window{{Day: time.Monday, Start: 19 * 60, End: 21 * 60}}

	// Windows touch at 19:00 but do not overlap.
	if _, ok := FindSlot(home, away, monday, DefaultSlotHorizonDays); ok {
		t.Error("expected no slot for touching windows")
	}
}

func TestFindSlotDisjointDays(t *testing.T) {
	home := []Window{{Day: time.Monday, Start: 18 * 60, End: 20 * 60}}
	away := []Window{{Day: time.Wednesday, Start: 18 * 60, End: 20 * 60}}

	if _, ok := FindSlot(home, away, monday, DefaultSlotHorizonDays); ok {
		t.Error("expected no slot when days never coincide")
	}
}

func TestFindSlotEmptyAvailability(t *testing.T) {
	away := []Window{{Day: time.Monday, Start: 18 * 60, End: 20 * 60}}

	if _, ok := FindSlot(nil, away, monday, DefaultSlotHorizonDays); ok {
		t.Error("expected no slot when one side has no windows")
	}
}

func TestFindSlotRespectsHorizon(t *testing.T) {
	// Tuesday window searched from Wednesday with a 5-day horizon: the next
	// Tuesday is 6 days away, outside the horizon.
	wednesday := monday.AddDate(0, 0, 2)
	windows := []Window{{Day: time.Tuesday, Start: 18 * 60, End: 20 * 60}}

	if _, ok := FindSlot(windows, windows, wednesday, 5); ok {
		t.Error("expected no slot outside the horizon")
	}
	if _, ok := FindSlot(windows, windows, wednesday, 7); !ok {
		t.Error("expected a slot once the horizon covers the next Tuesday")
	}
}
