package fixture

import (
	"fmt"
	"time"

	"github.com/AndresMate/amateur-league-system/models"
)

// DefaultSlotHorizonDays bounds how far past the candidate date the slot
// search walks before giving up and leaving the match unscheduled.
const DefaultSlotHorizonDays = 14

// Window is one weekly availability window with clock times expressed as
// minutes since midnight.
type Window struct {
	Day   time.Weekday
	Start int
	End   int
}

// Slot is a concrete (date, start time) assignment for a match.
type Slot struct {
	Date  time.Time
	Start int
}

// StartsAt combines the slot's calendar day and start minute.
func (s Slot) StartsAt() time.Time {
	return s.Date.Add(time.Duration(s.Start) * time.Minute)
}

// ParseClock parses a "15:04" clock value into minutes since midnight.
func ParseClock(value string) (int, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", value, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// AvailabilityIndex holds each team's usable weekly windows.
type AvailabilityIndex map[int][]Window

// BuildAvailabilityIndex converts stored availability rows into an index.
// Rows flagged unavailable, rows with an unknown day and rows whose window is
// empty or inverted are skipped; the stored data is otherwise trusted.
func BuildAvailabilityIndex(rows []models.TeamAvailability) AvailabilityIndex {
	idx := make(AvailabilityIndex)
	for _, row := range rows {
		if !row.Available {
			continue
		}
		day, ok := row.DayOfWeek.Weekday()
		if !ok {
			continue
		}
		start, err := ParseClock(row.StartTime)
		if err != nil {
			continue
		}
		end, err := ParseClock(row.EndTime)
		if err != nil {
			continue
		}
		if start >= end {
			continue
		}
		idx[row.TeamID] = append(idx[row.TeamID], Window{Day: day, Start: start, End: end})
	}
	return idx
}

// WindowsFor returns the windows of one team; nil when the team has none,
// which makes every slot search for it fail and its matches stay postponed.
func (idx AvailabilityIndex) WindowsFor(teamID int) []Window {
	return idx[teamID]
}

// FindSlot walks calendar days from the candidate date and returns the first
// intersection of a home and an away window on the same weekday. First fit
// wins: first day, first window pair in iteration order. The boolean is
// false when no day inside the horizon intersects.
func FindSlot(home, away []Window, from time.Time, horizonDays int) (Slot, bool) {
	if horizonDays <= 0 {
		horizonDays = DefaultSlotHorizonDays
	}
	day := truncateToDay(from)
	for offset := 0; offset < horizonDays; offset++ {
		date := day.AddDate(0, 0, offset)
		weekday := date.Weekday()
		for _, hw := range home {
			if hw.Day != weekday {
				continue
			}
			for _, aw := range away {
				if aw.Day != weekday {
					continue
				}
				start := max(hw.Start, aw.Start)
				end := min(hw.End, aw.End)
				if start < end {
					return Slot{Date: date, Start: start}, true
				}
			}
		}
	}
	return Slot{}, false
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
