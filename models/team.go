package models

import "time"

type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

var weekdayByDay = map[DayOfWeek]time.Weekday{
	Monday:    time.Monday,
	Tuesday:   time.Tuesday,
	Wednesday: time.Wednesday,
	Thursday:  time.Thursday,
	Friday:    time.Friday,
	Saturday:  time.Saturday,
	Sunday:    time.Sunday,
}

// Weekday maps the stored day onto time.Weekday. The second return value is
// false for values that are not one of the seven constants.
func (d DayOfWeek) Weekday() (time.Weekday, bool) {
	wd, ok := weekdayByDay[d]
	return wd, ok
}

type Team struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	TournamentID  int       `json:"tournament_id"`
	CategoryID    int       `json:"category_id"`
	Active        bool      `json:"active"`
	InscriptionID *int      `json:"inscription_id,omitempty"`
	ClubID        *int      `json:"club_id,omitempty"`
	CrestURL      *string   `json:"crest_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`

	Availability []TeamAvailability `json:"availability,omitempty"`
}

// TeamAvailability is one weekly window during which the team can play.
// Times are local clock values in "15:04" form; StartTime must precede
// EndTime. A team may have several windows on the same day, or none at all,
// in which case the scheduler will never find a slot for it.
type TeamAvailability struct {
	ID        int       `json:"id"`
	TeamID    int       `json:"team_id"`
	DayOfWeek DayOfWeek `json:"day_of_week"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Available bool      `json:"available"`
}
