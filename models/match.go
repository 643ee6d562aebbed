package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusPostponed MatchStatus = "postponed"
	MatchStatusFinished  MatchStatus = "finished"
	MatchStatusCancelled MatchStatus = "cancelled"
)

type FixtureMode string

const (
	FixtureModeRoundRobin FixtureMode = "round_robin"
	FixtureModeKnockout   FixtureMode = "knockout"
)

// ParseFixtureMode rejects anything outside the closed mode set.
func ParseFixtureMode(raw string) (FixtureMode, bool) {
	switch FixtureMode(raw) {
	case FixtureModeRoundRobin, FixtureModeKnockout:
		return FixtureMode(raw), true
	}
	return "", false
}

// Match is one fixture entry. Home/Away are nullable because knockout
// brackets create later-round matches before their participants are known.
// StartsAt is nil while no mutually available slot has been found.
type Match struct {
	ID           int         `json:"id"`
	TournamentID int         `json:"tournament_id"`
	CategoryID   int         `json:"category_id"`
	HomeTeamID   *int        `json:"home_team_id"`
	AwayTeamID   *int        `json:"away_team_id"`
	ScenarioID   *int        `json:"scenario_id,omitempty"`
	RefereeID    *int        `json:"referee_id,omitempty"`
	StartsAt     *time.Time  `json:"starts_at,omitempty"`
	Status       MatchStatus `json:"status"`
	Round        int         `json:"round"`
	BracketUID   *string     `json:"bracket_uid,omitempty"`
	NextMatchID  *int        `json:"next_match_id,omitempty"`
	WinnerToSlot *int        `json:"winner_to_slot,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`

	Result *MatchResult `json:"result,omitempty"`
}
