package models

import "time"

// Standing is the aggregate table row for one team inside one
// (tournament, category) scope. Played == Wins+Draws+Losses and
// Points == 3*Wins + Draws hold after every engine update; the row is
// created zeroed the first time a result touches the team and only ever
// grows until a full rebuild replaces it.
type Standing struct {
	ID           int       `json:"id"`
	TournamentID int       `json:"tournament_id"`
	CategoryID   int       `json:"category_id"`
	TeamID       int       `json:"team_id"`
	Points       int       `json:"points"`
	Played       int       `json:"played"`
	Wins         int       `json:"wins"`
	Draws        int       `json:"draws"`
	Losses       int       `json:"losses"`
	GoalsFor     int       `json:"goals_for"`
	GoalsAgainst int       `json:"goals_against"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Populated by the service for ranked listings, not stored.
	TeamName string `json:"team_name,omitempty"`
}

func (s *Standing) GoalDifference() int {
	return s.GoalsFor - s.GoalsAgainst
}
