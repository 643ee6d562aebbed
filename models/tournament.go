package models

import "time"

type TournamentStatus string

const (
	TournamentStatusDraft     TournamentStatus = "draft"
	TournamentStatusOpen      TournamentStatus = "open"
	TournamentStatusActive    TournamentStatus = "active"
	TournamentStatusCompleted TournamentStatus = "completed"
	TournamentStatusCancelled TournamentStatus = "cancelled"
)

type Tournament struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	SportID     int              `json:"sport_id"`
	StartDate   time.Time        `json:"start_date"`
	EndDate     time.Time        `json:"end_date"`
	Status      TournamentStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
}

// Category is a division inside a tournament (for example "senior women").
// Teams, matches and standings are all scoped to a (tournament, category)
// pair.
type Category struct {
	ID           int    `json:"id"`
	TournamentID int    `json:"tournament_id"`
	Name         string `json:"name"`
	MinAge       *int   `json:"min_age,omitempty"`
	MaxAge       *int   `json:"max_age,omitempty"`
}
