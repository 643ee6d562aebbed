package models

import "time"

// MatchResult is the one-to-one score record of a finished match, keyed by
// the match id. Creating one flips the owning match to finished and feeds
// the standings engine.
type MatchResult struct {
	MatchID     int        `json:"match_id"`
	HomeScore   int        `json:"home_score"`
	AwayScore   int        `json:"away_score"`
	Notes       *string    `json:"notes,omitempty"`
	EnteredBy   *int       `json:"entered_by,omitempty"`
	EnteredAt   time.Time  `json:"entered_at"`
	ValidatedBy *int       `json:"validated_by,omitempty"`
	ValidatedAt *time.Time `json:"validated_at,omitempty"`
}
