package fixture

import "errors"

var (
	// ErrNotEnoughTeams is returned when fewer than two eligible teams exist
	// for the requested scope.
	ErrNotEnoughTeams = errors.New("not enough teams to generate a fixture (minimum 2 required)")
)

// Pairing is one ordered (home, away) meeting of two teams.
type Pairing struct {
	HomeTeamID int
	AwayTeamID int
}

// Blueprint is one generated match before persistence. Round-robin blueprints
// always carry both team ids; knockout blueprints for later rounds carry nil
// teams plus the bracket UIDs of the matches that feed them.
type Blueprint struct {
	UID          string
	Round        int
	OrderInRound int

	HomeTeamID *int
	AwayTeamID *int

	SourceMatch1UID *string
	SourceMatch2UID *string
}
