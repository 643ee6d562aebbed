package services

import "errors"

// Errors shared across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed       = errors.New("validation failed")
	ErrInvalidFixtureMode     = errors.New("invalid fixture mode: must be round_robin or knockout")
	ErrNotEnoughTeams         = errors.New("at least 2 active teams are required to generate a fixture")
	ErrCategoryScopeMismatch  = errors.New("category does not belong to the given tournament")
	ErrNegativeScore          = errors.New("scores must be non-negative")
	ErrMatchNotPlayable       = errors.New("match is cancelled and cannot receive a result")
	ErrMatchMissingTeams      = errors.New("match participants are not decided yet")
	ErrKnockoutDraw           = errors.New("knockout matches cannot end in a draw")
	ErrInvalidAvailability    = errors.New("invalid availability window")
	ErrTeamNameRequired       = errors.New("team name is required")
	ErrPasswordTooShort       = errors.New("password is too short")
	ErrCrestUploadUnavailable = errors.New("crest upload is not configured")

	// Conflicts
	ErrFixtureAlreadyExists = errors.New("fixture already generated for this tournament and category")
	ErrResultAlreadyExists  = errors.New("match already has a result")
	ErrUserEmailConflict    = errors.New("email address is already in use")
	ErrTeamNameConflict     = errors.New("team name is already in use")

	// Authentication
	ErrAuthInvalidCredentials = errors.New("invalid email or password")

	// Entity-specific not-found errors for clearer client messages
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrResultNotFound     = errors.New("match result not found")
	ErrUserNotFound       = errors.New("user not found")
)
