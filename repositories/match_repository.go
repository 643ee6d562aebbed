package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AndresMate/amateur-league-system/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound = errors.New("match not found")
	// ErrMatchAlreadyScheduled fires on the unique index over
	// (tournament_id, category_id, home_team_id, away_team_id); it is what
	// serializes two concurrent generate calls for the same scope.
	ErrMatchAlreadyScheduled = errors.New("match already scheduled for this pairing")
	ErrMatchTeamInvalid      = errors.New("match team conflict or invalid")
	ErrMatchScopeInvalid     = errors.New("match tournament or category invalid")
)

type MatchRepository interface {
	CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByScope(ctx context.Context, tournamentID, categoryID int) ([]*models.Match, error)
	DeleteByScope(ctx context.Context, exec SQLExecutor, tournamentID, categoryID int) error
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.MatchStatus) error
	// SetParticipant resolves a TBD bracket slot (1 = home, 2 = away).
	SetParticipant(ctx context.Context, exec SQLExecutor, id, slot, teamID int) error
	UpdateNextMatchInfo(ctx context.Context, exec SQLExecutor, id int, nextMatchID, winnerToSlot *int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchRepository) CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO matches
			(tournament_id, category_id, home_team_id, away_team_id, scenario_id,
			 referee_id, starts_at, status, round, bracket_uid, next_match_id, winner_to_slot)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`
	for _, match := range matches {
		err := executor.QueryRowContext(ctx, query,
			match.TournamentID, match.CategoryID, match.HomeTeamID, match.AwayTeamID,
			match.ScenarioID, match.RefereeID, match.StartsAt, match.Status,
			match.Round, match.BracketUID, match.NextMatchID, match.WinnerToSlot,
		).Scan(&match.ID, &match.CreatedAt)
		if err != nil {
			return r.handleMatchError(err)
		}
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `
		SELECT id, tournament_id, category_id, home_team_id, away_team_id, scenario_id,
		       referee_id, starts_at, status, round, bracket_uid, next_match_id, winner_to_slot, created_at
		FROM matches
		WHERE id = $1`
	return r.scanMatch(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) ListByScope(ctx context.Context, tournamentID, categoryID int) ([]*models.Match, error) {
	query := `
		SELECT id, tournament_id, category_id, home_team_id, away_team_id, scenario_id,
		       referee_id, starts_at, status, round, bracket_uid, next_match_id, winner_to_slot, created_at
		FROM matches
		WHERE tournament_id = $1 AND category_id = $2
		ORDER BY round ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, tournamentID, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		match, errScan := r.scanMatch(rows)
		if errScan != nil {
			return nil, errScan
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) DeleteByScope(ctx context.Context, exec SQLExecutor, tournamentID, categoryID int) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx,
		`DELETE FROM matches WHERE tournament_id = $1 AND category_id = $2`,
		tournamentID, categoryID)
	return err
}

func (r *postgresMatchRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.MatchStatus) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `UPDATE matches SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) SetParticipant(ctx context.Context, exec SQLExecutor, id, slot, teamID int) error {
	executor := r.getExecutor(exec)
	column := "home_team_id"
	if slot == 2 {
		column = "away_team_id"
	}
	query := fmt.Sprintf(`UPDATE matches SET %s = $1 WHERE id = $2`, column)
	result, err := executor.ExecContext(ctx, query, teamID, id)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateNextMatchInfo(ctx context.Context, exec SQLExecutor, id int, nextMatchID, winnerToSlot *int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE matches SET next_match_id = $1, winner_to_slot = $2 WHERE id = $3`,
		nextMatchID, winnerToSlot, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) scanMatch(scanner interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var match models.Match
	err := scanner.Scan(
		&match.ID, &match.TournamentID, &match.CategoryID, &match.HomeTeamID, &match.AwayTeamID,
		&match.ScenarioID, &match.RefereeID, &match.StartsAt, &match.Status,
		&match.Round, &match.BracketUID, &match.NextMatchID, &match.WinnerToSlot, &match.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Constraint {
		case "matches_scope_pairing_key":
			return ErrMatchAlreadyScheduled
		case "matches_home_team_id_fkey", "matches_away_team_id_fkey":
			return ErrMatchTeamInvalid
		case "matches_tournament_id_fkey", "matches_category_id_fkey":
			return ErrMatchScopeInvalid
		}
	}
	return err
}
