package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/AndresMate/amateur-league-system/models"
	"github.com/lib/pq"
)

var (
	ErrResultNotFound      = errors.New("match result not found")
	ErrResultAlreadyExists = errors.New("match already has a result")
	ErrResultMatchInvalid  = errors.New("result match invalid")
)

type ResultRepository interface {
	Create(ctx context.Context, exec SQLExecutor, result *models.MatchResult) error
	GetByMatch(ctx context.Context, matchID int) (*models.MatchResult, error)
	// ListByScope returns the scope's matches that have a result, each with
	// its result attached, ordered by match id. This is the replay input of
	// a full standings rebuild.
	ListByScope(ctx context.Context, exec SQLExecutor, tournamentID, categoryID int) ([]*models.Match, error)
	DeleteByMatch(ctx context.Context, exec SQLExecutor, matchID int) error
	DeleteByScope(ctx context.Context, exec SQLExecutor, tournamentID, categoryID int) error
}

type postgresResultRepository struct {
	db *sql.DB
}

func NewPostgresResultRepository(db *sql.DB) ResultRepository {
	return &postgresResultRepository{db: db}
}

func (r *postgresResultRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresResultRepository) Create(ctx context.Context, exec SQLExecutor, result *models.MatchResult) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO match_results (match_id, home_score, away_score, notes, entered_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING entered_at`
	err := executor.QueryRowContext(ctx, query,
		result.MatchID, result.HomeScore, result.AwayScore, result.Notes, result.EnteredBy,
	).Scan(&result.EnteredAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Constraint {
			case "match_results_pkey":
				return ErrResultAlreadyExists
			case "match_results_match_id_fkey":
				return ErrResultMatchInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresResultRepository) GetByMatch(ctx context.Context, matchID int) (*models.MatchResult, error) {
	query := `
		SELECT match_id, home_score, away_score, notes, entered_by, entered_at, validated_by, validated_at
		FROM match_results
		WHERE match_id = $1`
	var res models.MatchResult
	err := r.db.QueryRowContext(ctx, query, matchID).Scan(
		&res.MatchID, &res.HomeScore, &res.AwayScore, &res.Notes,
		&res.EnteredBy, &res.EnteredAt, &res.ValidatedBy, &res.ValidatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResultNotFound
		}
		return nil, err
	}
	return &res, nil
}

func (r *postgresResultRepository) ListByScope(ctx context.Context, exec SQLExecutor, tournamentID, categoryID int) ([]*models.Match, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT m.id, m.tournament_id, m.category_id, m.home_team_id, m.away_team_id, m.round,
		       r.home_score, r.away_score, r.notes, r.entered_by, r.entered_at, r.validated_by, r.validated_at
		FROM matches m
		JOIN match_results r ON r.match_id = m.id
		WHERE m.tournament_id = $1 AND m.category_id = $2
		ORDER BY m.id ASC`
	rows, err := executor.QueryContext(ctx, query, tournamentID, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		match := &models.Match{Result: &models.MatchResult{}}
		err := rows.Scan(
			&match.ID, &match.TournamentID, &match.CategoryID,
			&match.HomeTeamID, &match.AwayTeamID, &match.Round,
			&match.Result.HomeScore, &match.Result.AwayScore, &match.Result.Notes,
			&match.Result.EnteredBy, &match.Result.EnteredAt,
			&match.Result.ValidatedBy, &match.Result.ValidatedAt,
		)
		if err != nil {
			return nil, err
		}
		match.Result.MatchID = match.ID
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

func (r *postgresResultRepository) DeleteByMatch(ctx context.Context, exec SQLExecutor, matchID int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `DELETE FROM match_results WHERE match_id = $1`, matchID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrResultNotFound)
}

func (r *postgresResultRepository) DeleteByScope(ctx context.Context, exec SQLExecutor, tournamentID, categoryID int) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx, `
		DELETE FROM match_results
		WHERE match_id IN (
			SELECT id FROM matches WHERE tournament_id = $1 AND category_id = $2
		)`, tournamentID, categoryID)
	return err
}
