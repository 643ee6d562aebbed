package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AndresMate/amateur-league-system/models"
)

var ErrStandingNotFound = errors.New("standing not found")

type StandingRepository interface {
	Create(ctx context.Context, exec SQLExecutor, standing *models.Standing) error
	GetByScopeAndTeam(ctx context.Context, exec SQLExecutor, tournamentID, categoryID, teamID int) (*models.Standing, error)
	// GetOrCreate lazily materializes the zeroed aggregate row the first
	// time a team's result is processed for the scope.
	GetOrCreate(ctx context.Context, exec SQLExecutor, tournamentID, categoryID, teamID int) (*models.Standing, error)
	Update(ctx context.Context, exec SQLExecutor, standing *models.Standing) error
	// ListByScope returns the ranked table: points desc, goal difference
	// desc, goals for desc, team name asc.
	ListByScope(ctx context.Context, tournamentID, categoryID int) ([]*models.Standing, error)
	DeleteByScope(ctx context.Context, exec SQLExecutor, tournamentID, categoryID int) error
}

type postgresStandingRepository struct {
	db *sql.DB
}

func NewPostgresStandingRepository(db *sql.DB) StandingRepository {
	return &postgresStandingRepository{db: db}
}

func (r *postgresStandingRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresStandingRepository) Create(ctx context.Context, exec SQLExecutor, standing *models.Standing) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO standings
			(tournament_id, category_id, team_id, points, played, wins, draws, losses,
			 goals_for, goals_against, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	if standing.UpdatedAt.IsZero() {
		standing.UpdatedAt = time.Now()
	}
	return executor.QueryRowContext(ctx, query,
		standing.TournamentID, standing.CategoryID, standing.TeamID,
		standing.Points, standing.Played, standing.Wins, standing.Draws, standing.Losses,
		standing.GoalsFor, standing.GoalsAgainst, standing.UpdatedAt,
	).Scan(&standing.ID)
}

func (r *postgresStandingRepository) GetByScopeAndTeam(ctx context.Context, exec SQLExecutor, tournamentID, categoryID, teamID int) (*models.Standing, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, tournament_id, category_id, team_id, points, played, wins, draws, losses,
		       goals_for, goals_against, updated_at
		FROM standings
		WHERE tournament_id = $1 AND category_id = $2 AND team_id = $3`
	var s models.Standing
	err := executor.QueryRowContext(ctx, query, tournamentID, categoryID, teamID).Scan(
		&s.ID, &s.TournamentID, &s.CategoryID, &s.TeamID, &s.Points, &s.Played,
		&s.Wins, &s.Draws, &s.Losses, &s.GoalsFor, &s.GoalsAgainst, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStandingNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresStandingRepository) GetOrCreate(ctx context.Context, exec SQLExecutor, tournamentID, categoryID, teamID int) (*models.Standing, error) {
	standing, err := r.GetByScopeAndTeam(ctx, exec, tournamentID, categoryID, teamID)
	if err == nil {
		return standing, nil
	}
	if !errors.Is(err, ErrStandingNotFound) {
		return nil, fmt.Errorf("failed to get standing for t:%d c:%d team:%d: %w", tournamentID, categoryID, teamID, err)
	}
	fresh := &models.Standing{
		TournamentID: tournamentID,
		CategoryID:   categoryID,
		TeamID:       teamID,
		UpdatedAt:    time.Now(),
	}
	if createErr := r.Create(ctx, exec, fresh); createErr != nil {
		return nil, fmt.Errorf("failed to create standing for t:%d c:%d team:%d: %w", tournamentID, categoryID, teamID, createErr)
	}
	return fresh, nil
}

func (r *postgresStandingRepository) Update(ctx context.Context, exec SQLExecutor, standing *models.Standing) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE standings SET
			points = $1, played = $2, wins = $3, draws = $4, losses = $5,
			goals_for = $6, goals_against = $7, updated_at = NOW()
		WHERE id = $8`
	result, err := executor.ExecContext(ctx, query,
		standing.Points, standing.Played, standing.Wins, standing.Draws, standing.Losses,
		standing.GoalsFor, standing.GoalsAgainst, standing.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrStandingNotFound)
}

func (r *postgresStandingRepository) ListByScope(ctx context.Context, tournamentID, categoryID int) ([]*models.Standing, error) {
	query := `
		SELECT s.id, s.tournament_id, s.category_id, s.team_id, s.points, s.played, s.wins,
		       s.draws, s.losses, s.goals_for, s.goals_against, s.updated_at, t.name
		FROM standings s
		JOIN teams t ON t.id = s.team_id
		WHERE s.tournament_id = $1 AND s.category_id = $2
		ORDER BY s.points DESC, (s.goals_for - s.goals_against) DESC, s.goals_for DESC, t.name ASC`
	rows, err := r.db.QueryContext(ctx, query, tournamentID, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]*models.Standing, 0)
	for rows.Next() {
		var s models.Standing
		err := rows.Scan(
			&s.ID, &s.TournamentID, &s.CategoryID, &s.TeamID, &s.Points, &s.Played,
			&s.Wins, &s.Draws, &s.Losses, &s.GoalsFor, &s.GoalsAgainst, &s.UpdatedAt, &s.TeamName,
		)
		if err != nil {
			return nil, err
		}
		standings = append(standings, &s)
	}
	return standings, rows.Err()
}

func (r *postgresStandingRepository) DeleteByScope(ctx context.Context, exec SQLExecutor, tournamentID, categoryID int) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx,
		`DELETE FROM standings WHERE tournament_id = $1 AND category_id = $2`,
		tournamentID, categoryID)
	return err
}
