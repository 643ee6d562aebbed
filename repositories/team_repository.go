package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/AndresMate/amateur-league-system/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name already in use for this tournament and category")
	ErrTeamScopeInvalid = errors.New("team tournament or category invalid")
)

type TeamRepository interface {
	Create(ctx context.Context, exec SQLExecutor, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	// ListActiveByScope returns the active teams of a (tournament, category)
	// pair ordered by id, which fixes the seeding and pairing order.
	ListActiveByScope(ctx context.Context, tournamentID, categoryID int) ([]*models.Team, error)
	UpdateCrestURL(ctx context.Context, id int, crestURL *string) error
	SetActive(ctx context.Context, id int, active bool) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamRepository) Create(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO teams (name, tournament_id, category_id, active, inscription_id, club_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	err := executor.QueryRowContext(ctx, query,
		team.Name, team.TournamentID, team.CategoryID, team.Active,
		team.InscriptionID, team.ClubID,
	).Scan(&team.ID, &team.CreatedAt)
	return r.handleTeamError(err)
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `
		SELECT id, name, tournament_id, category_id, active, inscription_id, club_id, crest_url, created_at
		FROM teams
		WHERE id = $1`
	return r.scanTeam(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresTeamRepository) ListActiveByScope(ctx context.Context, tournamentID, categoryID int) ([]*models.Team, error) {
	query := `
		SELECT id, name, tournament_id, category_id, active, inscription_id, club_id, crest_url, created_at
		FROM teams
		WHERE tournament_id = $1 AND category_id = $2 AND active = TRUE
		ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query, tournamentID, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		team, errScan := r.scanTeam(rows)
		if errScan != nil {
			return nil, errScan
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) UpdateCrestURL(ctx context.Context, id int, crestURL *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE teams SET crest_url = $1 WHERE id = $2`, crestURL, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) SetActive(ctx context.Context, id int, active bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE teams SET active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) scanTeam(scanner interface{ Scan(...interface{}) error }) (*models.Team, error) {
	var team models.Team
	err := scanner.Scan(
		&team.ID, &team.Name, &team.TournamentID, &team.CategoryID, &team.Active,
		&team.InscriptionID, &team.ClubID, &team.CrestURL, &team.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (r *postgresTeamRepository) handleTeamError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Constraint {
		case "teams_name_scope_key":
			return ErrTeamNameConflict
		case "teams_tournament_id_fkey", "teams_category_id_fkey":
			return ErrTeamScopeInvalid
		}
	}
	return err
}
