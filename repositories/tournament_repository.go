package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/AndresMate/amateur-league-system/models"
)

var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrCategoryNotFound   = errors.New("category not found")
)

type TournamentRepository interface {
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	GetCategory(ctx context.Context, id int) (*models.Category, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `
		SELECT id, name, description, sport_id, start_date, end_date, status, created_at
		FROM tournaments
		WHERE id = $1`
	var t models.Tournament
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Description, &t.SportID,
		&t.StartDate, &t.EndDate, &t.Status, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *postgresTournamentRepository) GetCategory(ctx context.Context, id int) (*models.Category, error) {
	query := `
		SELECT id, tournament_id, name, min_age, max_age
		FROM categories
		WHERE id = $1`
	var c models.Category
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.TournamentID, &c.Name, &c.MinAge, &c.MaxAge,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}
