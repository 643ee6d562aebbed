package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AndresMate/amateur-league-system/models"
	"github.com/lib/pq"
)

var ErrAvailabilityTeamInvalid = errors.New("availability team invalid")

type AvailabilityRepository interface {
	ListByTeam(ctx context.Context, teamID int) ([]models.TeamAvailability, error)
	// ListByTeams loads the windows of several teams at once so fixture
	// generation does one round trip for the whole scope.
	ListByTeams(ctx context.Context, teamIDs []int) ([]models.TeamAvailability, error)
	// ReplaceForTeam swaps the team's whole window set inside one statement
	// sequence; availability rows are owned by the team.
	ReplaceForTeam(ctx context.Context, exec SQLExecutor, teamID int, windows []models.TeamAvailability) error
}

type postgresAvailabilityRepository struct {
	db *sql.DB
}

func NewPostgresAvailabilityRepository(db *sql.DB) AvailabilityRepository {
	return &postgresAvailabilityRepository{db: db}
}

func (r *postgresAvailabilityRepository) ListByTeam(ctx context.Context, teamID int) ([]models.TeamAvailability, error) {
	return r.ListByTeams(ctx, []int{teamID})
}

func (r *postgresAvailabilityRepository) ListByTeams(ctx context.Context, teamIDs []int) ([]models.TeamAvailability, error) {
	if len(teamIDs) == 0 {
		return []models.TeamAvailability{}, nil
	}
	query := `
		SELECT id, team_id, day_of_week, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), available
		FROM team_availability
		WHERE team_id = ANY($1)
		ORDER BY team_id ASC, day_of_week ASC, start_time ASC`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(teamIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	windows := make([]models.TeamAvailability, 0)
	for rows.Next() {
		var w models.TeamAvailability
		if err := rows.Scan(&w.ID, &w.TeamID, &w.DayOfWeek, &w.StartTime, &w.EndTime, &w.Available); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}

func (r *postgresAvailabilityRepository) ReplaceForTeam(ctx context.Context, exec SQLExecutor, teamID int, windows []models.TeamAvailability) error {
	executor := exec
	if executor == nil {
		executor = r.db
	}
	if _, err := executor.ExecContext(ctx, `DELETE FROM team_availability WHERE team_id = $1`, teamID); err != nil {
		return fmt.Errorf("failed to clear availability for team %d: %w", teamID, err)
	}
	query := `
		INSERT INTO team_availability (team_id, day_of_week, start_time, end_time, available)
		VALUES ($1, $2, $3::time, $4::time, $5)
		RETURNING id`
	for i := range windows {
		w := &windows[i]
		w.TeamID = teamID
		err := executor.QueryRowContext(ctx, query, teamID, w.DayOfWeek, w.StartTime, w.EndTime, w.Available).Scan(&w.ID)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Constraint == "team_availability_team_id_fkey" {
				return ErrAvailabilityTeamInvalid
			}
			return fmt.Errorf("failed to insert availability window for team %d: %w", teamID, err)
		}
	}
	return nil
}
