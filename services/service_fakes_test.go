package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/AndresMate/amateur-league-system/models"
	"github.com/AndresMate/amateur-league-system/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func scopeTeamKey(tournamentID, categoryID, teamID int) string {
	return fmt.Sprintf("%d-%d-%d", tournamentID, categoryID, teamID)
}

// fakeTournamentRepo serves a single tournament with a single category.
type fakeTournamentRepo struct {
	tournament models.Tournament
	category   models.Category
}

func (f *fakeTournamentRepo) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	if id != f.tournament.ID {
		return nil, repositories.ErrTournamentNotFound
	}
	t := f.tournament
	return &t, nil
}

func (f *fakeTournamentRepo) GetCategory(_ context.Context, id int) (*models.Category, error) {
	if id != f.category.ID {
		return nil, repositories.ErrCategoryNotFound
	}
	c := f.category
	return &c, nil
}

type fakeTeamRepo struct {
	teams []*models.Team
}

func (f *fakeTeamRepo) Create(context.Context, repositories.SQLExecutor, *models.Team) error {
	return nil
}

func (f *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	for _, team := range f.teams {
		if team.ID == id {
			return team, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (f *fakeTeamRepo) ListActiveByScope(_ context.Context, tournamentID, categoryID int) ([]*models.Team, error) {
	var out []*models.Team
	for _, team := range f.teams {
		if team.TournamentID == tournamentID && team.CategoryID == categoryID && team.Active {
			out = append(out, team)
		}
	}
	return out, nil
}

func (f *fakeTeamRepo) UpdateCrestURL(context.Context, int, *string) error { return nil }
func (f *fakeTeamRepo) SetActive(context.Context, int, bool) error        { return nil }

type fakeAvailabilityRepo struct {
	rows []models.TeamAvailability
}

func (f *fakeAvailabilityRepo) ListByTeam(_ context.Context, teamID int) ([]models.TeamAvailability, error) {
	return f.rowsForTeams([]int{teamID}), nil
}

func (f *fakeAvailabilityRepo) ListByTeams(_ context.Context, teamIDs []int) ([]models.TeamAvailability, error) {
	return f.rowsForTeams(teamIDs), nil
}

func (f *fakeAvailabilityRepo) ReplaceForTeam(context.Context, repositories.SQLExecutor, int, []models.TeamAvailability) error {
	return nil
}

func (f *fakeAvailabilityRepo) rowsForTeams(teamIDs []int) []models.TeamAvailability {
	wanted := make(map[int]bool, len(teamIDs))
	for _, id := range teamIDs {
		wanted[id] = true
	}
	var out []models.TeamAvailability
	for _, row := range f.rows {
		if wanted[row.TeamID] {
			out = append(out, row)
		}
	}
	return out
}

// fakeStandingRepo keeps standings in a map, ignoring the executor.
type fakeStandingRepo struct {
	rows map[string]*models.Standing
}

func newFakeStandingRepo() *fakeStandingRepo {
	return &fakeStandingRepo{rows: make(map[string]*models.Standing)}
}

func (f *fakeStandingRepo) Create(_ context.Context, _ repositories.SQLExecutor, standing *models.Standing) error {
	copied := *standing
	f.rows[scopeTeamKey(standing.TournamentID, standing.CategoryID, standing.TeamID)] = &copied
	return nil
}

func (f *fakeStandingRepo) GetByScopeAndTeam(_ context.Context, _ repositories.SQLExecutor, tournamentID, categoryID, teamID int) (*models.Standing, error) {
	row, ok := f.rows[scopeTeamKey(tournamentID, categoryID, teamID)]
	if !ok {
		return nil, repositories.ErrStandingNotFound
	}
	copied := *row
	return &copied, nil
}

func (f *fakeStandingRepo) GetOrCreate(ctx context.Context, exec repositories.SQLExecutor, tournamentID, categoryID, teamID int) (*models.Standing, error) {
	if row, err := f.GetByScopeAndTeam(ctx, exec, tournamentID, categoryID, teamID); err == nil {
		return row, nil
	}
	standing := &models.Standing{TournamentID: tournamentID, CategoryID: categoryID, TeamID: teamID}
	if err := f.Create(ctx, exec, standing); err != nil {
		return nil, err
	}
	return standing, nil
}

func (f *fakeStandingRepo) Update(_ context.Context, _ repositories.SQLExecutor, standing *models.Standing) error {
	key := scopeTeamKey(standing.TournamentID, standing.CategoryID, standing.TeamID)
	if _, ok := f.rows[key]; !ok {
		return repositories.ErrStandingNotFound
	}
	copied := *standing
	f.rows[key] = &copied
	return nil
}

func (f *fakeStandingRepo) ListByScope(_ context.Context, tournamentID, categoryID int) ([]*models.Standing, error) {
	var out []*models.Standing
	for _, row := range f.rows {
		if row.TournamentID == tournamentID && row.CategoryID == categoryID {
			copied := *row
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference() != b.GoalDifference() {
			return a.GoalDifference() > b.GoalDifference()
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.TeamName < b.TeamName
	})
	return out, nil
}

func (f *fakeStandingRepo) DeleteByScope(_ context.Context, _ repositories.SQLExecutor, tournamentID, categoryID int) error {
	for key, row := range f.rows {
		if row.TournamentID == tournamentID && row.CategoryID == categoryID {
			delete(f.rows, key)
		}
	}
	return nil
}

// fakeResultRepo serves finished matches with their results attached.
type fakeResultRepo struct {
	finished []*models.Match
}

func (f *fakeResultRepo) Create(context.Context, repositories.SQLExecutor, *models.MatchResult) error {
	return nil
}

func (f *fakeResultRepo) GetByMatch(_ context.Context, matchID int) (*models.MatchResult, error) {
	for _, match := range f.finished {
		if match.ID == matchID {
			return match.Result, nil
		}
	}
	return nil, repositories.ErrResultNotFound
}

func (f *fakeResultRepo) ListByScope(_ context.Context, _ repositories.SQLExecutor, tournamentID, categoryID int) ([]*models.Match, error) {
	var out []*models.Match
	for _, match := range f.finished {
		if match.TournamentID == tournamentID && match.CategoryID == categoryID {
			out = append(out, match)
		}
	}
	return out, nil
}

func (f *fakeResultRepo) DeleteByMatch(context.Context, repositories.SQLExecutor, int) error {
	return nil
}

func (f *fakeResultRepo) DeleteByScope(context.Context, repositories.SQLExecutor, int, int) error {
	return nil
}

type fakeMatchRepo struct {
	matches []*models.Match
}

func (f *fakeMatchRepo) CreateBatch(_ context.Context, _ repositories.SQLExecutor, matches []*models.Match) error {
	for i, match := range matches {
		match.ID = len(f.matches) + i + 1
	}
	f.matches = append(f.matches, matches...)
	return nil
}

func (f *fakeMatchRepo) GetByID(_ context.Context, id int) (*models.Match, error) {
	for _, match := range f.matches {
		if match.ID == id {
			return match, nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (f *fakeMatchRepo) ListByScope(_ context.Context, tournamentID, categoryID int) ([]*models.Match, error) {
	var out []*models.Match
	for _, match := range f.matches {
		if match.TournamentID == tournamentID && match.CategoryID == categoryID {
			out = append(out, match)
		}
	}
	return out, nil
}

func (f *fakeMatchRepo) DeleteByScope(context.Context, repositories.SQLExecutor, int, int) error {
	return nil
}

func (f *fakeMatchRepo) UpdateStatus(context.Context, repositories.SQLExecutor, int, models.MatchStatus) error {
	return nil
}

func (f *fakeMatchRepo) SetParticipant(context.Context, repositories.SQLExecutor, int, int, int) error {
	return nil
}

func (f *fakeMatchRepo) UpdateNextMatchInfo(context.Context, repositories.SQLExecutor, int, *int, *int) error {
	return nil
}
