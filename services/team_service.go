package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AndresMate/amateur-league-system/fixture"
	"github.com/AndresMate/amateur-league-system/models"
	"github.com/AndresMate/amateur-league-system/repositories"
	"github.com/AndresMate/amateur-league-system/storage"
)

type CreateTeamInput struct {
	Name          string `json:"name"`
	TournamentID  int    `json:"tournament_id"`
	CategoryID    int    `json:"category_id"`
	InscriptionID *int   `json:"inscription_id,omitempty"`
	ClubID        *int   `json:"club_id,omitempty"`
}

type AvailabilityWindowInput struct {
	DayOfWeek models.DayOfWeek `json:"day_of_week"`
	StartTime string           `json:"start_time"`
	EndTime   string           `json:"end_time"`
	Available bool             `json:"available"`
}

type TeamService interface {
	Create(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	Get(ctx context.Context, id int) (*models.Team, error)
	GetAvailability(ctx context.Context, teamID int) ([]models.TeamAvailability, error)
	// ReplaceAvailability swaps the team's whole weekly window set. Windows
	// must use a known day-of-week and a start before the end.
	ReplaceAvailability(ctx context.Context, teamID int, windows []AvailabilityWindowInput) ([]models.TeamAvailability, error)
	UploadCrest(ctx context.Context, teamID int, contentType string, data io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo         repositories.TeamRepository
	availabilityRepo repositories.AvailabilityRepository
	tournamentRepo   repositories.TournamentRepository
	uploader         storage.FileUploader
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	availabilityRepo repositories.AvailabilityRepository,
	tournamentRepo repositories.TournamentRepository,
	uploader storage.FileUploader,
) TeamService {
	return &teamService{
		teamRepo:         teamRepo,
		availabilityRepo: availabilityRepo,
		tournamentRepo:   tournamentRepo,
		uploader:         uploader,
	}
}

func (s *teamService) Create(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	if _, err := s.tournamentRepo.GetByID(ctx, input.TournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	category, err := s.tournamentRepo.GetCategory(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	if category.TournamentID != input.TournamentID {
		return nil, ErrCategoryScopeMismatch
	}

	team := &models.Team{
		Name:          name,
		TournamentID:  input.TournamentID,
		CategoryID:    input.CategoryID,
		Active:        true,
		InscriptionID: input.InscriptionID,
		ClubID:        input.ClubID,
	}
	if err := s.teamRepo.Create(ctx, nil, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *teamService) Get(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	availability, err := s.availabilityRepo.ListByTeam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability for team %d: %w", id, err)
	}
	team.Availability = availability
	return team, nil
}

func (s *teamService) GetAvailability(ctx context.Context, teamID int) ([]models.TeamAvailability, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return s.availabilityRepo.ListByTeam(ctx, teamID)
}

func (s *teamService) ReplaceAvailability(ctx context.Context, teamID int, windows []AvailabilityWindowInput) ([]models.TeamAvailability, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	rows := make([]models.TeamAvailability, 0, len(windows))
	for _, w := range windows {
		if _, ok := w.DayOfWeek.Weekday(); !ok {
			return nil, fmt.Errorf("%w: unknown day %q", ErrInvalidAvailability, w.DayOfWeek)
		}
		start, err := fixture.ParseClock(w.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAvailability, err)
		}
		end, err := fixture.ParseClock(w.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAvailability, err)
		}
		if start >= end {
			return nil, fmt.Errorf("%w: start %s must be before end %s", ErrInvalidAvailability, w.StartTime, w.EndTime)
		}
		rows = append(rows, models.TeamAvailability{
			TeamID:    teamID,
			DayOfWeek: w.DayOfWeek,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
			Available: w.Available,
		})
	}

	if err := s.availabilityRepo.ReplaceForTeam(ctx, nil, teamID, rows); err != nil {
		return nil, fmt.Errorf("failed to replace availability for team %d: %w", teamID, err)
	}
	return rows, nil
}

func (s *teamService) UploadCrest(ctx context.Context, teamID int, contentType string, data io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrCrestUploadUnavailable
	}
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	key := fmt.Sprintf("teams/%d/crest", teamID)
	uploaded, err := s.uploader.Upload(ctx, key, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to upload crest for team %d: %w", teamID, err)
	}
	if err := s.teamRepo.UpdateCrestURL(ctx, teamID, &uploaded.Location); err != nil {
		return nil, err
	}
	team.CrestURL = &uploaded.Location
	return team, nil
}
