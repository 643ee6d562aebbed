package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AndresMate/amateur-league-system/models"
	"github.com/AndresMate/amateur-league-system/repositories"
	"golang.org/x/sync/errgroup"
)

// Scoring rule: win 3, draw 1, loss 0.
const (
	winPoints  = 3
	drawPoints = 1
)

type StandingsOverview struct {
	Standings        []*models.Standing `json:"standings"`
	TotalMatches     int                `json:"total_matches"`
	FinishedMatches  int                `json:"finished_matches"`
	ScheduledMatches int                `json:"scheduled_matches"`
	PostponedMatches int                `json:"postponed_matches"`
}

type StandingService interface {
	// ApplyResult folds one match result into both teams' aggregate rows.
	// It runs inside the caller's transaction so the two read-modify-write
	// cycles commit or roll back together with the result itself.
	ApplyResult(ctx context.Context, exec repositories.SQLExecutor, match *models.Match, homeScore, awayScore int) error
	// Recalculate rebuilds the scope's table from scratch: delete every row,
	// replay every persisted result. Atomic; replay order does not change
	// the totals because per-team updates commute.
	Recalculate(ctx context.Context, tournamentID, categoryID int) error
	// RebuildScope is the delete-and-replay core of Recalculate, exposed so
	// other services can run it inside their own transactions.
	RebuildScope(ctx context.Context, exec repositories.SQLExecutor, tournamentID, categoryID int) error
	List(ctx context.Context, tournamentID, categoryID int) ([]*models.Standing, error)
	Overview(ctx context.Context, tournamentID, categoryID int) (*StandingsOverview, error)
}

type standingService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	resultRepo     repositories.ResultRepository
	standingRepo   repositories.StandingRepository
	logger         *slog.Logger
}

func NewStandingService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	resultRepo repositories.ResultRepository,
	standingRepo repositories.StandingRepository,
	logger *slog.Logger,
) StandingService {
	return &standingService{
		db:             db,
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		resultRepo:     resultRepo,
		standingRepo:   standingRepo,
		logger:         logger,
	}
}

func (s *standingService) ApplyResult(ctx context.Context, exec repositories.SQLExecutor, match *models.Match, homeScore, awayScore int) error {
	if match.HomeTeamID == nil || match.AwayTeamID == nil {
		return ErrMatchMissingTeams
	}
	if homeScore < 0 || awayScore < 0 {
		return ErrNegativeScore
	}

	home, err := s.standingRepo.GetOrCreate(ctx, exec, match.TournamentID, match.CategoryID, *match.HomeTeamID)
	if err != nil {
		return err
	}
	away, err := s.standingRepo.GetOrCreate(ctx, exec, match.TournamentID, match.CategoryID, *match.AwayTeamID)
	if err != nil {
		return err
	}

	home.Played++
	away.Played++
	home.GoalsFor += homeScore
	home.GoalsAgainst += awayScore
	away.GoalsFor += awayScore
	away.GoalsAgainst += homeScore

	switch {
	case homeScore > awayScore:
		home.Wins++
		home.Points += winPoints
		away.Losses++
	case homeScore < awayScore:
		away.Wins++
		away.Points += winPoints
		home.Losses++
	default:
		home.Draws++
		away.Draws++
		home.Points += drawPoints
		away.Points += drawPoints
	}

	if err := s.standingRepo.Update(ctx, exec, home); err != nil {
		return fmt.Errorf("failed to update home standing (team %d): %w", home.TeamID, err)
	}
	if err := s.standingRepo.Update(ctx, exec, away); err != nil {
		return fmt.Errorf("failed to update away standing (team %d): %w", away.TeamID, err)
	}
	return nil
}

func (s *standingService) Recalculate(ctx context.Context, tournamentID, categoryID int) error {
	if err := s.validateScope(ctx, tournamentID, categoryID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := s.RebuildScope(ctx, tx, tournamentID, categoryID); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit standings rebuild: %w", err)
	}
	return nil
}

func (s *standingService) RebuildScope(ctx context.Context, exec repositories.SQLExecutor, tournamentID, categoryID int) error {
	if err := s.standingRepo.DeleteByScope(ctx, exec, tournamentID, categoryID); err != nil {
		return fmt.Errorf("failed to clear standings for scope t:%d c:%d: %w", tournamentID, categoryID, err)
	}
	finished, err := s.resultRepo.ListByScope(ctx, exec, tournamentID, categoryID)
	if err != nil {
		return fmt.Errorf("failed to load results for scope t:%d c:%d: %w", tournamentID, categoryID, err)
	}
	for _, match := range finished {
		if err := s.ApplyResult(ctx, exec, match, match.Result.HomeScore, match.Result.AwayScore); err != nil {
			return fmt.Errorf("failed to replay result of match %d: %w", match.ID, err)
		}
	}
	s.logger.Info("standings rebuilt",
		slog.Int("tournament_id", tournamentID),
		slog.Int("category_id", categoryID),
		slog.Int("results_replayed", len(finished)),
	)
	return nil
}

func (s *standingService) List(ctx context.Context, tournamentID, categoryID int) ([]*models.Standing, error) {
	if err := s.validateScope(ctx, tournamentID, categoryID); err != nil {
		return nil, err
	}
	standings, err := s.standingRepo.ListByScope(ctx, tournamentID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list standings for scope t:%d c:%d: %w", tournamentID, categoryID, err)
	}
	return standings, nil
}

func (s *standingService) Overview(ctx context.Context, tournamentID, categoryID int) (*StandingsOverview, error) {
	if err := s.validateScope(ctx, tournamentID, categoryID); err != nil {
		return nil, err
	}

	overview := &StandingsOverview{}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		standings, err := s.standingRepo.ListByScope(gCtx, tournamentID, categoryID)
		if err != nil {
			return fmt.Errorf("failed to list standings: %w", err)
		}
		overview.Standings = standings
		return nil
	})

	g.Go(func() error {
		matches, err := s.matchRepo.ListByScope(gCtx, tournamentID, categoryID)
		if err != nil {
			return fmt.Errorf("failed to list matches: %w", err)
		}
		overview.TotalMatches = len(matches)
		for _, match := range matches {
			switch match.Status {
			case models.MatchStatusFinished:
				overview.FinishedMatches++
			case models.MatchStatusScheduled:
				overview.ScheduledMatches++
			case models.MatchStatusPostponed:
				overview.PostponedMatches++
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overview, nil
}

func (s *standingService) validateScope(ctx context.Context, tournamentID, categoryID int) error {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	}
	category, err := s.tournamentRepo.GetCategory(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	if category.TournamentID != tournamentID {
		return ErrCategoryScopeMismatch
	}
	return nil
}
