package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/AndresMate/amateur-league-system/fixture"
	"github.com/AndresMate/amateur-league-system/models"
	"github.com/AndresMate/amateur-league-system/repositories"
)

// DefaultRoundSpacingDays is the calendar gap between the candidate dates of
// consecutive rounds: amateur leagues play one round per week.
const DefaultRoundSpacingDays = 7

type GenerateFixtureInput struct {
	TournamentID int
	CategoryID   int
	Mode         models.FixtureMode
	StartDate    time.Time
}

type GenerateFixtureResult struct {
	MatchesCreated int `json:"matches_created"`
	Scheduled      int `json:"scheduled"`
	Postponed      int `json:"postponed"`
}

type FixtureService interface {
	Generate(ctx context.Context, input GenerateFixtureInput) (*GenerateFixtureResult, error)
	// DeleteFixture removes the scope's matches together with their results
	// and standings, in one transaction. Standings are derived data; leaving
	// them behind after the matches are gone would make the table lie.
	DeleteFixture(ctx context.Context, tournamentID, categoryID int) error
	ListMatches(ctx context.Context, tournamentID, categoryID int) ([]*models.Match, error)
}

type FixtureServiceConfig struct {
	SlotHorizonDays  int
	RoundSpacingDays int
}

type fixtureService struct {
	db               *sql.DB
	tournamentRepo   repositories.TournamentRepository
	teamRepo         repositories.TeamRepository
	availabilityRepo repositories.AvailabilityRepository
	matchRepo        repositories.MatchRepository
	resultRepo       repositories.ResultRepository
	standingRepo     repositories.StandingRepository
	slotHorizonDays  int
	roundSpacingDays int
	logger           *slog.Logger
}

func NewFixtureService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	availabilityRepo repositories.AvailabilityRepository,
	matchRepo repositories.MatchRepository,
	resultRepo repositories.ResultRepository,
	standingRepo repositories.StandingRepository,
	cfg FixtureServiceConfig,
	logger *slog.Logger,
) FixtureService {
	if cfg.SlotHorizonDays <= 0 {
		cfg.SlotHorizonDays = fixture.DefaultSlotHorizonDays
	}
	if cfg.RoundSpacingDays <= 0 {
		cfg.RoundSpacingDays = DefaultRoundSpacingDays
	}
	return &fixtureService{
		db:               db,
		tournamentRepo:   tournamentRepo,
		teamRepo:         teamRepo,
		availabilityRepo: availabilityRepo,
		matchRepo:        matchRepo,
		resultRepo:       resultRepo,
		standingRepo:     standingRepo,
		slotHorizonDays:  cfg.SlotHorizonDays,
		roundSpacingDays: cfg.RoundSpacingDays,
		logger:           logger,
	}
}

func (s *fixtureService) Generate(ctx context.Context, input GenerateFixtureInput) (*GenerateFixtureResult, error) {
	teams, err := s.eligibleTeams(ctx, input.TournamentID, input.CategoryID)
	if err != nil {
		return nil, err
	}

	teamIDs := make([]int, len(teams))
	for i, team := range teams {
		teamIDs[i] = team.ID
	}

	availabilityRows, err := s.availabilityRepo.ListByTeams(ctx, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability for scope t:%d c:%d: %w", input.TournamentID, input.CategoryID, err)
	}
	index := fixture.BuildAvailabilityIndex(availabilityRows)

	var matches []*models.Match
	var links map[string]*fixture.Blueprint
	switch input.Mode {
	case models.FixtureModeRoundRobin:
		matches = s.buildRoundRobinMatches(input, teamIDs, index)
	case models.FixtureModeKnockout:
		matches, links, err = s.buildKnockoutMatches(input, teamIDs, index)
		if err != nil {
			return nil, err
		}
	default:
		return nil, ErrInvalidFixtureMode
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := s.matchRepo.CreateBatch(ctx, tx, matches); err != nil {
		tx.Rollback()
		if errors.Is(err, repositories.ErrMatchAlreadyScheduled) {
			return nil, ErrFixtureAlreadyExists
		}
		return nil, fmt.Errorf("failed to persist fixture matches: %w", err)
	}

	if len(links) > 0 {
		if err := s.linkBracket(ctx, tx, matches, links); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit fixture: %w", err)
	}

	result := &GenerateFixtureResult{MatchesCreated: len(matches)}
	for _, match := range matches {
		switch match.Status {
		case models.MatchStatusScheduled:
			result.Scheduled++
		case models.MatchStatusPostponed:
			result.Postponed++
		}
	}
	s.logger.Info("fixture generated",
		slog.Int("tournament_id", input.TournamentID),
		slog.Int("category_id", input.CategoryID),
		slog.String("mode", string(input.Mode)),
		slog.Int("matches", result.MatchesCreated),
		slog.Int("postponed", result.Postponed),
	)
	return result, nil
}

// buildRoundRobinMatches materializes the circle-method pairings. Each round's
// slot search starts one spacing step later; a pairing with no mutual window
// inside the horizon becomes a postponed match with no start time, which is an
// expected outcome rather than an error.
func (s *fixtureService) buildRoundRobinMatches(input GenerateFixtureInput, teamIDs []int, index fixture.AvailabilityIndex) []*models.Match {
	rounds := fixture.GeneratePairings(teamIDs)
	matches := make([]*models.Match, 0, len(teamIDs)*(len(teamIDs)-1)/2)

	for roundIdx, pairings := range rounds {
		candidate := input.StartDate.AddDate(0, 0, roundIdx*s.roundSpacingDays)
		for _, pairing := range pairings {
			home, away := pairing.HomeTeamID, pairing.AwayTeamID
			match := &models.Match{
				TournamentID: input.TournamentID,
				CategoryID:   input.CategoryID,
				HomeTeamID:   &home,
				AwayTeamID:   &away,
				Round:        roundIdx + 1,
				Status:       models.MatchStatusPostponed,
			}
			slot, ok := fixture.FindSlot(index.WindowsFor(home), index.WindowsFor(away), candidate, s.slotHorizonDays)
			if ok {
				startsAt := slot.StartsAt()
				match.StartsAt = &startsAt
				match.Status = models.MatchStatusScheduled
			}
			matches = append(matches, match)
		}
	}
	return matches
}

// buildKnockoutMatches slots the round-one matches whose participants are
// known; later rounds are created unscheduled with TBD slots and resolved as
// results come in.
func (s *fixtureService) buildKnockoutMatches(input GenerateFixtureInput, teamIDs []int, index fixture.AvailabilityIndex) ([]*models.Match, map[string]*fixture.Blueprint, error) {
	blueprints, err := fixture.BuildSingleElimination(teamIDs)
	if err != nil {
		if errors.Is(err, fixture.ErrNotEnoughTeams) {
			return nil, nil, ErrNotEnoughTeams
		}
		return nil, nil, err
	}

	matches := make([]*models.Match, 0, len(blueprints))
	links := make(map[string]*fixture.Blueprint, len(blueprints))
	for _, bp := range blueprints {
		uid := bp.UID
		match := &models.Match{
			TournamentID: input.TournamentID,
			CategoryID:   input.CategoryID,
			HomeTeamID:   bp.HomeTeamID,
			AwayTeamID:   bp.AwayTeamID,
			Round:        bp.Round,
			Status:       models.MatchStatusPostponed,
			BracketUID:   &uid,
		}
		if bp.HomeTeamID != nil && bp.AwayTeamID != nil {
			candidate := input.StartDate.AddDate(0, 0, (bp.Round-1)*s.roundSpacingDays)
			slot, ok := fixture.FindSlot(index.WindowsFor(*bp.HomeTeamID), index.WindowsFor(*bp.AwayTeamID), candidate, s.slotHorizonDays)
			if ok {
				startsAt := slot.StartsAt()
				match.StartsAt = &startsAt
				match.Status = models.MatchStatusScheduled
			}
		}
		matches = append(matches, match)
		links[uid] = bp
	}
	return matches, links, nil
}

// linkBracket runs after the batch insert, once database ids exist, and wires
// each match to the bracket match its winner feeds.
func (s *fixtureService) linkBracket(ctx context.Context, tx *sql.Tx, matches []*models.Match, links map[string]*fixture.Blueprint) error {
	idByUID := make(map[string]int, len(matches))
	for _, match := range matches {
		if match.BracketUID != nil {
			idByUID[*match.BracketUID] = match.ID
		}
	}

	for _, match := range matches {
		if match.BracketUID == nil {
			continue
		}
		bp := links[*match.BracketUID]
		assign := func(sourceUID *string, slot int) error {
			if sourceUID == nil {
				return nil
			}
			sourceID, ok := idByUID[*sourceUID]
			if !ok {
				return fmt.Errorf("bracket link target %s missing from batch", *sourceUID)
			}
			slotCopy := slot
			matchID := match.ID
			return s.matchRepo.UpdateNextMatchInfo(ctx, tx, sourceID, &matchID, &slotCopy)
		}
		if err := assign(bp.SourceMatch1UID, 1); err != nil {
			return err
		}
		if err := assign(bp.SourceMatch2UID, 2); err != nil {
			return err
		}
	}
	return nil
}

func (s *fixtureService) DeleteFixture(ctx context.Context, tournamentID, categoryID int) error {
	if err := s.validateScope(ctx, tournamentID, categoryID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := s.resultRepo.DeleteByScope(ctx, tx, tournamentID, categoryID); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete results for scope t:%d c:%d: %w", tournamentID, categoryID, err)
	}
	if err := s.matchRepo.DeleteByScope(ctx, tx, tournamentID, categoryID); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete matches for scope t:%d c:%d: %w", tournamentID, categoryID, err)
	}
	if err := s.standingRepo.DeleteByScope(ctx, tx, tournamentID, categoryID); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete standings for scope t:%d c:%d: %w", tournamentID, categoryID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit fixture deletion: %w", err)
	}

	s.logger.Info("fixture deleted",
		slog.Int("tournament_id", tournamentID),
		slog.Int("category_id", categoryID),
	)
	return nil
}

func (s *fixtureService) ListMatches(ctx context.Context, tournamentID, categoryID int) ([]*models.Match, error) {
	if err := s.validateScope(ctx, tournamentID, categoryID); err != nil {
		return nil, err
	}
	matches, err := s.matchRepo.ListByScope(ctx, tournamentID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for scope t:%d c:%d: %w", tournamentID, categoryID, err)
	}
	return matches, nil
}

func (s *fixtureService) eligibleTeams(ctx context.Context, tournamentID, categoryID int) ([]*models.Team, error) {
	if err := s.validateScope(ctx, tournamentID, categoryID); err != nil {
		return nil, err
	}
	teams, err := s.teamRepo.ListActiveByScope(ctx, tournamentID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for scope t:%d c:%d: %w", tournamentID, categoryID, err)
	}
	if len(teams) < 2 {
		return nil, ErrNotEnoughTeams
	}
	return teams, nil
}

func (s *fixtureService) validateScope(ctx context.Context, tournamentID, categoryID int) error {
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
