package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AndresMate/amateur-league-system/fixture"
	"github.com/AndresMate/amateur-league-system/models"
	"github.com/AndresMate/amateur-league-system/repositories"
)

type SubmitResultInput struct {
	HomeScore int     `json:"home_score"`
	AwayScore int     `json:"away_score"`
	Notes     *string `json:"notes,omitempty"`
	EnteredBy *int    `json:"-"`
}

type ResultService interface {
	// Submit records the score, flips the match to finished, feeds the
	// standings engine and, for bracket matches, advances the winner into
	// its next-round slot. Everything happens in one transaction. The
	// next-round match stays postponed after both its slots resolve; it is
	// scheduled manually, since the advancing teams' availability was not
	// consulted when the bracket was generated.
	Submit(ctx context.Context, matchID int, input SubmitResultInput) (*models.MatchResult, error)
	GetByMatch(ctx context.Context, matchID int) (*models.MatchResult, error)
	// Delete removes the result, reverts the match status and rebuilds the
	// scope's standings so the table never keeps points from a score that
	// no longer exists.
	Delete(ctx context.Context, matchID int) error
}

type resultService struct {
	db           *sql.DB
	matchRepo    repositories.MatchRepository
	resultRepo   repositories.ResultRepository
	standingRepo repositories.StandingRepository
	standings    StandingService
	hub          *fixture.Hub
	logger       *slog.Logger
}

func NewResultService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	resultRepo repositories.ResultRepository,
	standingRepo repositories.StandingRepository,
	standings StandingService,
	hub *fixture.Hub,
	logger *slog.Logger,
) ResultService {
	return &resultService{
		db:           db,
		matchRepo:    matchRepo,
		resultRepo:   resultRepo,
		standingRepo: standingRepo,
		standings:    standings,
		hub:          hub,
		logger:       logger,
	}
}

func (s *resultService) Submit(ctx context.Context, matchID int, input SubmitResultInput) (*models.MatchResult, error) {
	if input.HomeScore < 0 || input.AwayScore < 0 {
		return nil, ErrNegativeScore
	}

	match, err := s.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.Status == models.MatchStatusCancelled {
		return nil, ErrMatchNotPlayable
	}
	if match.HomeTeamID == nil || match.AwayTeamID == nil {
		return nil, ErrMatchMissingTeams
	}
	// Every bracket match, the final included, must produce a winner.
	if match.BracketUID != nil && input.HomeScore == input.AwayScore {
		return nil, ErrKnockoutDraw
	}

	result := &models.MatchResult{
		MatchID:   matchID,
		HomeScore: input.HomeScore,
		AwayScore: input.AwayScore,
		Notes:     input.Notes,
		EnteredBy: input.EnteredBy,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := s.resultRepo.Create(ctx, tx, result); err != nil {
		tx.Rollback()
		if errors.Is(err, repositories.ErrResultAlreadyExists) {
			return nil, ErrResultAlreadyExists
		}
		return nil, fmt.Errorf("failed to save result for match %d: %w", matchID, err)
	}
	if err := s.matchRepo.UpdateStatus(ctx, tx, matchID, models.MatchStatusFinished); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to finish match %d: %w", matchID, err)
	}
	if err := s.standings.ApplyResult(ctx, tx, match, input.HomeScore, input.AwayScore); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update standings for match %d: %w", matchID, err)
	}
	if match.NextMatchID != nil && match.WinnerToSlot != nil {
		winner := *match.HomeTeamID
		if input.AwayScore > input.HomeScore {
			winner = *match.AwayTeamID
		}
		if err := s.matchRepo.SetParticipant(ctx, tx, *match.NextMatchID, *match.WinnerToSlot, winner); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to advance winner of match %d: %w", matchID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit result for match %d: %w", matchID, err)
	}

	s.logger.Info("result recorded",
		slog.Int("match_id", matchID),
		slog.Int("home_score", input.HomeScore),
		slog.Int("away_score", input.AwayScore),
	)
	s.broadcast(ctx, match, "MATCH_RESULT", result)
	return result, nil
}

func (s *resultService) GetByMatch(ctx context.Context, matchID int) (*models.MatchResult, error) {
	result, err := s.resultRepo.GetByMatch(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrResultNotFound) {
			return nil, ErrResultNotFound
		}
		return nil, err
	}
	return result, nil
}

func (s *resultService) Delete(ctx context.Context, matchID int) error {
	match, err := s.getMatch(ctx, matchID)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := s.resultRepo.DeleteByMatch(ctx, tx, matchID); err != nil {
		tx.Rollback()
		if errors.Is(err, repositories.ErrResultNotFound) {
			return ErrResultNotFound
		}
		return fmt.Errorf("failed to delete result of match %d: %w", matchID, err)
	}

	restored := models.MatchStatusPostponed
	if match.StartsAt != nil {
		restored = models.MatchStatusScheduled
	}
	if err := s.matchRepo.UpdateStatus(ctx, tx, matchID, restored); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore status of match %d: %w", matchID, err)
	}

	// Rebuild rather than subtract: the table stays a pure function of the
	// remaining results.
	if err := s.standings.RebuildScope(ctx, tx, match.TournamentID, match.CategoryID); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit result deletion for match %d: %w", matchID, err)
	}

	s.logger.Info("result deleted", slog.Int("match_id", matchID))
	s.broadcast(ctx, match, "RESULT_DELETED", map[string]int{"match_id": matchID})
	return nil
}

func (s *resultService) getMatch(ctx context.Context, matchID int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (s *resultService) broadcast(ctx context.Context, match *models.Match, eventType string, payload interface{}) {
	if s.hub == nil {
		return
	}
	room := fixture.RoomKey(match.TournamentID, match.CategoryID)
	s.hub.BroadcastToRoom(room, fixture.Event{Type: eventType, Payload: payload})

	standings, err := s.standingRepo.ListByScope(ctx, match.TournamentID, match.CategoryID)
	if err != nil {
		s.logger.Error("failed to load standings for broadcast", slog.Any("error", err))
		return
	}
	s.hub.BroadcastToRoom(room, fixture.Event{Type: "STANDINGS_UPDATED", Payload: standings})
}
