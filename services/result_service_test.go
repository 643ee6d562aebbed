package services

import (
	"context"
	"errors"
	"testing"

	"github.com/AndresMate/amateur-league-system/models"
)

func strPtr(v string) *string { return &v }

func newTestResultService(matchRepo *fakeMatchRepo) *resultService {
	return &resultService{
		matchRepo:    matchRepo,
		resultRepo:   &fakeResultRepo{},
		standingRepo: newFakeStandingRepo(),
		logger:       testLogger(),
	}
}

func TestSubmitRejectsKnockoutDraw(t *testing.T) {
	semifinal := &models.Match{
		ID:           1,
		TournamentID: 1,
		CategoryID:   10,
		HomeTeamID:   intPtr(100),
		AwayTeamID:   intPtr(200),
		Status:       models.MatchStatusScheduled,
		Round:        1,
		BracketUID:   strPtr("R1M1"),
		NextMatchID:  intPtr(3),
		WinnerToSlot: intPtr(1),
	}
	final := &models.Match{
		ID:           3,
		TournamentID: 1,
		CategoryID:   10,
		HomeTeamID:   intPtr(100),
		AwayTeamID:   intPtr(300),
		Status:       models.MatchStatusScheduled,
		Round:        2,
		BracketUID:   strPtr("R2M1"),
	}
	svc := newTestResultService(&fakeMatchRepo{matches: []*models.Match{semifinal, final}})
	ctx := context.Background()

	if _, err := svc.Submit(ctx, 1, SubmitResultInput{HomeScore: 1, AwayScore: 1}); !errors.Is(err, ErrKnockoutDraw) {
		t.Errorf("semifinal draw: got %v, want ErrKnockoutDraw", err)
	}
	// The final has no next match but is still a bracket match: a draw would
	// leave the bracket without a winner.
	if _, err := svc.Submit(ctx, 3, SubmitResultInput{HomeScore: 1, AwayScore: 1}); !errors.Is(err, ErrKnockoutDraw) {
		t.Errorf("final draw: got %v, want ErrKnockoutDraw", err)
	}
}

func TestSubmitValidatesMatchState(t *testing.T) {
	cancelled := &models.Match{
		ID:           1,
		TournamentID: 1,
		CategoryID:   10,
		HomeTeamID:   intPtr(100),
		AwayTeamID:   intPtr(200),
		Status:       models.MatchStatusCancelled,
	}
	undecided := &models.Match{
		ID:           2,
		TournamentID: 1,
		CategoryID:   10,
		Status:       models.MatchStatusPostponed,
		BracketUID:   strPtr("R2M1"),
	}
	svc := newTestResultService(&fakeMatchRepo{matches: []*models.Match{cancelled, undecided}})
	ctx := context.Background()

	if _, err := svc.Submit(ctx, 1, SubmitResultInput{HomeScore: 1, AwayScore: 0}); !errors.Is(err, ErrMatchNotPlayable) {
		t.Errorf("cancelled match: got %v, want ErrMatchNotPlayable", err)
	}
	if _, err := svc.Submit(ctx, 2, SubmitResultInput{HomeScore: 1, AwayScore: 0}); !errors.Is(err, ErrMatchMissingTeams) {
		t.Errorf("undecided match: got %v, want ErrMatchMissingTeams", err)
	}
	if _, err := svc.Submit(ctx, 99, SubmitResultInput{HomeScore: 1, AwayScore: 0}); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("unknown match: got %v, want ErrMatchNotFound", err)
	}
	if _, err := svc.Submit(ctx, 1, SubmitResultInput{HomeScore: -1, AwayScore: 0}); !errors.Is(err, ErrNegativeScore) {
		t.Errorf("negative score: got %v, want ErrNegativeScore", err)
	}
}
