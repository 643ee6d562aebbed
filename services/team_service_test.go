package services

import (
	"context"
	"errors"
	"testing"

	"github.com/AndresMate/amateur-league-system/models"
)

func newTestTeamService(teams []*models.Team) TeamService {
	return NewTeamService(
		&fakeTeamRepo{teams: teams},
		&fakeAvailabilityRepo{},
		&fakeTournamentRepo{
			tournament: models.Tournament{ID: 1},
			category:   models.Category{ID: 10, TournamentID: 1},
		},
		nil,
	)
}

func TestCreateTeamValidation(t *testing.T) {
	svc := newTestTeamService(nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateTeamInput{Name: "  ", TournamentID: 1, CategoryID: 10}); !errors.Is(err, ErrTeamNameRequired) {
		t.Errorf("blank name: got %v, want ErrTeamNameRequired", err)
	}
	if _, err := svc.Create(ctx, CreateTeamInput{Name: "Lions", TournamentID: 99, CategoryID: 10}); !errors.Is(err, ErrTournamentNotFound) {
		t.Errorf("unknown tournament: got %v, want ErrTournamentNotFound", err)
	}
	if _, err := svc.Create(ctx, CreateTeamInput{Name: "Lions", TournamentID: 1, CategoryID: 99}); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("unknown category: got %v, want ErrCategoryNotFound", err)
	}

	team, err := svc.Create(ctx, CreateTeamInput{Name: " Lions ", TournamentID: 1, CategoryID: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if team.Name != "Lions" {
		t.Errorf("got name %q, want trimmed %q", team.Name, "Lions")
	}
	if !team.Active {
		t.Error("new teams must start active")
	}
}

func TestReplaceAvailabilityValidation(t *testing.T) {
	svc := newTestTeamService(scopedTeams(7))
	ctx := context.Background()

	cases := []struct {
		name   string
		window AvailabilityWindowInput
	}{
		{"unknown day", AvailabilityWindowInput{DayOfWeek: "SOMEDAY", StartTime: "18:00", EndTime: "20:00", Available: true}},
		{"bad start", AvailabilityWindowInput{DayOfWeek: models.Monday, StartTime: "6pm", EndTime: "20:00", Available: true}},
		{"bad end", AvailabilityWindowInput{DayOfWeek: models.Monday, StartTime: "18:00", EndTime: "20h", Available: true}},
		{"inverted", AvailabilityWindowInput{DayOfWeek: models.Monday, StartTime: "20:00", EndTime: "18:00", Available: true}},
		{"empty", AvailabilityWindowInput{DayOfWeek: models.Monday, StartTime: "18:00", EndTime: "18:00", Available: true}},
	}
	for _, tc := range cases {
		if _, err := svc.ReplaceAvailability(ctx, 7, []AvailabilityWindowInput{tc.window}); !errors.Is(err, ErrInvalidAvailability) {
			t.Errorf("%s: got %v, want ErrInvalidAvailability", tc.name, err)
		}
	}

	rows, err := svc.ReplaceAvailability(ctx, 7, []AvailabilityWindowInput{
		{DayOfWeek: models.Saturday, StartTime: "09:00", EndTime: "12:00", Available: true},
		{DayOfWeek: models.Sunday, StartTime: "10:00", EndTime: "13:00", Available: false},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].TeamID != 7 || rows[0].DayOfWeek != models.Saturday {
		t.Errorf("first row wrong: %+v", rows[0])
	}
}

func TestReplaceAvailabilityUnknownTeam(t *testing.T) {
	svc := newTestTeamService(nil)

	if _, err := svc.ReplaceAvailability(context.Background(), 99, nil); !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("got %v, want ErrTeamNotFound", err)
	}
}

func TestUploadCrestWithoutUploader(t *testing.T) {
	svc := newTestTeamService(scopedTeams(7))

	if _, err := svc.UploadCrest(context.Background(), 7, "image/png", nil); !errors.Is(err, ErrCrestUploadUnavailable) {
		t.Errorf("got %v, want ErrCrestUploadUnavailable", err)
	}
}
