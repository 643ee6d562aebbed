package fixture

import (
	"errors"
	"testing"
)

func TestBuildSingleEliminationPowerOfTwo(t *testing.T) {
	blueprints, err := BuildSingleElimination([]int{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blueprints) != 3 {
		t.Fatalf("got %d matches, want 3", len(blueprints))
	}

	byUID := make(map[string]*Blueprint)
	for _, bp := range blueprints {
		byUID[bp.UID] = bp
	}

	semi1, semi2, final := byUID["R1M1"], byUID["R1M2"], byUID["R2M1"]
	if semi1 == nil || semi2 == nil || final == nil {
		t.Fatalf("missing expected bracket UIDs, got %v", blueprints)
	}

	if *semi1.HomeTeamID != 1 || *semi1.AwayTeamID != 2 {
		t.Errorf("R1M1: got %d vs %d, want 1 vs 2", *semi1.HomeTeamID, *semi1.AwayTeamID)
	}
	if *semi2.HomeTeamID != 3 || *semi2.AwayTeamID != 4 {
		t.Errorf("R1M2: got %d vs %d, want 3 vs 4", *semi2.HomeTeamID, *semi2.AwayTeamID)
	}

	if final.HomeTeamID != nil || final.AwayTeamID != nil {
		t.Error("final participants must start undecided")
	}
	if final.SourceMatch1UID == nil || *final.SourceMatch1UID != "R1M1" {
		t.Errorf("final home source: got %v, want R1M1", final.SourceMatch1UID)
	}
	if final.SourceMatch2UID == nil || *final.SourceMatch2UID != "R1M2" {
		t.Errorf("final away source: got %v, want R1M2", final.SourceMatch2UID)
	}
}

func TestBuildSingleEliminationWithByes(t *testing.T) {
	// Six teams in a bracket of eight: the top two seeds skip round one.
	blueprints, err := BuildSingleElimination([]int{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blueprints) != 5 {
		t.Fatalf("got %d matches, want 5", len(blueprints))
	}

	byUID := make(map[string]*Blueprint)
	roundSizes := make(map[int]int)
	for _, bp := range blueprints {
		byUID[bp.UID] = bp
		roundSizes[bp.Round]++
	}

	if roundSizes[1] != 2 || roundSizes[2] != 2 || roundSizes[3] != 1 {
		t.Fatalf("got round sizes %v, want 2/2/1", roundSizes)
	}

	// Byes enter round two directly as known participants.
	semi1, semi2 := byUID["R2M1"], byUID["R2M2"]
	if semi1.HomeTeamID == nil || *semi1.HomeTeamID != 1 {
		t.Errorf("R2M1 home: got %v, want seed 1", semi1.HomeTeamID)
	}
	if semi1.AwayTeamID == nil || *semi1.AwayTeamID != 2 {
		t.Errorf("R2M1 away: got %v, want seed 2", semi1.AwayTeamID)
	}
	if semi2.SourceMatch1UID == nil || *semi2.SourceMatch1UID != "R1M1" {
		t.Errorf("R2M2 home source: got %v, want R1M1", semi2.SourceMatch1UID)
	}
	if semi2.SourceMatch2UID == nil || *semi2.SourceMatch2UID != "R1M2" {
		t.Errorf("R2M2 away source: got %v, want R1M2", semi2.SourceMatch2UID)
	}
}

func TestBuildSingleEliminationTooFewTeams(t *testing.T) {
	if _, err := BuildSingleElimination([]int{1}); !errors.Is(err, ErrNotEnoughTeams) {
		t.Errorf("got %v, want ErrNotEnoughTeams", err)
	}
}

func TestBuildSingleEliminationEverySourceResolves(t *testing.T) {
	for _, n := range []int{2, 3, 4, 5, 7, 8, 13, 16} {
		teamIDs := make([]int, 0, n)
		for i := 0; i < n; i++ {
			teamIDs = append(teamIDs, i+1)
		}

		blueprints, err := BuildSingleElimination(teamIDs)
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		if len(blueprints) != n-1 {
			t.Errorf("n=%d: got %d matches, want %d", n, len(blueprints), n-1)
		}

		uids := make(map[string]bool)
		for _, bp := range blueprints {
			uids[bp.UID] = true
		}
		for _, bp := range blueprints {
			if bp.HomeTeamID == nil && (bp.SourceMatch1UID == nil || !uids[*bp.SourceMatch1UID]) {
				t.Errorf("n=%d: match %s has an unresolvable home slot", n, bp.UID)
			}
			if bp.AwayTeamID == nil && (bp.SourceMatch2UID == nil || !uids[*bp.SourceMatch2UID]) {
				t.Errorf("n=%d: match %s has an unresolvable away slot", n, bp.UID)
			}
		}
	}
}
