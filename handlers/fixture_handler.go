package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/AndresMate/amateur-league-system/models"
	"github.com/AndresMate/amateur-league-system/services"
)

type FixtureHandler struct {
	fixtureService services.FixtureService
}

func NewFixtureHandler(fixtureService services.FixtureService) *FixtureHandler {
	return &FixtureHandler{fixtureService: fixtureService}
}

// Generate builds the full fixture for a tournament category.
// POST /api/fixtures/generate?tournamentId=&categoryId=&mode=&startDate=
func (h *FixtureHandler) Generate(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := queryInt(r, "tournamentId")
	if err != nil {
		badRequestResponse(w, err)
		return
	}
	categoryID, err := queryInt(r, "categoryId")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	mode, ok := models.ParseFixtureMode(r.URL.Query().Get("mode"))
	if !ok {
		mapServiceErrorToHTTP(w, services.ErrInvalidFixtureMode)
		return
	}

	startDate := time.Now()
	if raw := r.URL.Query().Get("startDate"); raw != "" {
		startDate, err = time.Parse("2006-01-02", raw)
		if err != nil {
			badRequestResponse(w, fmt.Errorf("invalid startDate, expected YYYY-MM-DD: %w", err))
			return
		}
	}

	result, err := h.fixtureService.Generate(r.Context(), services.GenerateFixtureInput{
		TournamentID: tournamentID,
		CategoryID:   categoryID,
		Mode:         mode,
		StartDate:    startDate,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, jsonResponse{"fixture": result})
}

// Delete removes a category's fixture with its results and standings.
// DELETE /api/fixtures?tournamentId=&categoryId=
func (h *FixtureHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := queryInt(r, "tournamentId")
	if err != nil {
		badRequestResponse(w, err)
		return
	}
	categoryID, err := queryInt(r, "categoryId")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	if err := h.fixtureService.DeleteFixture(r.Context(), tournamentID, categoryID); err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{"message": "fixture deleted"})
}
