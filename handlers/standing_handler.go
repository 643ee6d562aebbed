package handlers

import (
	"net/http"

	"github.com/AndresMate/amateur-league-system/services"
)

type StandingHandler struct {
	standingService services.StandingService
}

func NewStandingHandler(standingService services.StandingService) *StandingHandler {
	return &StandingHandler{standingService: standingService}
}

// List returns the ranked standings table for a scope.
// GET /api/standings?tournamentId=&categoryId=
func (h *StandingHandler) List(w http.ResponseWriter, r *http.Request) {
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

	standings, err := h.standingService.List(r.Context(), tournamentID, categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{"standings": standings})
}

// Overview returns the standings together with match progress counters.
// GET /api/standings/overview?tournamentId=&categoryId=
func (h *StandingHandler) Overview(w http.ResponseWriter, r *http.Request) {
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

	overview, err := h.standingService.Overview(r.Context(), tournamentID, categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, overview)
}

// Recalculate rebuilds a scope's standings from the stored results.
// POST /api/standings/recalculate?tournamentId=&categoryId=
func (h *StandingHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
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

	if err := h.standingService.Recalculate(r.Context(), tournamentID, categoryID); err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{"message": "standings recalculated"})
}
