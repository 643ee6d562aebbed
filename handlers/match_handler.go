package handlers

import (
	"net/http"

	"github.com/AndresMate/amateur-league-system/middleware"
	"github.com/AndresMate/amateur-league-system/services"
)

type MatchHandler struct {
	fixtureService services.FixtureService
	resultService  services.ResultService
}

func NewMatchHandler(fixtureService services.FixtureService, resultService services.ResultService) *MatchHandler {
	return &MatchHandler{fixtureService: fixtureService, resultService: resultService}
}

// List returns a scope's matches ordered by round.
// GET /api/matches?tournamentId=&categoryId=
func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
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

	matches, err := h.fixtureService.ListMatches(r.Context(), tournamentID, categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{"matches": matches})
}

// SubmitResult records a final score for a match.
// POST /api/matches/{matchID}/result
func (h *MatchHandler) SubmitResult(w http.ResponseWriter, r *http.Request) {
	matchID, err := urlParamInt(r, "matchID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var input services.SubmitResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}
	if userID, ok := middleware.UserIDFromContext(r.Context()); ok {
		input.EnteredBy = &userID
	}

	result, err := h.resultService.Submit(r.Context(), matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, jsonResponse{"result": result})
}

// GetResult returns the recorded result of a match.
// GET /api/matches/{matchID}/result
func (h *MatchHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	matchID, err := urlParamInt(r, "matchID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	result, err := h.resultService.GetByMatch(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{"result": result})
}

// DeleteResult removes a match result and rebuilds the scope's standings.
// DELETE /api/matches/{matchID}/result
func (h *MatchHandler) DeleteResult(w http.ResponseWriter, r *http.Request) {
	matchID, err := urlParamInt(r, "matchID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	if err := h.resultService.Delete(r.Context(), matchID); err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{"message": "result deleted"})
}
