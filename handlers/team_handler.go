package handlers

import (
	"errors"
	"net/http"

	"github.com/AndresMate/amateur-league-system/services"
)

type TeamHandler struct {
	teamService services.TeamService
}

func NewTeamHandler(teamService services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// Create registers a team in a tournament category.
// POST /api/teams
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	team, err := h.teamService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, jsonResponse{"team": team})
}

// Get returns a team with its availability windows.
// GET /api/teams/{teamID}
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	teamID, err := urlParamInt(r, "teamID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	team, err := h.teamService.Get(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{"team": team})
}

// GetAvailability returns the team's weekly availability windows.
// GET /api/teams/{teamID}/availability
func (h *TeamHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	teamID, err := urlParamInt(r, "teamID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	windows, err := h.teamService.GetAvailability(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{"availability": windows})
}

// ReplaceAvailability swaps the team's whole weekly window set.
// PUT /api/teams/{teamID}/availability
func (h *TeamHandler) ReplaceAvailability(w http.ResponseWriter, r *http.Request) {
	teamID, err := urlParamInt(r, "teamID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var input struct {
		Windows []services.AvailabilityWindowInput `json:"windows"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	windows, err := h.teamService.ReplaceAvailability(r.Context(), teamID, input.Windows)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{"availability": windows})
}

// UploadCrest stores the team's crest image and records its public URL.
// POST /api/teams/{teamID}/crest (multipart field "crest")
func (h *TeamHandler) UploadCrest(w http.ResponseWriter, r *http.Request) {
	teamID, err := urlParamInt(r, "teamID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		badRequestResponse(w, errors.New("invalid multipart form, max size is 5MB"))
		return
	}
	file, header, err := r.FormFile("crest")
	if err != nil {
		badRequestResponse(w, errors.New("missing crest file"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType != "image/png" && contentType != "image/jpeg" && contentType != "image/webp" {
		badRequestResponse(w, errors.New("crest must be a PNG, JPEG or WebP image"))
		return
	}

	team, err := h.teamService.UploadCrest(r.Context(), teamID, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{"team": team})
}
