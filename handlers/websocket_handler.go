package handlers

import (
	"log/slog"
	"net/http"

	"github.com/AndresMate/amateur-league-system/fixture"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	hub    *fixture.Hub
	logger *slog.Logger
}

func NewWebSocketHandler(hub *fixture.Hub, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, logger: logger}
}

// Subscribe upgrades the connection and joins the scope's live-update room.
// GET /api/live?tournamentId=&categoryId=
func (h *WebSocketHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
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

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", slog.Any("error", err))
		return
	}

	h.hub.NewClient(conn, fixture.RoomKey(tournamentID, categoryID))
}
