package handlers

import (
	"github.com/dimitrije/pickup-api/internal/sse"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type EventsHandler struct {
	hub          *sse.Hub
	matchService MatchServiceInterface
}

func NewEventsHandler(hub *sse.Hub, matchService MatchServiceInterface) *EventsHandler {
	return &EventsHandler{
		hub:          hub,
		matchService: matchService,
	}
}

// Connect streams the events of one match until the client goes away.
func (h *EventsHandler) Connect(c *drift.Context) {
	matchID, ok := parseMatchID(c)
	if !ok {
		return
	}

	if _, err := h.matchService.Get(c.Request.Context(), matchID); err != nil {
		writeError(c, err, "failed to open event stream")
		return
	}

	sseCtx := c.SSE()

	clientID := uuid.New().String()
	client := &sse.Client{
		ID:      clientID,
		Matches: map[uuid.UUID]bool{matchID: true},
		Send:    make(chan []byte, 64),
	}

	h.hub.Register(client)
	defer h.hub.Unregister(client)

	if err := sseCtx.SendJSON(map[string]string{
		"type":      "connected",
		"client_id": clientID,
		"match_id":  matchID.String(),
	}, "system", ""); err != nil {
		return
	}

	done := c.Request.Context().Done()
	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				return
			}
			if err := sseCtx.Send(string(msg), "message", ""); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
