package handlers

import (
	"net/http"

	"github.com/m1z23r/drift/pkg/drift"
)

type Handlers struct {
	Match      *MatchHandler
	Membership *MembershipHandler
	Stats      *StatsHandler
	Events     *EventsHandler
	Identity   *IdentityHandler
}

// RegisterRoutes mounts the API on api. Middleware must already be attached
// to the group.
//
// drift keeps one radix tree per method and a node cannot hold a wildcard
// next to static children, so every GET below /matches/:id/ goes through
// matchSubresource, including /matches/invite/:code.
func RegisterRoutes(api *drift.RouterGroup, h *Handlers) {
	api.Post("/identity", h.Identity.Issue)

	api.Get("/matches", h.Match.List)
	api.Post("/matches", h.Match.Create)
	api.Get("/matches/:id", h.Match.Get)
	api.Put("/matches/:id", h.Match.Update)
	api.Delete("/matches/:id", h.Match.Delete)
	api.Get("/matches/:id/:sub", h.matchSubresource)
	api.Get("/invite/:code", h.Match.GetByInvite)

	api.Post("/matches/:id/join", h.Membership.Join)
	api.Post("/matches/:id/leave", h.Membership.Leave)

	api.Get("/stats", h.Stats.Get)
	api.Get("/cities", h.Stats.Cities)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}

func (h *Handlers) matchSubresource(c *drift.Context) {
	if c.Param("id") == "invite" {
		h.Match.resolveInvite(c, c.Param("sub"))
		return
	}

	switch c.Param("sub") {
	case "joined":
		h.Membership.HasJoined(c)
	case "events":
		h.Events.Connect(c)
	default:
		c.NotFound("route not found")
	}
}
