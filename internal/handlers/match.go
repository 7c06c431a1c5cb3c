package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dimitrije/pickup-api/internal/geo"
	"github.com/dimitrije/pickup-api/internal/middleware"
	"github.com/dimitrije/pickup-api/internal/models"
	"github.com/dimitrije/pickup-api/internal/services"
	"github.com/dimitrije/pickup-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type MatchHandler struct {
	matchService  MatchServiceInterface
	inviteService InviteServiceInterface
	statsService  StatsServiceInterface
	events        EventPublisher
}

func NewMatchHandler(matchService MatchServiceInterface, inviteService InviteServiceInterface, statsService StatsServiceInterface, events EventPublisher) *MatchHandler {
	return &MatchHandler{
		matchService:  matchService,
		inviteService: inviteService,
		statsService:  statsService,
		events:        events,
	}
}

// callerID prefers the identity token over the id claimed in the request.
func callerID(c *drift.Context, claimed string) string {
	if id := middleware.GetUserID(c); id != "" {
		return id
	}
	return strings.TrimSpace(claimed)
}

func callerName(c *drift.Context, claimed string) string {
	if name := middleware.GetUserName(c); name != "" {
		return name
	}
	return claimed
}

func parseMatchID(c *drift.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid match id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *MatchHandler) Create(c *drift.Context) {
	var req dto.CreateMatchRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	ctx := c.Request.Context()
	match, err := h.matchService.Create(ctx, services.CreateMatchParams{
		Title:          req.Title,
		Sport:          req.Sport,
		Location:       req.Location,
		Date:           req.Date,
		Time:           req.Time,
		MaxPlayers:     req.MaxPlayers,
		CaptainName:    req.CaptainName,
		PricePerPerson: req.PricePerPerson,
	}, callerID(c, req.CreatorID), callerName(c, req.CreatorName))
	if err != nil {
		writeError(c, err, "failed to create match")
		return
	}

	h.statsService.Invalidate(ctx)
	_ = c.JSON(http.StatusCreated, match)
}

// List returns active matches with counts. A center comes from ?city= or
// ?lat=&lng=, and only filters when ?radius_km= is also given.
func (h *MatchHandler) List(c *drift.Context) {
	filter := services.ListFilter{Sport: strings.TrimSpace(c.QueryParam("sport"))}
	if filter.Sport != "" && !models.ValidSport(filter.Sport) {
		respondError(c, http.StatusBadRequest, CodeValidation, "sport: must be one of "+strings.Join(models.Sports, ", "))
		return
	}

	if raw := c.QueryParam("radius_km"); raw != "" {
		radius, err := strconv.ParseFloat(raw, 64)
		if err != nil || radius <= 0 {
			c.BadRequest("invalid radius_km")
			return
		}
		center, ok := h.center(c)
		if !ok {
			return
		}
		filter.Near = &center
		filter.RadiusKm = radius
	}

	matches, err := h.statsService.ListActiveWithCounts(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err, "failed to list matches")
		return
	}

	_ = c.JSON(http.StatusOK, matches)
}

func (h *MatchHandler) center(c *drift.Context) (geo.Point, bool) {
	if name := c.QueryParam("city"); name != "" {
		city, ok := geo.CityByName(name)
		if !ok {
			c.BadRequest("unknown city")
			return geo.Point{}, false
		}
		return city.Point(), true
	}

	lat, latErr := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.QueryParam("lng"), 64)
	p := geo.Point{Lat: lat, Lng: lng}
	if latErr != nil || lngErr != nil || !p.Valid() {
		c.BadRequest("radius_km requires city or lat and lng")
		return geo.Point{}, false
	}
	return p, true
}

func (h *MatchHandler) Get(c *drift.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}

	details, err := h.matchService.GetDetails(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "failed to get match")
		return
	}

	_ = c.JSON(http.StatusOK, details)
}

func (h *MatchHandler) GetByInvite(c *drift.Context) {
	h.resolveInvite(c, c.Param("code"))
}

func (h *MatchHandler) resolveInvite(c *drift.Context, code string) {
	details, err := h.inviteService.Resolve(c.Request.Context(), code)
	if err != nil {
		writeError(c, err, "failed to resolve invite")
		return
	}
	if details == nil {
		writeError(c, services.ErrMatchNotFound, "")
		return
	}

	_ = c.JSON(http.StatusOK, details)
}

func (h *MatchHandler) Update(c *drift.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}

	var req dto.UpdateMatchRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	ctx := c.Request.Context()
	match, err := h.matchService.Update(ctx, id, services.UpdateMatchParams{
		Title:          req.Title,
		Sport:          req.Sport,
		Location:       req.Location,
		Date:           req.Date,
		Time:           req.Time,
		MaxPlayers:     req.MaxPlayers,
		CaptainName:    req.CaptainName,
		PricePerPerson: req.PricePerPerson,
	}, callerID(c, req.CreatorID))
	if err != nil {
		writeError(c, err, "failed to update match")
		return
	}

	h.statsService.Invalidate(ctx)
	h.events.MatchUpdated(match)
	_ = c.JSON(http.StatusOK, match)
}

// Delete reads the caller from the token, the JSON body or ?creator_id=.
func (h *MatchHandler) Delete(c *drift.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}

	claimed := c.QueryParam("creator_id")
	if c.Request.ContentLength != 0 {
		var req dto.DeleteMatchRequest
		if err := c.BindJSON(&req); err != nil {
			c.BadRequest("invalid request body")
			return
		}
		if req.CreatorID != "" {
			claimed = req.CreatorID
		}
	}

	ctx := c.Request.Context()
	if err := h.matchService.Delete(ctx, id, callerID(c, claimed)); err != nil {
		writeError(c, err, "failed to delete match")
		return
	}

	h.statsService.Invalidate(ctx)
	h.events.MatchDeleted(id)
	_ = c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
