package handlers

import (
	"net/http"
	"strings"

	"github.com/dimitrije/pickup-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type MembershipHandler struct {
	membershipService MembershipServiceInterface
	statsService      StatsServiceInterface
	events            EventPublisher
}

func NewMembershipHandler(membershipService MembershipServiceInterface, statsService StatsServiceInterface, events EventPublisher) *MembershipHandler {
	return &MembershipHandler{
		membershipService: membershipService,
		statsService:      statsService,
		events:            events,
	}
}

func (h *MembershipHandler) Join(c *drift.Context) {
	matchID, ok := parseMatchID(c)
	if !ok {
		return
	}

	var req dto.JoinMatchRequest
	if c.Request.ContentLength != 0 {
		if err := c.BindJSON(&req); err != nil {
			c.BadRequest("invalid request body")
			return
		}
	}

	userID := callerID(c, req.UserID)
	if userID == "" {
		c.BadRequest("missing user_id")
		return
	}

	ctx := c.Request.Context()
	result, err := h.membershipService.Join(ctx, matchID, userID, callerName(c, req.UserName))
	if err != nil {
		writeError(c, err, "failed to join match")
		return
	}

	h.statsService.Invalidate(ctx)
	h.events.ParticipantJoined(result.Participant)
	if result.Filled {
		h.events.MatchFull(matchID)
	}
	_ = c.JSON(http.StatusCreated, result.Participant)
}

func (h *MembershipHandler) Leave(c *drift.Context) {
	matchID, ok := parseMatchID(c)
	if !ok {
		return
	}

	var req dto.LeaveMatchRequest
	if c.Request.ContentLength != 0 {
		if err := c.BindJSON(&req); err != nil {
			c.BadRequest("invalid request body")
			return
		}
	}

	userID := callerID(c, req.UserID)
	if userID == "" {
		c.BadRequest("missing user_id")
		return
	}

	ctx := c.Request.Context()
	removed, err := h.membershipService.Leave(ctx, matchID, userID)
	if err != nil {
		writeError(c, err, "failed to leave match")
		return
	}

	if removed {
		h.statsService.Invalidate(ctx)
		h.events.ParticipantLeft(matchID, userID)
	}
	_ = c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

func (h *MembershipHandler) HasJoined(c *drift.Context) {
	matchID, ok := parseMatchID(c)
	if !ok {
		return
	}

	userID := callerID(c, strings.TrimSpace(c.QueryParam("userId")))
	if userID == "" {
		c.BadRequest("missing userId query parameter")
		return
	}

	joined, err := h.membershipService.HasJoined(c.Request.Context(), matchID, userID)
	if err != nil {
		writeError(c, err, "failed to check membership")
		return
	}

	_ = c.JSON(http.StatusOK, dto.JoinedResponse{Joined: joined})
}
