package handlers

import (
	"net/http"

	"github.com/dimitrije/pickup-api/internal/middleware"
	"github.com/dimitrije/pickup-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type IdentityHandler struct {
	identityService IdentityServiceInterface
}

func NewIdentityHandler(identityService IdentityServiceInterface) *IdentityHandler {
	return &IdentityHandler{identityService: identityService}
}

// Issue hands out an anonymous identity token. A caller that already holds
// one keeps its user id and may change the display name.
func (h *IdentityHandler) Issue(c *drift.Context) {
	var req dto.IssueIdentityRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	userID := req.UserID
	if id := middleware.GetUserID(c); id != "" {
		userID = id
	}

	tok, err := h.identityService.Issue(userID, req.Name)
	if err != nil {
		writeError(c, err, "failed to issue identity")
		return
	}

	_ = c.JSON(http.StatusCreated, dto.IdentityResponse{
		Token:     tok.Token,
		UserID:    tok.UserID,
		Name:      tok.Name,
		ExpiresIn: tok.ExpiresIn,
	})
}
