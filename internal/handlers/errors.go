package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/dimitrije/pickup-api/internal/services"
	"github.com/dimitrije/pickup-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

const (
	CodeValidation    = "VALIDATION_ERROR"
	CodePastDate      = "PAST_DATE"
	CodeCapacityBelow = "CAPACITY_BELOW_PARTICIPANTS"
	CodeMatchNotFound = "MATCH_NOT_FOUND"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeMatchFull     = "MATCH_FULL"
	CodeAlreadyJoined = "ALREADY_JOINED"
	CodeInternal      = "INTERNAL_ERROR"
)

// writeError maps a service error to its status and stable code. Anything
// that is not a business error is logged and reported as a 500.
func writeError(c *drift.Context, err error, fallback string) {
	var vErr *services.ValidationError
	switch {
	case errors.Is(err, services.ErrPastDate):
		respondError(c, http.StatusBadRequest, CodePastDate, err.Error())
	case errors.Is(err, services.ErrCapacityBelowParticipants):
		respondError(c, http.StatusBadRequest, CodeCapacityBelow, err.Error())
	case errors.As(err, &vErr):
		respondError(c, http.StatusBadRequest, CodeValidation, err.Error())
	case errors.Is(err, services.ErrMatchNotFound):
		respondError(c, http.StatusNotFound, CodeMatchNotFound, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		respondError(c, http.StatusForbidden, CodeUnauthorized, err.Error())
	case errors.Is(err, services.ErrMatchFull):
		respondError(c, http.StatusConflict, CodeMatchFull, err.Error())
	case errors.Is(err, services.ErrAlreadyJoined):
		respondError(c, http.StatusConflict, CodeAlreadyJoined, err.Error())
	default:
		log.Printf("%s: %v", fallback, err)
		respondError(c, http.StatusInternalServerError, CodeInternal, fallback)
	}
}

func respondError(c *drift.Context, status int, code, message string) {
	_ = c.JSON(status, dto.ErrorResponse{Code: code, Message: message})
}
