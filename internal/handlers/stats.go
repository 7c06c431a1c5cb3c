package handlers

import (
	"net/http"

	"github.com/dimitrije/pickup-api/internal/geo"
	"github.com/m1z23r/drift/pkg/drift"
)

type StatsHandler struct {
	statsService StatsServiceInterface
}

func NewStatsHandler(statsService StatsServiceInterface) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) Get(c *drift.Context) {
	stats, err := h.statsService.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err, "failed to get stats")
		return
	}

	_ = c.JSON(http.StatusOK, stats)
}

// Cities lists the cities usable as a distance filter center.
func (h *StatsHandler) Cities(c *drift.Context) {
	_ = c.JSON(http.StatusOK, geo.SearchCities(c.QueryParam("q")))
}
