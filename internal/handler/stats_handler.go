package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"homeneeds/internal/service"
)

// StatsHandler serves the dashboard aggregation.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Dashboard godoc
// @Summary Dashboard counts
// @Tags stats
// @Produce json
// @Success 200 {object} service.DashboardStats
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /dashboard-stats [get]
func (h *StatsHandler) Dashboard(c echo.Context) error {
	ownerID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	stats, err := h.statsService.Dashboard(c.Request().Context(), ownerID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
