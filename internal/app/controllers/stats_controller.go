package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edusphere/eduadmin/internal/app/services"
	"github.com/edusphere/eduadmin/internal/middleware"
)

// StatsController handles the dashboard aggregation endpoints
type StatsController struct {
	statsService *services.StatsService
}

// NewStatsController creates a new stats controller instance
func NewStatsController(statsService *services.StatsService) *StatsController {
	return &StatsController{statsService: statsService}
}

// GetChartStats godoc
// @Summary Dashboard chart data
// @Description Subscription tally, per-class distribution and the 30-day registration series
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ChartStatsResponse
// @Router /stats/charts [get]
func (sc *StatsController) GetChartStats(c *gin.Context) {
	stats, err := sc.statsService.ChartStats(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
