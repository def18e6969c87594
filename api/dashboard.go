package api

import (
	"net/http"

	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/core"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/stats"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/util"
	"github.com/gin-gonic/gin"
)

type DashboardResponse struct {
	Summary stats.Summary          `json:"summary"`
	Charts  map[string]stats.Table `json:"charts"`
	Events  int                    `json:"events"`
	Live    int                    `json:"live_events"`
}

// GetDashboard godoc
// @Summary      Global dashboard statistics
// @Description  Aggregates every order across the promoter's events into the dashboard summary cards and charts
// @Tags         Dashboard
// @Produce      json
// @Success      200 {object} DashboardResponse "Dashboard statistics"
// @Failure      401 {object} ErrorResponse "Unauthorized access"
// @Failure      502 {object} ErrorResponse "Failed to load data from the core API"
// @Security BearerAuth
// @Router       /api/dashboard [get]
func (server *Server) GetDashboard(ctx *gin.Context) {
	events, err := server.coreAPI.GetEvents(ctx)
	if err != nil {
		util.LOGGER.Error("GET /api/dashboard: failed to fetch events", "error", err)
		ctx.JSON(http.StatusBadGateway, ErrorResponse{loadErrorMessage})
		return
	}

	var orders []core.Order
	live := 0
	for _, event := range events {
		orders = append(orders, event.Orders...)
		if event.Status == core.EventLive {
			live++
		}
	}

	summary := stats.Aggregate(orders, server.policy)

	ctx.JSON(http.StatusOK, DashboardResponse{
		Summary: summary,
		Charts:  summary.Tables(),
		Events:  len(events),
		Live:    live,
	})
}
