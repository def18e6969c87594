package api

import (
	"net/http"

	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/core"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/stats"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/util"
	"github.com/gin-gonic/gin"
)

// GetClients godoc
// @Summary      List clients
// @Description  Lists every client account known to the core API
// @Tags         Clients
// @Produce      json
// @Success      200 {array} core.Account "List of clients"
// @Failure      401 {object} ErrorResponse "Unauthorized access"
// @Failure      502 {object} ErrorResponse "Failed to load data from the core API"
// @Security BearerAuth
// @Router       /api/clients [get]
func (server *Server) GetClients(ctx *gin.Context) {
	accounts, err := server.coreAPI.GetClients(ctx)
	if err != nil {
		util.LOGGER.Error("GET /api/clients: failed to fetch clients", "error", err)
		ctx.JSON(http.StatusBadGateway, ErrorResponse{loadErrorMessage})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": accounts})
}

type ClientDetailResponse struct {
	Client *core.Account `json:"client"`
	Stats  StatsResponse `json:"stats"`
}

// GetClient godoc
// @Summary      Client detail
// @Description  Fetches a single client with their purchase history, aggregated into the same summary cards and charts as the dashboard
// @Tags         Clients
// @Produce      json
// @Param        client_id path string true "Client ID"
// @Success      200 {object} ClientDetailResponse "Client with purchase statistics"
// @Failure      400 {object} ErrorResponse "Client ID is required"
// @Failure      401 {object} ErrorResponse "Unauthorized access"
// @Failure      502 {object} ErrorResponse "Failed to load data from the core API"
// @Security BearerAuth
// @Router       /api/clients/{client_id} [get]
func (server *Server) GetClient(ctx *gin.Context) {
	clientID := ctx.Param("client_id")
	if clientID == "" {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Client ID is required"})
		return
	}

	account, err := server.coreAPI.GetClient(ctx, clientID)
	if err != nil {
		util.LOGGER.Error("GET /api/clients/:client_id: failed to fetch client", "client_id", clientID, "error", err)
		ctx.JSON(http.StatusBadGateway, ErrorResponse{loadErrorMessage})
		return
	}

	summary := stats.Aggregate(account.Orders, server.policy)

	ctx.JSON(http.StatusOK, ClientDetailResponse{
		Client: account,
		Stats:  StatsResponse{Summary: summary, Charts: summary.Tables()},
	})
}
