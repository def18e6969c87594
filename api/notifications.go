package api

import (
	"net/http"
	"strconv"

	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/util"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetNotifications godoc
// @Summary      Notification feed
// @Description  Lists the logged-in promoter's notifications, newest first
// @Tags         Notifications
// @Produce      json
// @Param        limit query int false "Maximum entries to return (default 50)"
// @Success      200 {array} db.Notification "List of notifications"
// @Failure      401 {object} ErrorResponse "Unauthorized access"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router       /api/notifications [get]
func (server *Server) GetNotifications(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.Query("limit"))

	notifications, err := server.queries.ListNotifications(promoterID(ctx), limit)
	if err != nil {
		util.LOGGER.Error("GET /api/notifications: failed to list notifications", "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{"Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": notifications})
}

// MarkNotificationRead godoc
// @Summary      Mark notification as read
// @Description  Marks one of the promoter's notifications as read
// @Tags         Notifications
// @Produce      json
// @Param        id path string true "Notification ID"
// @Success      200 {object} SuccessMessage "Marked as read"
// @Failure      400 {object} ErrorResponse "Invalid notification ID"
// @Failure      401 {object} ErrorResponse "Unauthorized access"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router       /api/notifications/{id}/read [put]
func (server *Server) MarkNotificationRead(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid notification ID"})
		return
	}

	if err := server.queries.MarkNotificationRead(id, promoterID(ctx)); err != nil {
		util.LOGGER.Error("PUT /api/notifications/:id/read: failed to mark read", "notification_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{"Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, SuccessMessage{"Marked as read"})
}
