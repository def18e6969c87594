package api

import (
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/db"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/service/worker"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/util"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

type CreateInvitationRequest struct {
	EventID        string `json:"event_id" binding:"required"`
	RecipientName  string `json:"recipient_name" binding:"required"`
	RecipientEmail string `json:"recipient_email" binding:"required,email"`
	TicketType     string `json:"ticket_type" binding:"required"`
}

// CreateInvitation godoc
// @Summary      Issue an invitation
// @Description  Issues a free ticket invitation for an event: persists the issuance record with its QR code and queues a notification for the recipient
// @Tags         Invitations
// @Accept       json
// @Produce      json
// @Param        request body CreateInvitationRequest true "Invitation details"
// @Success      201 {object} db.Invitation "Issued invitation"
// @Failure      400 {object} ErrorResponse "Invalid request body"
// @Failure      401 {object} ErrorResponse "Unauthorized access"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router       /api/invitations [post]
func (server *Server) CreateInvitation(ctx *gin.Context) {
	var req CreateInvitationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.LOGGER.Warn("POST /api/invitations: failed to bind request body", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid request body"})
		return
	}

	invitation := &db.Invitation{
		Model:          db.NewModel(),
		PromoterID:     promoterID(ctx),
		EventID:        req.EventID,
		RecipientName:  req.RecipientName,
		RecipientEmail: req.RecipientEmail,
		TicketType:     req.TicketType,
		Status:         db.InvitationIssued,
	}

	// The QR carries the invitation id, the gate scanner resolves it against this record
	png, err := util.GenerateQR(invitation.ID.String())
	if err != nil {
		util.LOGGER.Error("POST /api/invitations: failed to generate QR", "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{"Internal server error"})
		return
	}
	invitation.QR = base64.StdEncoding.EncodeToString(png)

	if err := server.queries.CreateInvitation(invitation); err != nil {
		util.LOGGER.Error("POST /api/invitations: failed to persist invitation", "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{"Internal server error"})
		return
	}

	// Notify the issuing promoter and email the recipient off the request path
	payload := worker.SendNotificationPayload{
		PromoterID: invitation.PromoterID,
		EventID:    invitation.EventID,
		Title:      "Invitation issued",
		Body:       fmt.Sprintf("Invitation for %s sent to %s (%s)", req.TicketType, req.RecipientName, req.RecipientEmail),
		Email:      req.RecipientEmail,
	}
	if err := server.distributor.DistributeTask(ctx, worker.SendNotification, payload, asynq.Queue(worker.MEDIUM_IMPACT)); err != nil {
		util.LOGGER.Warn("POST /api/invitations: failed to queue notification", "error", err)
	}

	ctx.JSON(http.StatusCreated, gin.H{"data": invitation})
}

// ListInvitations godoc
// @Summary      List invitations for an event
// @Description  Lists the invitations the logged-in promoter has issued for one event, newest first
// @Tags         Invitations
// @Produce      json
// @Param        event_id path string true "Event ID"
// @Success      200 {array} db.Invitation "List of invitations"
// @Failure      400 {object} ErrorResponse "Event ID is required"
// @Failure      401 {object} ErrorResponse "Unauthorized access"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router       /api/invitations/{event_id} [get]
func (server *Server) ListInvitations(ctx *gin.Context) {
	eventID := ctx.Param("event_id")
	if eventID == "" {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Event ID is required"})
		return
	}

	invitations, err := server.queries.ListInvitations(promoterID(ctx), eventID)
	if err != nil {
		util.LOGGER.Error("GET /api/invitations/:event_id: failed to list invitations", "event_id", eventID, "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{"Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": invitations})
}
