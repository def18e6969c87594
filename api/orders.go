package api

import (
	"net/http"

	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/core"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/service/payment"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/util"
	"github.com/gin-gonic/gin"
)

type PaymentDetail struct {
	Status   string `json:"status"`
	Amount   int64  `json:"amount"` // cents
	Currency string `json:"currency"`
}

type OrderDetailResponse struct {
	Order   core.Order     `json:"order"`
	Payment *PaymentDetail `json:"payment,omitempty"`
}

// GetOrder godoc
// @Summary      Order detail
// @Description  Fetches one order with its sales, enriched with the Stripe payment intent's live status when the order carries one
// @Tags         Orders
// @Produce      json
// @Param        order_id path string true "Order ID"
// @Success      200 {object} OrderDetailResponse "Order with payment detail"
// @Failure      400 {object} ErrorResponse "Order ID is required"
// @Failure      401 {object} ErrorResponse "Unauthorized access"
// @Failure      502 {object} ErrorResponse "Failed to load data from the core API"
// @Security BearerAuth
// @Router       /api/orders/{order_id} [get]
func (server *Server) GetOrder(ctx *gin.Context) {
	orderID := ctx.Param("order_id")
	if orderID == "" {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Order ID is required"})
		return
	}

	order, err := server.coreAPI.GetOrder(ctx, orderID)
	if err != nil {
		util.LOGGER.Error("GET /api/orders/:order_id: failed to fetch order", "order_id", orderID, "error", err)
		ctx.JSON(http.StatusBadGateway, ErrorResponse{loadErrorMessage})
		return
	}

	response := OrderDetailResponse{Order: order}

	// Payment enrichment is best effort, the screen still renders without it
	if order.PaymentIntent != "" {
		intent, err := payment.GetPaymentIntent(order.PaymentIntent)
		if err != nil {
			util.LOGGER.Warn("GET /api/orders/:order_id: failed to fetch payment intent", "payment_intent", order.PaymentIntent, "error", err)
		} else {
			response.Payment = &PaymentDetail{
				Status:   string(intent.Status),
				Amount:   intent.Amount,
				Currency: string(intent.Currency),
			}
		}
	}

	ctx.JSON(http.StatusOK, response)
}

type RefundRequest struct {
	Reason payment.RefundReason `json:"reason"`
	Amount int64                `json:"amount"` // cents, 0 refunds the full charge
}

type RefundResponse struct {
	RefundID string `json:"refund_id"`
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
}

// RefundOrder godoc
// @Summary      Refund an order
// @Description  Creates a Stripe refund against the order's payment intent. Amount 0 refunds the full charge. The core API picks up the status change through the Stripe webhook on its side
// @Tags         Orders
// @Accept       json
// @Produce      json
// @Param        order_id path string true "Order ID"
// @Param        request body RefundRequest true "Refund reason and amount"
// @Success      200 {object} RefundResponse "Refund created"
// @Failure      400 {object} ErrorResponse "Order ID is required | Invalid request body | Order has no payment"
// @Failure      401 {object} ErrorResponse "Unauthorized access"
// @Failure      500 {object} ErrorResponse "Refund failed"
// @Failure      502 {object} ErrorResponse "Failed to load data from the core API"
// @Security BearerAuth
// @Router       /api/orders/{order_id}/refund [post]
func (server *Server) RefundOrder(ctx *gin.Context) {
	orderID := ctx.Param("order_id")
	if orderID == "" {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Order ID is required"})
		return
	}

	var req RefundRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid request body"})
		return
	}
	if req.Reason == "" {
		req.Reason = payment.RequestedByCustomer
	}

	order, err := server.coreAPI.GetOrder(ctx, orderID)
	if err != nil {
		util.LOGGER.Error("POST /api/orders/:order_id/refund: failed to fetch order", "order_id", orderID, "error", err)
		ctx.JSON(http.StatusBadGateway, ErrorResponse{loadErrorMessage})
		return
	}

	if order.PaymentIntent == "" {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Order has no payment"})
		return
	}

	refund, err := payment.CreateRefund(order.PaymentIntent, req.Reason, req.Amount)
	if err != nil {
		util.LOGGER.Error("POST /api/orders/:order_id/refund: refund failed", "order_id", orderID, "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{"Refund failed"})
		return
	}

	util.LOGGER.Info("POST /api/orders/:order_id/refund: refund created",
		"order_id", orderID, "refund_id", refund.ID, "amount", refund.Amount)

	ctx.JSON(http.StatusOK, RefundResponse{
		RefundID: refund.ID,
		Status:   string(refund.Status),
		Amount:   refund.Amount,
	})
}
