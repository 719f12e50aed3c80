package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"storeadmin/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// WebhookHandlers handles payment gateway callbacks
type WebhookHandlers struct {
	orderRepo repositories.OrderRepository
}

// NewWebhookHandlers creates a new webhook handlers instance
func NewWebhookHandlers(orderRepo repositories.OrderRepository) *WebhookHandlers {
	return &WebhookHandlers{orderRepo: orderRepo}
}

// PaymentWebhookRequest represents the gateway's payment notification. The
// gateway sends success as either a bool or the string "true".
type PaymentWebhookRequest struct {
	Success json.RawMessage `json:"success"`
	OrderID string          `json:"orderId"`
}

func (r *PaymentWebhookRequest) succeeded() bool {
	var asBool bool
	if err := json.Unmarshal(r.Success, &asBool); err == nil {
		return asBool
	}
	var asString string
	if err := json.Unmarshal(r.Success, &asString); err == nil {
		return asString == "true"
	}
	return false
}

// PaymentWebhook handles POST /api/stores/:storeId/webhook. The gateway
// only sends the order ID, so the paid flag is flipped without a store
// scope. Repeated notifications for the same order are no-ops.
//
// The notification carries no signature and none is verified here; anyone
// who learns an order ID can mark it paid.
func (h *WebhookHandlers) PaymentWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	var req PaymentWebhookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.OrderID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Order ID is required")
	}
	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid order ID format")
	}

	if req.succeeded() {
		affected, err := h.orderRepo.MarkPaid(ctx, orderID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update order")
		}
		if affected == 0 {
			log.Printf("payment webhook for unknown order %s", orderID.String())
		}
	}

	return c.JSON(http.StatusOK, map[string]bool{
		"received": true,
	})
}
