package handlers

import (
	"errors"
	"log"
	"net/http"

	"storeadmin/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CheckoutHandlers handles storefront checkout requests
type CheckoutHandlers struct {
	checkoutSvc services.CheckoutService
}

// NewCheckoutHandlers creates a new checkout handlers instance
func NewCheckoutHandlers(checkoutSvc services.CheckoutService) *CheckoutHandlers {
	return &CheckoutHandlers{checkoutSvc: checkoutSvc}
}

// CheckoutRequest represents the storefront checkout payload. Amount and
// currency pass through to the payment gateway as given.
type CheckoutRequest struct {
	ProductIDs  []string             `json:"productIds"`
	Amount      int                  `json:"amount"`
	Currency    string               `json:"currency"`
	BillingData services.BillingData `json:"billing_data"`
}

// Checkout handles creating a payment intention and the matching unpaid
// order. Public: shoppers are not admin users.
func (h *CheckoutHandlers) Checkout(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := storeIDParam(c)
	if err != nil {
		return err
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if len(req.ProductIDs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Product IDs are required")
	}

	productIDs := make([]uuid.UUID, 0, len(req.ProductIDs))
	for _, idStr := range req.ProductIDs {
		id, err := uuid.Parse(idStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid product ID format")
		}
		productIDs = append(productIDs, id)
	}

	result, err := h.checkoutSvc.Checkout(ctx, storeID, services.CheckoutRequest{
		ProductIDs: productIDs,
		Amount:     req.Amount,
		Currency:   req.Currency,
		Billing:    req.BillingData,
	})
	if err != nil {
		if errors.Is(err, services.ErrNoProducts) {
			return echo.NewHTTPError(http.StatusBadRequest, "Product IDs are required")
		}
		log.Printf("checkout failed for store %s: %v", storeID.String(), err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create payment intention")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"payment_url": result.PaymentURL,
		"orderId":     result.OrderID,
	})
}
