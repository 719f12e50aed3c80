package handlers

import (
	"net/http"

	"storeadmin/internal/repositories"
	"storeadmin/internal/services"

	"github.com/labstack/echo/v4"
)

// OrderHandlers handles order-related HTTP requests
type OrderHandlers struct {
	orderRepo repositories.OrderRepository
	ownership services.OwnershipService
}

// NewOrderHandlers creates a new order handlers instance
func NewOrderHandlers(orderRepo repositories.OrderRepository, ownership services.OwnershipService) *OrderHandlers {
	return &OrderHandlers{
		orderRepo: orderRepo,
		ownership: ownership,
	}
}

// ListOrders handles listing a store's orders with their items for the
// admin orders page
func (h *OrderHandlers) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := storeIDParam(c)
	if err != nil {
		return err
	}
	if err := requireStoreOwner(c, h.ownership, storeID); err != nil {
		return err
	}

	orders, err := h.orderRepo.ListByStore(ctx, storeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list orders")
	}

	return c.JSON(http.StatusOK, orders)
}

// GetOrder handles getting one order with its items
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := storeIDParam(c)
	if err != nil {
		return err
	}
	orderID, err := idParam(c, "orderId")
	if err != nil {
		return err
	}
	if err := requireStoreOwner(c, h.ownership, storeID); err != nil {
		return err
	}

	order, err := h.orderRepo.GetByID(ctx, storeID, orderID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Order not found")
	}

	return c.JSON(http.StatusOK, order)
}
