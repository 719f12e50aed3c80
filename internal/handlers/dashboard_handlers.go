package handlers

import (
	"net/http"

	"storeadmin/internal/analytics"
	"storeadmin/internal/services"

	"github.com/labstack/echo/v4"
)

// DashboardHandlers handles the admin dashboard endpoint
type DashboardHandlers struct {
	analyticsSvc *analytics.Service
	ownership    services.OwnershipService
}

// NewDashboardHandlers creates a new dashboard handlers instance
func NewDashboardHandlers(analyticsSvc *analytics.Service, ownership services.OwnershipService) *DashboardHandlers {
	return &DashboardHandlers{
		analyticsSvc: analyticsSvc,
		ownership:    ownership,
	}
}

// GetDashboard handles GET /api/stores/:storeId/dashboard
func (h *DashboardHandlers) GetDashboard(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := storeIDParam(c)
	if err != nil {
		return err
	}
	if err := requireStoreOwner(c, h.ownership, storeID); err != nil {
		return err
	}

	metrics, err := h.analyticsSvc.Metrics(ctx, storeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute dashboard metrics")
	}

	return c.JSON(http.StatusOK, metrics)
}
