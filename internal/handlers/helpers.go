package handlers

import (
	"net/http"

	"storeadmin/internal/common"
	"storeadmin/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func storeIDParam(c echo.Context) (uuid.UUID, error) {
	storeID, err := common.ValidateUUID(c.Param("storeId"), "store ID")
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid store ID format")
	}
	return storeID, nil
}

func idParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := common.ValidateUUID(c.Param(name), name)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid ID format")
	}
	return id, nil
}

// requireStoreOwner runs the ownership gate for a mutating request. A
// missing or foreign store comes back as 404 so callers cannot distinguish
// "does not exist" from "not yours".
func requireStoreOwner(c echo.Context, ownership services.OwnershipService, storeID uuid.UUID) error {
	userID, ok := common.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated")
	}
	if _, err := ownership.RequireStoreOwner(c.Request().Context(), userID, storeID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Store not found, unauthorized")
	}
	return nil
}
