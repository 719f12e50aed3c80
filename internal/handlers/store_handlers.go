package handlers

import (
	"net/http"

	"storeadmin/internal/common"
	"storeadmin/internal/models"
	"storeadmin/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// StoreHandlers handles store-related HTTP requests
type StoreHandlers struct {
	storeRepo repositories.StoreRepository
}

// NewStoreHandlers creates a new store handlers instance
func NewStoreHandlers(storeRepo repositories.StoreRepository) *StoreHandlers {
	return &StoreHandlers{storeRepo: storeRepo}
}

// CreateStoreRequest represents the store creation request payload
type CreateStoreRequest struct {
	Name string `json:"name"`
}

// CreateStore handles creating a new store for the authenticated user
func (h *StoreHandlers) CreateStore(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated")
	}

	var req CreateStoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Name is required")
	}

	store := &models.Store{
		ID:     uuid.New(),
		Name:   req.Name,
		UserID: userID,
	}
	if err := h.storeRepo.Create(ctx, store); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create store")
	}

	return c.JSON(http.StatusCreated, store)
}

// ListStores handles listing the authenticated user's stores
func (h *StoreHandlers) ListStores(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated")
	}

	stores, err := h.storeRepo.ListByUser(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list stores")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"stores": stores,
	})
}

// GetStore handles getting one of the authenticated user's stores by ID
func (h *StoreHandlers) GetStore(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated")
	}

	storeID, err := uuid.Parse(c.Param("storeId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid store ID format")
	}

	store, err := h.storeRepo.GetByIDAndUser(ctx, storeID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Store not found")
	}

	return c.JSON(http.StatusOK, store)
}

// UpdateStoreRequest represents the store rename request payload
type UpdateStoreRequest struct {
	Name string `json:"name"`
}

// UpdateStore handles renaming a store. The ownership check rides in the
// UPDATE's WHERE clause; zero affected rows means not found or not yours.
func (h *StoreHandlers) UpdateStore(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated")
	}

	storeID, err := uuid.Parse(c.Param("storeId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid store ID format")
	}

	var req UpdateStoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Name is required")
	}

	affected, err := h.storeRepo.UpdateName(ctx, storeID, userID, req.Name)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update store")
	}
	if affected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "Store not found")
	}

	store, err := h.storeRepo.GetByIDAndUser(ctx, storeID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load store")
	}

	return c.JSON(http.StatusOK, store)
}

// DeleteStore handles deleting a store the authenticated user owns
func (h *StoreHandlers) DeleteStore(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated")
	}

	storeID, err := uuid.Parse(c.Param("storeId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid store ID format")
	}

	affected, err := h.storeRepo.Delete(ctx, storeID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete store")
	}
	if affected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "Store not found")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Store deleted successfully",
	})
}
