package handlers

import (
	"context"
	"net/http"

	"storeadmin/internal/caching"
	"storeadmin/internal/models"
	"storeadmin/internal/repositories"
	"storeadmin/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SizeHandlers handles size-related HTTP requests
type SizeHandlers struct {
	sizeRepo   repositories.SizeRepository
	ownership  services.OwnershipService
	cacheSvc   *caching.CacheService
	optimistic *caching.Optimistic
}

// NewSizeHandlers creates a new size handlers instance
func NewSizeHandlers(sizeRepo repositories.SizeRepository, ownership services.OwnershipService, cacheSvc *caching.CacheService, optimistic *caching.Optimistic) *SizeHandlers {
	return &SizeHandlers{
		sizeRepo:   sizeRepo,
		ownership:  ownership,
		cacheSvc:   cacheSvc,
		optimistic: optimistic,
	}
}

// ListSizes handles listing a store's sizes. Public.
func (h *SizeHandlers) ListSizes(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := storeIDParam(c)
	if err != nil {
		return err
	}

	key := caching.ListKey(caching.KindSize, storeID)
	var cached []*models.Size
	if hit, _ := h.cacheSvc.GetJSON(ctx, key, &cached); hit {
		return c.JSON(http.StatusOK, cached)
	}

	sizes, err := h.sizeRepo.ListByStore(ctx, storeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list sizes")
	}
	_ = h.cacheSvc.SetJSON(ctx, key, sizes, caching.DefaultTTL)

	return c.JSON(http.StatusOK, sizes)
}

// GetSize handles getting size details by ID. Public.
func (h *SizeHandlers) GetSize(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := storeIDParam(c)
	if err != nil {
		return err
	}
	sizeID, err := idParam(c, "sizeId")
	if err != nil {
		return err
	}

	key := caching.DetailKey(caching.KindSize, storeID, sizeID)
	var cached models.Size
	if hit, _ := h.cacheSvc.GetJSON(ctx, key, &cached); hit {
		return c.JSON(http.StatusOK, &cached)
	}

	size, err := h.sizeRepo.GetByID(ctx, storeID, sizeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Size not found")
	}
	_ = h.cacheSvc.SetJSON(ctx, key, size, caching.DefaultTTL)

	return c.JSON(http.StatusOK, size)
}

// CreateSizeRequest represents the size creation request payload
type CreateSizeRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CreateSize handles creating a size under an owned store
func (h *SizeHandlers) CreateSize(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := storeIDParam(c)
	if err != nil {
		return err
	}
	if err := requireStoreOwner(c, h.ownership, storeID); err != nil {
		return err
	}

	var req CreateSizeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Name is required")
	}
	if req.Value == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Value is required")
	}

	size := &models.Size{
		ID:      uuid.New(),
		StoreID: storeID,
		Name:    req.Name,
		Value:   req.Value,
	}

	listKey := caching.ListKey(caching.KindSize, storeID)
	mutation := caching.Mutation{
		Writes: []caching.CacheWrite{
			{Key: listKey, Apply: caching.AppendToList(size)},
		},
		Invalidate: []caching.Key{listKey},
	}
	err = h.optimistic.Run(ctx, mutation, func(ctx context.Context) error {
		return h.sizeRepo.Create(ctx, size)
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create size")
	}

	return c.JSON(http.StatusCreated, size)
}

// UpdateSizeRequest represents the size update request payload
type UpdateSizeRequest struct {
	Name  *string `json:"name"`
	Value *string `json:"value"`
}

// UpdateSize handles updating a size under an owned store
func (h *SizeHandlers) UpdateSize(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := storeIDParam(c)
	if err != nil {
		return err
	}
	sizeID, err := idParam(c, "sizeId")
	if err != nil {
		return err
	}
	if err := requireStoreOwner(c, h.ownership, storeID); err != nil {
		return err
	}

	var req UpdateSizeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	size, err := h.sizeRepo.GetByID(ctx, storeID, sizeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Size not found")
	}

	fields := map[string]any{}
	if req.Name != nil {
		size.Name = *req.Name
		fields["name"] = *req.Name
	}
	if req.Value != nil {
		size.Value = *req.Value
		fields["value"] = *req.Value
	}

	listKey := caching.ListKey(caching.KindSize, storeID)
	detailKey := caching.DetailKey(caching.KindSize, storeID, sizeID)
	mutation := caching.Mutation{
		Writes: []caching.CacheWrite{
			{Key: detailKey, Apply: caching.MergeDetail(fields)},
		},
		Invalidate: []caching.Key{listKey, detailKey},
	}
	err = h.optimistic.Run(ctx, mutation, func(ctx context.Context) error {
		return h.sizeRepo.Update(ctx, size)
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update size")
	}

	return c.JSON(http.StatusOK, size)
}

// DeleteSize handles deleting a size under an owned store
func (h *SizeHandlers) DeleteSize(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := storeIDParam(c)
	if err != nil {
		return err
	}
	sizeID, err := idParam(c, "sizeId")
	if err != nil {
		return err
	}
	if err := requireStoreOwner(c, h.ownership, storeID); err != nil {
		return err
	}

	listKey := caching.ListKey(caching.KindSize, storeID)
	detailKey := caching.DetailKey(caching.KindSize, storeID, sizeID)
	mutation := caching.Mutation{
		Writes: []caching.CacheWrite{
			{Key: listKey, Apply: caching.RemoveFromList(sizeID.String())},
		},
		Invalidate: []caching.Key{listKey, detailKey},
	}
	err = h.optimistic.Run(ctx, mutation, func(ctx context.Context) error {
		return h.sizeRepo.Delete(ctx, storeID, sizeID)
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete size")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Size deleted successfully",
	})
}
