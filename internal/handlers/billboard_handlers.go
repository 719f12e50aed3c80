package handlers

import (
	"context"
	"net/http"

	"storeadmin/internal/caching"
	"storeadmin/internal/common"
	"storeadmin/internal/models"
	"storeadmin/internal/repositories"
	"storeadmin/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BillboardHandlers handles billboard-related HTTP requests
type BillboardHandlers struct {
	billboardRepo repositories.BillboardRepository
	ownership     services.OwnershipService
	cacheSvc      *caching.CacheService
	optimistic    *caching.Optimistic
}

// NewBillboardHandlers creates a new billboard handlers instance
func NewBillboardHandlers(billboardRepo repositories.BillboardRepository, ownership services.OwnershipService, cacheSvc *caching.CacheService, optimistic *caching.Optimistic) *BillboardHandlers {
	return &BillboardHandlers{
		billboardRepo: billboardRepo,
		ownership:     ownership,
		cacheSvc:      cacheSvc,
		optimistic:    optimistic,
	}
}

// ListBillboards handles listing a store's billboards. Public: the
// storefront renders these without authentication.
func (h *BillboardHandlers) ListBillboards(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := storeIDParam(c)
	if err != nil {
		return err
	}

	key := caching.ListKey(caching.KindBillboard, storeID)
	var cached []*models.Billboard
	if hit, _ := h.cacheSvc.GetJSON(ctx, key, &cached); hit {
		return c.JSON(http.StatusOK, cached)
	}

	billboards, err := h.billboardRepo.ListByStore(ctx, storeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list billboards")
	}
	_ = h.cacheSvc.SetJSON(ctx, key, billboards, caching.DefaultTTL)

	return c.JSON(http.StatusOK, billboards)
}

// GetBillboard handles getting billboard details by ID. Public.
func (h *BillboardHandlers) GetBillboard(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := storeIDParam(c)
	if err != nil {
		return err
	}
	billboardID, err := idParam(c, "billboardId")
	if err != nil {
		return err
	}

	key := caching.DetailKey(caching.KindBillboard, storeID, billboardID)
	var cached models.Billboard
	if hit, _ := h.cacheSvc.GetJSON(ctx, key, &cached); hit {
		return c.JSON(http.StatusOK, &cached)
	}

	billboard, err := h.billboardRepo.GetByID(ctx, storeID, billboardID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Billboard not found")
	}
	_ = h.cacheSvc.SetJSON(ctx, key, billboard, caching.DefaultTTL)

	return c.JSON(http.StatusOK, billboard)
}

// CreateBillboardRequest represents the billboard creation request payload
type CreateBillboardRequest struct {
	Label    string `json:"label"`
	ImageURL string `json:"imageUrl"`
}

// CreateBillboard handles creating a billboard under an owned store
func (h *BillboardHandlers) CreateBillboard(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := storeIDParam(c)
	if err != nil {
		return err
	}
	if err := requireStoreOwner(c, h.ownership, storeID); err != nil {
		return err
	}

	var req CreateBillboardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Label, "Label"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := common.ValidateRequiredString(req.ImageURL, "Image URL"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	billboard := &models.Billboard{
		ID:       uuid.New(),
		StoreID:  storeID,
		Label:    req.Label,
		ImageURL: req.ImageURL,
	}

	listKey := caching.ListKey(caching.KindBillboard, storeID)
	mutation := caching.Mutation{
		Writes: []caching.CacheWrite{
			{Key: listKey, Apply: caching.AppendToList(billboard)},
		},
		Invalidate: []caching.Key{listKey},
	}
	err = h.optimistic.Run(ctx, mutation, func(ctx context.Context) error {
		return h.billboardRepo.Create(ctx, billboard)
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create billboard")
	}

	return c.JSON(http.StatusCreated, billboard)
}

// UpdateBillboardRequest represents the billboard update request payload
type UpdateBillboardRequest struct {
	Label    *string `json:"label"`
	ImageURL *string `json:"imageUrl"`
}

// UpdateBillboard handles updating a billboard under an owned store
func (h *BillboardHandlers) UpdateBillboard(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := storeIDParam(c)
	if err != nil {
		return err
	}
	billboardID, err := idParam(c, "billboardId")
	if err != nil {
		return err
	}
	if err := requireStoreOwner(c, h.ownership, storeID); err != nil {
		return err
	}

	var req UpdateBillboardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	billboard, err := h.billboardRepo.GetByID(ctx, storeID, billboardID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Billboard not found")
	}

	fields := map[string]any{}
	if req.Label != nil {
		billboard.Label = *req.Label
		fields["label"] = *req.Label
	}
	if req.ImageURL != nil {
		billboard.ImageURL = *req.ImageURL
		fields["imageUrl"] = *req.ImageURL
	}

	listKey := caching.ListKey(caching.KindBillboard, storeID)
	detailKey := caching.DetailKey(caching.KindBillboard, storeID, billboardID)
	mutation := caching.Mutation{
		Writes: []caching.CacheWrite{
			{Key: detailKey, Apply: caching.MergeDetail(fields)},
		},
		Invalidate: []caching.Key{listKey, detailKey},
	}
	err = h.optimistic.Run(ctx, mutation, func(ctx context.Context) error {
		return h.billboardRepo.Update(ctx, billboard)
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update billboard")
	}

	return c.JSON(http.StatusOK, billboard)
}

// DeleteBillboard handles deleting a billboard under an owned store
func (h *BillboardHandlers) DeleteBillboard(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := storeIDParam(c)
	if err != nil {
		return err
	}
	billboardID, err := idParam(c, "billboardId")
	if err != nil {
		return err
	}
	if err := requireStoreOwner(c, h.ownership, storeID); err != nil {
		return err
	}

	listKey := caching.ListKey(caching.KindBillboard, storeID)
	detailKey := caching.DetailKey(caching.KindBillboard, storeID, billboardID)
	mutation := caching.Mutation{
		Writes: []caching.CacheWrite{
			{Key: listKey, Apply: caching.RemoveFromList(billboardID.String())},
		},
		Invalidate: []caching.Key{listKey, detailKey},
	}
	err = h.optimistic.Run(ctx, mutation, func(ctx context.Context) error {
		return h.billboardRepo.Delete(ctx, storeID, billboardID)
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete billboard")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Billboard deleted successfully",
	})
}
