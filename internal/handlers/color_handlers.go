package handlers

import (
	"context"
	"net/http"
	"regexp"

	"storeadmin/internal/caching"
	"storeadmin/internal/models"
	"storeadmin/internal/repositories"
	"storeadmin/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Color values render as CSS backgrounds in the admin UI, so they must be
// hex codes.
var hexColorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ColorHandlers handles color-related HTTP requests
type ColorHandlers struct {
	colorRepo  repositories.ColorRepository
	ownership  services.OwnershipService
	cacheSvc   *caching.CacheService
	optimistic *caching.Optimistic
}

// NewColorHandlers creates a new color handlers instance
func NewColorHandlers(colorRepo repositories.ColorRepository, ownership services.OwnershipService, cacheSvc *caching.CacheService, optimistic *caching.Optimistic) *ColorHandlers {
	return &ColorHandlers{
		colorRepo:  colorRepo,
		ownership:  ownership,
		cacheSvc:   cacheSvc,
		optimistic: optimistic,
	}
}

// ListColors handles listing a store's colors. Public.
func (h *ColorHandlers) ListColors(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := storeIDParam(c)
	if err != nil {
		return err
	}

	key := caching.ListKey(caching.KindColor, storeID)
	var cached []*models.Color
	if hit, _ := h.cacheSvc.GetJSON(ctx, key, &cached); hit {
		return c.JSON(http.StatusOK, cached)
	}

	colors, err := h.colorRepo.ListByStore(ctx, storeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list colors")
	}
	_ = h.cacheSvc.SetJSON(ctx, key, colors, caching.DefaultTTL)

	return c.JSON(http.StatusOK, colors)
}

// GetColor handles getting color details by ID. Public.
func (h *ColorHandlers) GetColor(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := storeIDParam(c)
	if err != nil {
		return err
	}
	colorID, err := idParam(c, "colorId")
	if err != nil {
		return err
	}

	key := caching.DetailKey(caching.KindColor, storeID, colorID)
	var cached models.Color
	if hit, _ := h.cacheSvc.GetJSON(ctx, key, &cached); hit {
		return c.JSON(http.StatusOK, &cached)
	}

	color, err := h.colorRepo.GetByID(ctx, storeID, colorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Color not found")
	}
	_ = h.cacheSvc.SetJSON(ctx, key, color, caching.DefaultTTL)

	return c.JSON(http.StatusOK, color)
}

// CreateColorRequest represents the color creation request payload
type CreateColorRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CreateColor handles creating a color under an owned store
func (h *ColorHandlers) CreateColor(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := storeIDParam(c)
	if err != nil {
		return err
	}
	if err := requireStoreOwner(c, h.ownership, storeID); err != nil {
		return err
	}

	var req CreateColorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Name is required")
	}
	if !hexColorPattern.MatchString(req.Value) {
		return echo.NewHTTPError(http.StatusBadRequest, "Value must be a hex color code")
	}

	color := &models.Color{
		ID:      uuid.New(),
		StoreID: storeID,
		Name:    req.Name,
		Value:   req.Value,
	}

	listKey := caching.ListKey(caching.KindColor, storeID)
	mutation := caching.Mutation{
		Writes: []caching.CacheWrite{
			{Key: listKey, Apply: caching.AppendToList(color)},
		},
		Invalidate: []caching.Key{listKey},
	}
	err = h.optimistic.Run(ctx, mutation, func(ctx context.Context) error {
		return h.colorRepo.Create(ctx, color)
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create color")
	}

	return c.JSON(http.StatusCreated, color)
}

// UpdateColorRequest represents the color update request payload
type UpdateColorRequest struct {
	Name  *string `json:"name"`
	Value *string `json:"value"`
}

// UpdateColor handles updating a color under an owned store
func (h *ColorHandlers) UpdateColor(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := storeIDParam(c)
	if err != nil {
		return err
	}
	colorID, err := idParam(c, "colorId")
	if err != nil {
		return err
	}
	if err := requireStoreOwner(c, h.ownership, storeID); err != nil {
		return err
	}

	var req UpdateColorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	color, err := h.colorRepo.GetByID(ctx, storeID, colorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Color not found")
	}

	fields := map[string]any{}
	if req.Name != nil {
		color.Name = *req.Name
		fields["name"] = *req.Name
	}
	if req.Value != nil {
		if !hexColorPattern.MatchString(*req.Value) {
			return echo.NewHTTPError(http.StatusBadRequest, "Value must be a hex color code")
		}
		color.Value = *req.Value
		fields["value"] = *req.Value
	}

	listKey := caching.ListKey(caching.KindColor, storeID)
	detailKey := caching.DetailKey(caching.KindColor, storeID, colorID)
	mutation := caching.Mutation{
		Writes: []caching.CacheWrite{
			{Key: detailKey, Apply: caching.MergeDetail(fields)},
		},
		Invalidate: []caching.Key{listKey, detailKey},
	}
	err = h.optimistic.Run(ctx, mutation, func(ctx context.Context) error {
		return h.colorRepo.Update(ctx, color)
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update color")
	}

	return c.JSON(http.StatusOK, color)
}

// DeleteColor handles deleting a color under an owned store
func (h *ColorHandlers) DeleteColor(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := storeIDParam(c)
	if err != nil {
		return err
	}
	colorID, err := idParam(c, "colorId")
	if err != nil {
		return err
	}
	if err := requireStoreOwner(c, h.ownership, storeID); err != nil {
		return err
	}

	listKey := caching.ListKey(caching.KindColor, storeID)
	detailKey := caching.DetailKey(caching.KindColor, storeID, colorID)
	mutation := caching.Mutation{
		Writes: []caching.CacheWrite{
			{Key: listKey, Apply: caching.RemoveFromList(colorID.String())},
		},
		Invalidate: []caching.Key{listKey, detailKey},
	}
	err = h.optimistic.Run(ctx, mutation, func(ctx context.Context) error {
		return h.colorRepo.Delete(ctx, storeID, colorID)
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete color")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Color deleted successfully",
	})
}
