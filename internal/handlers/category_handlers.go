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

// CategoryHandlers handles category-related HTTP requests
type CategoryHandlers struct {
	categoryRepo  repositories.CategoryRepository
	billboardRepo repositories.BillboardRepository
	ownership     services.OwnershipService
	cacheSvc      *caching.CacheService
	optimistic    *caching.Optimistic
}

// NewCategoryHandlers creates a new category handlers instance
func NewCategoryHandlers(categoryRepo repositories.CategoryRepository, billboardRepo repositories.BillboardRepository, ownership services.OwnershipService, cacheSvc *caching.CacheService, optimistic *caching.Optimistic) *CategoryHandlers {
	return &CategoryHandlers{
		categoryRepo:  categoryRepo,
		billboardRepo: billboardRepo,
		ownership:     ownership,
		cacheSvc:      cacheSvc,
		optimistic:    optimistic,
	}
}

// ListCategories handles listing a store's categories. Public.
func (h *CategoryHandlers) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := storeIDParam(c)
	if err != nil {
		return err
	}

	key := caching.ListKey(caching.KindCategory, storeID)
	var cached []*models.Category
	if hit, _ := h.cacheSvc.GetJSON(ctx, key, &cached); hit {
		return c.JSON(http.StatusOK, cached)
	}

	categories, err := h.categoryRepo.ListByStore(ctx, storeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list categories")
	}
	_ = h.cacheSvc.SetJSON(ctx, key, categories, caching.DefaultTTL)

	return c.JSON(http.StatusOK, categories)
}

// GetCategory handles getting category details by ID, including the linked
// billboard the storefront renders. Public.
func (h *CategoryHandlers) GetCategory(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := storeIDParam(c)
	if err != nil {
		return err
	}
	categoryID, err := idParam(c, "categoryId")
	if err != nil {
		return err
	}

	key := caching.DetailKey(caching.KindCategory, storeID, categoryID)
	var cached models.Category
	if hit, _ := h.cacheSvc.GetJSON(ctx, key, &cached); hit {
		return c.JSON(http.StatusOK, &cached)
	}

	category, err := h.categoryRepo.GetByID(ctx, storeID, categoryID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Category not found")
	}
	_ = h.cacheSvc.SetJSON(ctx, key, category, caching.DefaultTTL)

	return c.JSON(http.StatusOK, category)
}

// CreateCategoryRequest represents the category creation request payload
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	BillboardID string `json:"billboardId"`
}

// CreateCategory handles creating a category under an owned store
func (h *CategoryHandlers) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := storeIDParam(c)
	if err != nil {
		return err
	}
	if err := requireStoreOwner(c, h.ownership, storeID); err != nil {
		return err
	}

	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Name is required")
	}
	billboardID, err := uuid.Parse(req.BillboardID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid billboard ID format")
	}

	// The billboard must belong to the same store.
	if _, err := h.billboardRepo.GetByID(ctx, storeID, billboardID); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Billboard not found")
	}

	category := &models.Category{
		ID:          uuid.New(),
		StoreID:     storeID,
		Name:        req.Name,
		BillboardID: billboardID,
	}

	listKey := caching.ListKey(caching.KindCategory, storeID)
	mutation := caching.Mutation{
		Writes: []caching.CacheWrite{
			{Key: listKey, Apply: caching.AppendToList(category)},
		},
		Invalidate: []caching.Key{listKey},
	}
	err = h.optimistic.Run(ctx, mutation, func(ctx context.Context) error {
		return h.categoryRepo.Create(ctx, category)
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create category")
	}

	return c.JSON(http.StatusCreated, category)
}

// UpdateCategoryRequest represents the category update request payload
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	BillboardID *string `json:"billboardId"`
}

// UpdateCategory handles updating a category under an owned store
func (h *CategoryHandlers) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := storeIDParam(c)
	if err != nil {
		return err
	}
	categoryID, err := idParam(c, "categoryId")
	if err != nil {
		return err
	}
	if err := requireStoreOwner(c, h.ownership, storeID); err != nil {
		return err
	}

	var req UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	category, err := h.categoryRepo.GetByID(ctx, storeID, categoryID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Category not found")
	}

	fields := map[string]any{}
	if req.Name != nil {
		category.Name = *req.Name
		fields["name"] = *req.Name
	}
	if req.BillboardID != nil {
		billboardID, err := uuid.Parse(*req.BillboardID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid billboard ID format")
		}
		if _, err := h.billboardRepo.GetByID(ctx, storeID, billboardID); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Billboard not found")
		}
		category.BillboardID = billboardID
		fields["billboardId"] = billboardID
	}

	listKey := caching.ListKey(caching.KindCategory, storeID)
	detailKey := caching.DetailKey(caching.KindCategory, storeID, categoryID)
	mutation := caching.Mutation{
		Writes: []caching.CacheWrite{
			{Key: detailKey, Apply: caching.MergeDetail(fields)},
		},
		Invalidate: []caching.Key{listKey, detailKey},
	}
	err = h.optimistic.Run(ctx, mutation, func(ctx context.Context) error {
		return h.categoryRepo.Update(ctx, category)
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update category")
	}

	return c.JSON(http.StatusOK, category)
}

// DeleteCategory handles deleting a category under an owned store
func (h *CategoryHandlers) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := storeIDParam(c)
	if err != nil {
		return err
	}
	categoryID, err := idParam(c, "categoryId")
	if err != nil {
		return err
	}
	if err := requireStoreOwner(c, h.ownership, storeID); err != nil {
		return err
	}

	listKey := caching.ListKey(caching.KindCategory, storeID)
	detailKey := caching.DetailKey(caching.KindCategory, storeID, categoryID)
	mutation := caching.Mutation{
		Writes: []caching.CacheWrite{
			{Key: listKey, Apply: caching.RemoveFromList(categoryID.String())},
		},
		Invalidate: []caching.Key{listKey, detailKey},
	}
	err = h.optimistic.Run(ctx, mutation, func(ctx context.Context) error {
		return h.categoryRepo.Delete(ctx, storeID, categoryID)
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete category")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Category deleted successfully",
	})
}
