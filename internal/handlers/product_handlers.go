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

// ProductHandlers handles product-related HTTP requests
type ProductHandlers struct {
	productRepo repositories.ProductRepository
	ownership   services.OwnershipService
	cacheSvc    *caching.CacheService
	optimistic  *caching.Optimistic
}

// NewProductHandlers creates a new product handlers instance
func NewProductHandlers(productRepo repositories.ProductRepository, ownership services.OwnershipService, cacheSvc *caching.CacheService, optimistic *caching.Optimistic) *ProductHandlers {
	return &ProductHandlers{
		productRepo: productRepo,
		ownership:   ownership,
		cacheSvc:    cacheSvc,
		optimistic:  optimistic,
	}
}

// ListProductsRequest represents query parameters for listing products
type ListProductsRequest struct {
	CategoryID string `query:"categoryId"`
	IsFeatured string `query:"isFeatured"`
	IsArchived string `query:"isArchived"`
	Limit      int    `query:"limit"`
	Offset     int    `query:"offset"`
}

// ListProducts handles listing a store's products with storefront filters.
// Public. Filtered requests bypass the cache; only the unfiltered list is
// cached.
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := storeIDParam(c)
	if err != nil {
		return err
	}

	var req ListProductsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	filter := &models.ProductFilter{}
	if req.CategoryID != "" {
		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid category ID format")
		}
		filter.CategoryID = &categoryID
	}
	if req.IsFeatured != "" {
		featured := req.IsFeatured == "true"
		filter.IsFeatured = &featured
	}
	if req.IsArchived != "" {
		archived := req.IsArchived == "true"
		filter.IsArchived = &archived
	}
	filter.Limit, filter.Offset = common.ValidatePaginationParams(req.Limit, req.Offset)

	// Only default pagination may read or warm the canonical list key; a
	// custom limit produces a truncated list that must never be cached.
	unfiltered := filter.CategoryID == nil && filter.IsFeatured == nil && filter.IsArchived == nil &&
		req.Limit == 0 && filter.Offset == 0

	key := caching.ListKey(caching.KindProduct, storeID)
	if unfiltered {
		var cached []*models.Product
		if hit, _ := h.cacheSvc.GetJSON(ctx, key, &cached); hit {
			return c.JSON(http.StatusOK, cached)
		}
	}

	products, err := h.productRepo.ListByStore(ctx, storeID, filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list products")
	}
	if unfiltered {
		_ = h.cacheSvc.SetJSON(ctx, key, products, caching.DefaultTTL)
	}

	return c.JSON(http.StatusOK, products)
}

// GetProduct handles getting product details by ID along with its category,
// sizes, colors and images. Public.
func (h *ProductHandlers) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := storeIDParam(c)
	if err != nil {
		return err
	}
	productID, err := idParam(c, "productId")
	if err != nil {
		return err
	}

	key := caching.DetailKey(caching.KindProduct, storeID, productID)
	var cached models.Product
	if hit, _ := h.cacheSvc.GetJSON(ctx, key, &cached); hit {
		return c.JSON(http.StatusOK, &cached)
	}

	product, err := h.productRepo.GetByID(ctx, storeID, productID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Product not found")
	}
	_ = h.cacheSvc.SetJSON(ctx, key, product, caching.DefaultTTL)

	return c.JSON(http.StatusOK, product)
}

// ProductImageRequest carries one image URL in a product payload
type ProductImageRequest struct {
	URL string `json:"url"`
}

// CreateProductRequest represents the product creation request payload
type CreateProductRequest struct {
	Name       string                `json:"name"`
	Price      float64               `json:"price"`
	CategoryID string                `json:"categoryId"`
	SizeIDs    []string              `json:"sizeIds"`
	ColorIDs   []string              `json:"colorIds"`
	Images     []ProductImageRequest `json:"images"`
	IsFeatured bool                  `json:"isFeatured"`
	IsArchived bool                  `json:"isArchived"`
}

// CreateProduct handles creating a product with its size, color and image
// relations in a single transaction
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := storeIDParam(c)
	if err != nil {
		return err
	}
	if err := requireStoreOwner(c, h.ownership, storeID); err != nil {
		return err
	}

	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "Name"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := common.ValidatePositivePrice(req.Price, "Price"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(req.Images) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "At least one image is required")
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid category ID format")
	}
	sizeIDs, err := parseUUIDs(req.SizeIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid size ID format")
	}
	colorIDs, err := parseUUIDs(req.ColorIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid color ID format")
	}

	product := &models.Product{
		ID:         uuid.New(),
		StoreID:    storeID,
		CategoryID: categoryID,
		Name:       req.Name,
		Price:      req.Price,
		IsFeatured: req.IsFeatured,
		IsArchived: req.IsArchived,
	}
	imageURLs := make([]string, 0, len(req.Images))
	for _, img := range req.Images {
		imageURLs = append(imageURLs, img.URL)
	}

	listKey := caching.ListKey(caching.KindProduct, storeID)
	mutation := caching.Mutation{
		Writes: []caching.CacheWrite{
			{Key: listKey, Apply: caching.AppendToList(product)},
		},
		Invalidate: []caching.Key{listKey},
	}
	err = h.optimistic.Run(ctx, mutation, func(ctx context.Context) error {
		return h.productRepo.Create(ctx, product, sizeIDs, colorIDs, imageURLs)
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create product")
	}

	return c.JSON(http.StatusCreated, product)
}

// UpdateProductRequest represents the product update request payload.
// Size, color and image sets replace the existing ones wholesale when
// provided.
type UpdateProductRequest struct {
	Name       *string               `json:"name"`
	Price      *float64              `json:"price"`
	CategoryID *string               `json:"categoryId"`
	SizeIDs    []string              `json:"sizeIds"`
	ColorIDs   []string              `json:"colorIds"`
	Images     []ProductImageRequest `json:"images"`
	IsFeatured *bool                 `json:"isFeatured"`
	IsArchived *bool                 `json:"isArchived"`
}

// UpdateProduct handles updating a product under an owned store
func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := storeIDParam(c)
	if err != nil {
		return err
	}
	productID, err := idParam(c, "productId")
	if err != nil {
		return err
	}
	if err := requireStoreOwner(c, h.ownership, storeID); err != nil {
		return err
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	product, err := h.productRepo.GetByID(ctx, storeID, productID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Product not found")
	}

	fields := map[string]any{}
	if req.Name != nil {
		product.Name = *req.Name
		fields["name"] = *req.Name
	}
	if req.Price != nil {
		if err := common.ValidatePositivePrice(*req.Price, "Price"); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		product.Price = *req.Price
		fields["price"] = *req.Price
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid category ID format")
		}
		product.CategoryID = categoryID
		fields["categoryId"] = categoryID
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
		fields["isFeatured"] = *req.IsFeatured
	}
	if req.IsArchived != nil {
		product.IsArchived = *req.IsArchived
		fields["isArchived"] = *req.IsArchived
	}

	// Relation sets default to the current ones when the payload omits them.
	sizeIDs := relationIDs(product.Sizes, func(s *models.Size) uuid.UUID { return s.ID })
	if req.SizeIDs != nil {
		if sizeIDs, err = parseUUIDs(req.SizeIDs); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid size ID format")
		}
	}
	colorIDs := relationIDs(product.Colors, func(col *models.Color) uuid.UUID { return col.ID })
	if req.ColorIDs != nil {
		if colorIDs, err = parseUUIDs(req.ColorIDs); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid color ID format")
		}
	}
	imageURLs := make([]string, 0, len(product.Images))
	for _, img := range product.Images {
		imageURLs = append(imageURLs, img.URL)
	}
	if req.Images != nil {
		imageURLs = imageURLs[:0]
		for _, img := range req.Images {
			imageURLs = append(imageURLs, img.URL)
		}
	}

	listKey := caching.ListKey(caching.KindProduct, storeID)
	detailKey := caching.DetailKey(caching.KindProduct, storeID, productID)
	mutation := caching.Mutation{
		Writes: []caching.CacheWrite{
			{Key: detailKey, Apply: caching.MergeDetail(fields)},
		},
		Invalidate: []caching.Key{listKey, detailKey},
	}
	err = h.optimistic.Run(ctx, mutation, func(ctx context.Context) error {
		return h.productRepo.Update(ctx, product, sizeIDs, colorIDs, imageURLs)
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update product")
	}

	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles deleting a product under an owned store
func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := storeIDParam(c)
	if err != nil {
		return err
	}
	productID, err := idParam(c, "productId")
	if err != nil {
		return err
	}
	if err := requireStoreOwner(c, h.ownership, storeID); err != nil {
		return err
	}

	listKey := caching.ListKey(caching.KindProduct, storeID)
	detailKey := caching.DetailKey(caching.KindProduct, storeID, productID)
	mutation := caching.Mutation{
		Writes: []caching.CacheWrite{
			{Key: listKey, Apply: caching.RemoveFromList(productID.String())},
		},
		Invalidate: []caching.Key{listKey, detailKey},
	}
	err = h.optimistic.Run(ctx, mutation, func(ctx context.Context) error {
		return h.productRepo.Delete(ctx, storeID, productID)
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete product")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Product deleted successfully",
	})
}

func parseUUIDs(values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(values))
	for _, value := range values {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func relationIDs[T any](items []T, id func(T) uuid.UUID) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, id(item))
	}
	return ids
}
