package handlers

import (
	"net/http"
	"strings"
	"time"

	"storeadmin/internal/services"

	"github.com/labstack/echo/v4"
)

const presignedURLExpiry = 7 * 24 * time.Hour

// UploadHandlers handles image uploads for billboards and products
type UploadHandlers struct {
	storageSvc services.StorageService
	ownership  services.OwnershipService
}

// NewUploadHandlers creates a new upload handlers instance
func NewUploadHandlers(storageSvc services.StorageService, ownership services.OwnershipService) *UploadHandlers {
	return &UploadHandlers{
		storageSvc: storageSvc,
		ownership:  ownership,
	}
}

// UploadImage handles POST /api/stores/:storeId/uploads. The returned URL
// is what billboard and product payloads reference as imageUrl.
func (h *UploadHandlers) UploadImage(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := storeIDParam(c)
	if err != nil {
		return err
	}
	if err := requireStoreOwner(c, h.ownership, storeID); err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "File is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read file")
	}
	defer file.Close()

	objectKey, err := h.storageSvc.UploadStoreImage(ctx, storeID, fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload image")
	}

	url, err := h.storageSvc.PresignedURL(ctx, objectKey, presignedURLExpiry)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate image URL")
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"key": objectKey,
		"url": url,
	})
}

// DeleteImage handles DELETE /api/stores/:storeId/uploads/:key. The key
// parameter is the object name without its store prefix; the prefix is
// always taken from the gated store so one store can never address
// another store's objects.
func (h *UploadHandlers) DeleteImage(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := storeIDParam(c)
	if err != nil {
		return err
	}
	if err := requireStoreOwner(c, h.ownership, storeID); err != nil {
		return err
	}

	name := c.Param("key")
	if name == "" || strings.ContainsRune(name, '/') {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid object key")
	}
	objectKey := storeID.String() + "/" + name

	if err := h.storageSvc.DeleteImage(ctx, objectKey); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete image")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Image deleted successfully",
	})
}
