package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"atelier/internal/service"
)

// GalleryHandler handles inspiration gallery endpoints.
type GalleryHandler struct {
	gallery service.GalleryService
}

// NewGalleryHandler creates a new gallery handler.
func NewGalleryHandler(gallery service.GalleryService) *GalleryHandler {
	return &GalleryHandler{gallery: gallery}
}

// List returns gallery images, optionally filtered by ?category=.
func (h *GalleryHandler) List(c echo.Context) error {
	gs, err := h.gallery.List(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, gs)
}

// Get returns a single gallery image by ID.
func (h *GalleryHandler) Get(c echo.Context) error {
	g, err := h.gallery.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, g)
}

// Create requires an "image" file; a gallery item exists to show one.
func (h *GalleryHandler) Create(c echo.Context) error {
	g, err := h.gallery.Create(c.Request().Context(), galleryInputFromForm(c), fileOrNil(c, "image"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, g)
}

// Update applies partial changes; a supplied "image" file replaces the blob.
func (h *GalleryHandler) Update(c echo.Context) error {
	g, err := h.gallery.Update(c.Request().Context(), c.Param("id"), galleryInputFromForm(c), fileOrNil(c, "image"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, g)
}

// Delete removes a gallery image and best-effort deletes its blob.
func (h *GalleryHandler) Delete(c echo.Context) error {
	if err := h.gallery.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "gallery image deleted"})
}

func galleryInputFromForm(c echo.Context) service.GalleryInput {
	return service.GalleryInput{
		Caption:   strPtr(c, "caption"),
		Category:  strPtr(c, "category"),
		SortOrder: intPtr(c, "sort_order"),
	}
}
