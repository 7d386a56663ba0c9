package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"atelier/internal/service"
)

// TransformationHandler handles before/after showcase endpoints.
type TransformationHandler struct {
	transformations service.TransformationService
}

// NewTransformationHandler creates a new transformation handler.
func NewTransformationHandler(transformations service.TransformationService) *TransformationHandler {
	return &TransformationHandler{transformations: transformations}
}

// List returns all showcases. Admin only; the public site reads GetActive.
func (h *TransformationHandler) List(c echo.Context) error {
	ts, err := h.transformations.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ts)
}

// GetActive returns the single active showcase, 404 when none is active.
func (h *TransformationHandler) GetActive(c echo.Context) error {
	t, err := h.transformations.GetActive(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// Get returns a single showcase by ID.
func (h *TransformationHandler) Get(c echo.Context) error {
	t, err := h.transformations.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// Create requires "before_image" and "after_image" files.
func (h *TransformationHandler) Create(c echo.Context) error {
	t, err := h.transformations.Create(
		c.Request().Context(),
		transformationInputFromForm(c),
		fileOrNil(c, "before_image"),
		fileOrNil(c, "after_image"),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

// Update replaces either image independently under the replacement protocol.
func (h *TransformationHandler) Update(c echo.Context) error {
	t, err := h.transformations.Update(
		c.Request().Context(),
		c.Param("id"),
		transformationInputFromForm(c),
		fileOrNil(c, "before_image"),
		fileOrNil(c, "after_image"),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// SetActive makes this showcase the single active one.
func (h *TransformationHandler) SetActive(c echo.Context) error {
	t, err := h.transformations.SetActive(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// Delete removes a showcase and best-effort deletes both blobs.
func (h *TransformationHandler) Delete(c echo.Context) error {
	if err := h.transformations.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "transformation deleted"})
}

func transformationInputFromForm(c echo.Context) service.TransformationInput {
	return service.TransformationInput{
		Title:       strPtr(c, "title"),
		Description: strPtr(c, "description"),
	}
}
