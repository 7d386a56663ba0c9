package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"atelier/internal/service"
)

// OfferingHandler handles service-offering endpoints.
type OfferingHandler struct {
	offerings service.OfferingService
}

// NewOfferingHandler creates a new offering handler.
func NewOfferingHandler(offerings service.OfferingService) *OfferingHandler {
	return &OfferingHandler{offerings: offerings}
}

// List returns all offerings in display order.
func (h *OfferingHandler) List(c echo.Context) error {
	os, err := h.offerings.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, os)
}

// Get returns a single offering by ID.
func (h *OfferingHandler) Get(c echo.Context) error {
	o, err := h.offerings.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

// Create accepts multipart form data with an optional "image" file.
func (h *OfferingHandler) Create(c echo.Context) error {
	o, err := h.offerings.Create(c.Request().Context(), offeringInputFromForm(c), fileOrNil(c, "image"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, o)
}

// Update applies partial changes; "remove_image=true" clears the image.
func (h *OfferingHandler) Update(c echo.Context) error {
	o, err := h.offerings.Update(
		c.Request().Context(),
		c.Param("id"),
		offeringInputFromForm(c),
		fileOrNil(c, "image"),
		formFlag(c, "remove_image"),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

// Delete removes an offering and best-effort deletes its blob.
func (h *OfferingHandler) Delete(c echo.Context) error {
	if err := h.offerings.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "offering deleted"})
}

func offeringInputFromForm(c echo.Context) service.OfferingInput {
	in := service.OfferingInput{
		Name:      strPtr(c, "name"),
		Summary:   strPtr(c, "summary"),
		Body:      strPtr(c, "body"),
		SortOrder: intPtr(c, "sort_order"),
	}
	if v, ok := formValue(c, "price_from"); ok {
		if d, err := decimal.NewFromString(v); err == nil {
			in.PriceFrom = &d
		}
	}
	return in
}
