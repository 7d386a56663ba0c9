package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"atelier/internal/service"
)

// TestimonialHandler handles client testimonial endpoints.
type TestimonialHandler struct {
	testimonials service.TestimonialService
}

// NewTestimonialHandler creates a new testimonial handler.
func NewTestimonialHandler(testimonials service.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{testimonials: testimonials}
}

// List returns approved testimonials.
func (h *TestimonialHandler) List(c echo.Context) error {
	ts, err := h.testimonials.List(c.Request().Context(), true)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ts)
}

// ListAll returns every testimonial, unapproved included. Admin only.
func (h *TestimonialHandler) ListAll(c echo.Context) error {
	ts, err := h.testimonials.List(c.Request().Context(), false)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ts)
}

// Get returns a single testimonial by ID.
func (h *TestimonialHandler) Get(c echo.Context) error {
	t, err := h.testimonials.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// Create accepts multipart form data with an optional "client_photo" file.
func (h *TestimonialHandler) Create(c echo.Context) error {
	t, err := h.testimonials.Create(c.Request().Context(), testimonialInputFromForm(c), fileOrNil(c, "client_photo"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

// Update applies partial changes; "remove_photo=true" clears the photo.
func (h *TestimonialHandler) Update(c echo.Context) error {
	t, err := h.testimonials.Update(
		c.Request().Context(),
		c.Param("id"),
		testimonialInputFromForm(c),
		fileOrNil(c, "client_photo"),
		formFlag(c, "remove_photo"),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// Delete removes a testimonial and best-effort deletes its photo blob.
func (h *TestimonialHandler) Delete(c echo.Context) error {
	if err := h.testimonials.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "testimonial deleted"})
}

func testimonialInputFromForm(c echo.Context) service.TestimonialInput {
	in := service.TestimonialInput{
		ClientName: strPtr(c, "client_name"),
		Quote:      strPtr(c, "quote"),
		Rating:     intPtr(c, "rating"),
		Approved:   boolPtr(c, "approved"),
	}
	if v, ok := formValue(c, "project_id"); ok {
		if id, err := uuid.Parse(v); err == nil {
			in.ProjectID = &id
		}
	}
	return in
}
