package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"atelier/internal/service"
)

// InquiryHandler handles visitor inquiry endpoints.
type InquiryHandler struct {
	inquiries service.InquiryService
}

// NewInquiryHandler creates a new inquiry handler.
func NewInquiryHandler(inquiries service.InquiryService) *InquiryHandler {
	return &InquiryHandler{inquiries: inquiries}
}

// InquiryRequest represents a contact-form submission.
type InquiryRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone"`
	ProjectType string `json:"project_type"`
	Message     string `json:"message" validate:"required"`
}

// Create godoc
// @Summary Submit a visitor inquiry
// @Tags inquiries
// @Accept json
// @Produce json
// @Param request body InquiryRequest true "Inquiry"
// @Success 201 {object} model.Inquiry
// @Failure 400 {object} errors.ErrorResponse
// @Router /inquiries [post]
func (h *InquiryHandler) Create(c echo.Context) error {
	var req InquiryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	i, err := h.inquiries.Create(c.Request().Context(), req.Name, req.Email, req.Phone, req.ProjectType, req.Message)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, i)
}

// List returns all inquiries, newest first. Admin only.
func (h *InquiryHandler) List(c echo.Context) error {
	is, err := h.inquiries.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, is)
}

// Get returns a single inquiry by ID.
func (h *InquiryHandler) Get(c echo.Context) error {
	i, err := h.inquiries.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, i)
}

// MarkRead flags an inquiry as handled.
func (h *InquiryHandler) MarkRead(c echo.Context) error {
	i, err := h.inquiries.MarkRead(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, i)
}

// Delete removes an inquiry.
func (h *InquiryHandler) Delete(c echo.Context) error {
	if err := h.inquiries.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "inquiry deleted"})
}
