package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"atelier/internal/service"
)

// ProjectHandler handles portfolio project endpoints.
type ProjectHandler struct {
	projects service.ProjectService
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projects service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// List godoc
// @Summary List projects
// @Tags projects
// @Produce json
// @Success 200 {array} model.Project
// @Router /projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.projects.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, projects)
}

// ListFeatured returns the projects flagged for the home page.
func (h *ProjectHandler) ListFeatured(c echo.Context) error {
	projects, err := h.projects.ListFeatured(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, projects)
}

// Get returns a single project by ID.
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.projects.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

// GetBySlug returns a single project by slug.
func (h *ProjectHandler) GetBySlug(c echo.Context) error {
	project, err := h.projects.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

// Create godoc
// @Summary Create a project
// @Tags projects
// @Accept mpfd
// @Produce json
// @Param title formData string true "Title"
// @Param slug formData string true "Slug"
// @Param hero_image formData file false "Hero image"
// @Param images formData file false "Gallery images"
// @Success 201 {object} model.Project
// @Failure 413 {object} errors.ErrorResponse
// @Failure 415 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	project, err := h.projects.Create(
		c.Request().Context(),
		projectInputFromForm(c),
		fileOrNil(c, "hero_image"),
		filesOrNil(c, "images"),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, project)
}

// Update applies partial changes; supplying "hero_image" or "images" swaps
// the respective references under the replacement protocol, and
// "remove_hero_image=true" clears the hero without a replacement.
func (h *ProjectHandler) Update(c echo.Context) error {
	project, err := h.projects.Update(
		c.Request().Context(),
		c.Param("id"),
		projectInputFromForm(c),
		fileOrNil(c, "hero_image"),
		filesOrNil(c, "images"),
		formFlag(c, "remove_hero_image"),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

// Delete removes a project and best-effort deletes its blobs.
func (h *ProjectHandler) Delete(c echo.Context) error {
	if err := h.projects.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "project deleted"})
}

func projectInputFromForm(c echo.Context) service.ProjectInput {
	in := service.ProjectInput{
		Title:       strPtr(c, "title"),
		Slug:        strPtr(c, "slug"),
		Description: strPtr(c, "description"),
		Category:    strPtr(c, "category"),
		Location:    strPtr(c, "location"),
		Featured:    boolPtr(c, "featured"),
	}
	if v, ok := formValue(c, "budget"); ok {
		if d, err := decimal.NewFromString(v); err == nil {
			in.Budget = &d
		}
	}
	if v, ok := formValue(c, "completed_at"); ok {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			in.CompletedAt = &t
		}
	}
	return in
}
