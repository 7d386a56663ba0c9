package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"atelier/internal/model"
	"atelier/internal/service"
)

// PostHandler handles blog post endpoints.
type PostHandler struct {
	posts service.PostService
}

// NewPostHandler creates a new blog post handler.
func NewPostHandler(posts service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// List returns published posts publicly; admins see drafts too via ?all=true
// on the admin route.
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.posts.List(c.Request().Context(), true)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, posts)
}

// ListAll returns every post, drafts included. Admin only.
func (h *PostHandler) ListAll(c echo.Context) error {
	posts, err := h.posts.List(c.Request().Context(), false)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, posts)
}

// Get returns a single post by ID.
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.posts.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

// GetBySlug returns a single post by slug.
func (h *PostHandler) GetBySlug(c echo.Context) error {
	post, err := h.posts.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

// Create accepts multipart form data: scalar fields, an optional
// "hero_image" file, a "sections" JSON field, and "section_images" files
// slotted in order into image sections that arrive without a reference.
func (h *PostHandler) Create(c echo.Context) error {
	in, err := postInputFromForm(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.posts.Create(
		c.Request().Context(),
		in,
		fileOrNil(c, "hero_image"),
		filesOrNil(c, "section_images"),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, post)
}

// Update applies partial changes under the replacement protocol.
func (h *PostHandler) Update(c echo.Context) error {
	in, err := postInputFromForm(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.posts.Update(
		c.Request().Context(),
		c.Param("id"),
		in,
		fileOrNil(c, "hero_image"),
		filesOrNil(c, "section_images"),
		formFlag(c, "remove_hero_image"),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

// Delete removes a post and best-effort deletes its blobs, section images
// included.
func (h *PostHandler) Delete(c echo.Context) error {
	if err := h.posts.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "post deleted"})
}

func postInputFromForm(c echo.Context) (service.PostInput, error) {
	in := service.PostInput{
		Title:     strPtr(c, "title"),
		Slug:      strPtr(c, "slug"),
		Excerpt:   strPtr(c, "excerpt"),
		Author:    strPtr(c, "author"),
		Published: boolPtr(c, "published"),
	}
	if raw, ok := formValue(c, "sections"); ok {
		var sections model.SectionList
		if err := json.Unmarshal([]byte(raw), &sections); err != nil {
			return in, fmt.Errorf("invalid sections payload: %v", err)
		}
		for _, sec := range sections {
			if sec.Kind != model.SectionText && sec.Kind != model.SectionImage {
				return in, fmt.Errorf("unknown section kind %q", sec.Kind)
			}
		}
		in.Sections = &sections
	}
	return in, nil
}
