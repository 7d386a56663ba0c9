package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"atelier/internal/service"
)

// SettingsHandler handles the site/about/contact settings singletons.
type SettingsHandler struct {
	settings service.SettingsService
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(settings service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Site returns the site settings, creating defaults on first read.
func (h *SettingsHandler) Site(c echo.Context) error {
	s, err := h.settings.Site(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

// UpdateSite applies partial changes to the site settings.
func (h *SettingsHandler) UpdateSite(c echo.Context) error {
	s, err := h.settings.UpdateSite(c.Request().Context(), service.SiteSettingsInput{
		SiteName:  strPtr(c, "site_name"),
		Tagline:   strPtr(c, "tagline"),
		Facebook:  strPtr(c, "facebook"),
		Instagram: strPtr(c, "instagram"),
		Pinterest: strPtr(c, "pinterest"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

// About returns the about-page content.
func (h *SettingsHandler) About(c echo.Context) error {
	a, err := h.settings.About(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

// UpdateAbout applies partial changes; a "hero_image" file replaces the hero
// under the replacement protocol, "remove_hero_image=true" clears it.
func (h *SettingsHandler) UpdateAbout(c echo.Context) error {
	a, err := h.settings.UpdateAbout(
		c.Request().Context(),
		service.AboutInput{
			Heading:   strPtr(c, "heading"),
			Body:      strPtr(c, "body"),
			TeamBlurb: strPtr(c, "team_blurb"),
		},
		fileOrNil(c, "hero_image"),
		formFlag(c, "remove_hero_image"),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

// Contact returns the contact settings.
func (h *SettingsHandler) Contact(c echo.Context) error {
	ct, err := h.settings.Contact(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ct)
}

// UpdateContact applies partial changes to the contact settings.
func (h *SettingsHandler) UpdateContact(c echo.Context) error {
	ct, err := h.settings.UpdateContact(c.Request().Context(), service.ContactInput{
		Email:     strPtr(c, "email"),
		Phone:     strPtr(c, "phone"),
		Address:   strPtr(c, "address"),
		MapsEmbed: strPtr(c, "maps_embed"),
		Hours:     strPtr(c, "hours"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ct)
}
