package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"atelier/internal/cache"
	"atelier/internal/model"
	"atelier/internal/repository"
	"atelier/internal/storage"
	"atelier/internal/upload"
)

const aboutFolder = "atelier/about"

const settingsCacheTTL = 10 * time.Minute

const (
	siteCacheKey    = "settings:site"
	aboutCacheKey   = "settings:about"
	contactCacheKey = "settings:contact"
)

// SiteSettingsInput carries site settings fields; nil means unchanged.
type SiteSettingsInput struct {
	SiteName  *string
	Tagline   *string
	Facebook  *string
	Instagram *string
	Pinterest *string
}

// AboutInput carries about-page fields; nil means unchanged.
type AboutInput struct {
	Heading   *string
	Body      *string
	TeamBlurb *string
}

// ContactInput carries contact-page fields; nil means unchanged.
type ContactInput struct {
	Email     *string
	Phone     *string
	Address   *string
	MapsEmbed *string
	Hours     *string
}

// SettingsService serves the three settings singletons with a cache-aside
// read path. Updates write through and invalidate.
type SettingsService interface {
	Site(ctx context.Context) (*model.SiteSettings, error)
	UpdateSite(ctx context.Context, in SiteSettingsInput) (*model.SiteSettings, error)
	About(ctx context.Context) (*model.AboutContent, error)
	UpdateAbout(ctx context.Context, in AboutInput, hero *multipart.FileHeader, removeHero bool) (*model.AboutContent, error)
	Contact(ctx context.Context) (*model.ContactSettings, error)
	UpdateContact(ctx context.Context, in ContactInput) (*model.ContactSettings, error)
}

type settingsService struct {
	settings repository.SettingsRepository
	cache    *cache.Client
	uploads  *upload.Pipeline
	store    storage.Client
}

// NewSettingsService creates a new settings service.
func NewSettingsService(settings repository.SettingsRepository, cacheClient *cache.Client, uploads *upload.Pipeline, store storage.Client) SettingsService {
	return &settingsService{settings: settings, cache: cacheClient, uploads: uploads, store: store}
}

func (s *settingsService) Site(ctx context.Context) (*model.SiteSettings, error) {
	var cached model.SiteSettings
	if s.cache.GetJSON(ctx, siteCacheKey, &cached) {
		return &cached, nil
	}

	site, err := s.settings.Site(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, siteCacheKey, site, settingsCacheTTL)
	return site, nil
}

func (s *settingsService) UpdateSite(ctx context.Context, in SiteSettingsInput) (*model.SiteSettings, error) {
	site, err := s.settings.Site(ctx)
	if err != nil {
		return nil, err
	}

	if in.SiteName != nil {
		site.SiteName = *in.SiteName
	}
	if in.Tagline != nil {
		site.Tagline = *in.Tagline
	}
	if in.Facebook != nil {
		site.Facebook = *in.Facebook
	}
	if in.Instagram != nil {
		site.Instagram = *in.Instagram
	}
	if in.Pinterest != nil {
		site.Pinterest = *in.Pinterest
	}

	if err := s.settings.SaveSite(ctx, site); err != nil {
		return nil, fmt.Errorf("save site settings: %w", err)
	}
	_ = s.cache.Delete(ctx, siteCacheKey)
	return site, nil
}

func (s *settingsService) About(ctx context.Context) (*model.AboutContent, error) {
	var cached model.AboutContent
	if s.cache.GetJSON(ctx, aboutCacheKey, &cached) {
		return &cached, nil
	}

	about, err := s.settings.About(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, aboutCacheKey, about, settingsCacheTTL)
	return about, nil
}

// UpdateAbout applies copy changes and the replacement protocol for the
// about-page hero image.
func (s *settingsService) UpdateAbout(ctx context.Context, in AboutInput, hero *multipart.FileHeader, removeHero bool) (*model.AboutContent, error) {
	about, err := s.settings.About(ctx)
	if err != nil {
		return nil, err
	}

	newHero := model.ImageRef{}
	if hero != nil {
		if newHero, err = s.uploads.Single(ctx, hero, aboutFolder); err != nil {
			return nil, err
		}
	}

	oldHero := about.HeroImage
	if in.Heading != nil {
		about.Heading = *in.Heading
	}
	if in.Body != nil {
		about.Body = *in.Body
	}
	if in.TeamBlurb != nil {
		about.TeamBlurb = *in.TeamBlurb
	}
	switch {
	case hero != nil:
		about.HeroImage = newHero
	case removeHero:
		about.HeroImage = model.ImageRef{}
	}

	if err := s.settings.SaveAbout(ctx, about); err != nil {
		return nil, fmt.Errorf("save about content: %w", err)
	}
	_ = s.cache.Delete(ctx, aboutCacheKey)

	if oldHero.PublicID != "" && oldHero.PublicID != about.HeroImage.PublicID {
		discardImages(s.store, oldHero)
	}
	return about, nil
}

func (s *settingsService) Contact(ctx context.Context) (*model.ContactSettings, error) {
	var cached model.ContactSettings
	if s.cache.GetJSON(ctx, contactCacheKey, &cached) {
		return &cached, nil
	}

	contact, err := s.settings.Contact(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, contactCacheKey, contact, settingsCacheTTL)
	return contact, nil
}

func (s *settingsService) UpdateContact(ctx context.Context, in ContactInput) (*model.ContactSettings, error) {
	contact, err := s.settings.Contact(ctx)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		contact.Email = *in.Email
	}
	if in.Phone != nil {
		contact.Phone = *in.Phone
	}
	if in.Address != nil {
		contact.Address = *in.Address
	}
	if in.MapsEmbed != nil {
		contact.MapsEmbed = *in.MapsEmbed
	}
	if in.Hours != nil {
		contact.Hours = *in.Hours
	}

	if err := s.settings.SaveContact(ctx, contact); err != nil {
		return nil, fmt.Errorf("save contact settings: %w", err)
	}
	_ = s.cache.Delete(ctx, contactCacheKey)
	return contact, nil
}
