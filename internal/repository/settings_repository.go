package repository

import (
	"context"

	"gorm.io/gorm"

	"atelier/internal/model"
)

// SettingsRepository serves the three settings singletons. Reads are
// get-or-create against the fixed well-known key, so first read materializes
// the defaults and there is never process-wide mutable state.
type SettingsRepository interface {
	Site(ctx context.Context) (*model.SiteSettings, error)
	SaveSite(ctx context.Context, s *model.SiteSettings) error
	About(ctx context.Context) (*model.AboutContent, error)
	SaveAbout(ctx context.Context, a *model.AboutContent) error
	Contact(ctx context.Context) (*model.ContactSettings, error)
	SaveContact(ctx context.Context, c *model.ContactSettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository builds a GORM-backed repository.
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Site(ctx context.Context) (*model.SiteSettings, error) {
	s := model.SiteSettings{ID: model.SingletonID, SiteName: "Atelier Interior Design"}
	if err := r.db.WithContext(ctx).
		Where(model.SiteSettings{ID: model.SingletonID}).
		Attrs(s).
		FirstOrCreate(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepository) SaveSite(ctx context.Context, s *model.SiteSettings) error {
	s.ID = model.SingletonID
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *settingsRepository) About(ctx context.Context) (*model.AboutContent, error) {
	a := model.AboutContent{ID: model.SingletonID, Heading: "About the studio"}
	if err := r.db.WithContext(ctx).
		Where(model.AboutContent{ID: model.SingletonID}).
		Attrs(a).
		FirstOrCreate(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *settingsRepository) SaveAbout(ctx context.Context, a *model.AboutContent) error {
	a.ID = model.SingletonID
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *settingsRepository) Contact(ctx context.Context) (*model.ContactSettings, error) {
	c := model.ContactSettings{ID: model.SingletonID}
	if err := r.db.WithContext(ctx).
		Where(model.ContactSettings{ID: model.SingletonID}).
		Attrs(c).
		FirstOrCreate(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *settingsRepository) SaveContact(ctx context.Context, c *model.ContactSettings) error {
	c.ID = model.SingletonID
	return r.db.WithContext(ctx).Save(c).Error
}
