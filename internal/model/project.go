package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Project is a completed interior-design engagement shown in the portfolio.
// It owns a single hero image plus an ordered gallery; the gallery is always
// replaced as a whole batch, never patched element by element.
type Project struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string          `json:"title" gorm:"size:255;not null"`
	Slug        string          `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Description string          `json:"description" gorm:"type:text"`
	Category    string          `json:"category" gorm:"size:100;index"`
	Location    string          `json:"location" gorm:"size:255"`
	Budget      decimal.Decimal `json:"budget" gorm:"type:decimal(12,2)"`
	CompletedAt *time.Time      `json:"completed_at"`
	Featured    bool            `json:"featured" gorm:"default:false;index"`

	HeroImage ImageRef  `json:"hero_image" gorm:"embedded;embeddedPrefix:hero_image_"`
	ImageURLs ImageList `json:"image_urls" gorm:"serializer:json;type:json"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// AllImages returns every reference the project owns, hero first.
func (p *Project) AllImages() []ImageRef {
	refs := make([]ImageRef, 0, len(p.ImageURLs)+1)
	if !p.HeroImage.IsZero() {
		refs = append(refs, p.HeroImage)
	}
	return append(refs, p.ImageURLs...)
}
