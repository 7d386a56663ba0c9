package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GalleryImage is a standalone image in the inspiration gallery.
type GalleryImage struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Caption   string    `json:"caption" gorm:"size:255"`
	Category  string    `json:"category" gorm:"size:100;index"`
	SortOrder int       `json:"sort_order" gorm:"default:0;index"`

	Image ImageRef `json:"image" gorm:"embedded;embeddedPrefix:image_"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (g *GalleryImage) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
