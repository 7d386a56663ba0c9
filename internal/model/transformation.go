package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transformation is a before/after showcase. At most one transformation may
// be active at a time; the repository enforces the clear-then-set swap in a
// single transaction.
type Transformation struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Active      bool      `json:"active" gorm:"default:false;index"`

	BeforeImage ImageRef `json:"before_image" gorm:"embedded;embeddedPrefix:before_image_"`
	AfterImage  ImageRef `json:"after_image" gorm:"embedded;embeddedPrefix:after_image_"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Transformation) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// AllImages returns the before and after references that exist.
func (t *Transformation) AllImages() []ImageRef {
	var refs []ImageRef
	if !t.BeforeImage.IsZero() {
		refs = append(refs, t.BeforeImage)
	}
	if !t.AfterImage.IsZero() {
		refs = append(refs, t.AfterImage)
	}
	return refs
}
