package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Testimonial is a client quote, optionally tied to a portfolio project.
type Testimonial struct {
	ID         uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	ClientName string     `json:"client_name" gorm:"size:255;not null"`
	Quote      string     `json:"quote" gorm:"type:text;not null"`
	Rating     int        `json:"rating" gorm:"default:5"`
	ProjectID  *uuid.UUID `json:"project_id,omitempty" gorm:"type:char(36);index"`
	Approved   bool       `json:"approved" gorm:"default:false;index"`

	ClientPhoto ImageRef `json:"client_photo" gorm:"embedded;embeddedPrefix:client_photo_"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Testimonial) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
