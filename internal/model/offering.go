package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ServiceOffering is one of the studio's advertised services.
type ServiceOffering struct {
	ID        uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Name      string          `json:"name" gorm:"size:255;not null"`
	Summary   string          `json:"summary" gorm:"size:512"`
	Body      string          `json:"body" gorm:"type:text"`
	PriceFrom decimal.Decimal `json:"price_from" gorm:"type:decimal(12,2)"`
	SortOrder int             `json:"sort_order" gorm:"default:0;index"`

	Image ImageRef `json:"image" gorm:"embedded;embeddedPrefix:image_"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (s *ServiceOffering) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
