package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Section kinds for blog post bodies.
const (
	SectionText  = "text"
	SectionImage = "image"
)

// Section is one block of a blog post body: either prose or an image with a
// caption. The kind tag decides whether an image delete is owed when the
// section is dropped.
type Section struct {
	Kind    string    `json:"kind"`
	Content string    `json:"content,omitempty"`
	Image   *ImageRef `json:"image,omitempty"`
	Caption string    `json:"caption,omitempty"`
}

// SectionList is stored as a single JSON column on the post.
type SectionList []Section

// ImageRefs returns the references owned by image sections, in order.
func (l SectionList) ImageRefs() []ImageRef {
	var refs []ImageRef
	for _, s := range l {
		if s.Kind == SectionImage && s.Image != nil && !s.Image.IsZero() {
			refs = append(refs, *s.Image)
		}
	}
	return refs
}

// BlogPost is an article on the studio blog.
type BlogPost struct {
	ID        uuid.UUID   `json:"id" gorm:"type:char(36);primaryKey"`
	Title     string      `json:"title" gorm:"size:255;not null"`
	Slug      string      `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Excerpt   string      `json:"excerpt" gorm:"type:text"`
	Author    string      `json:"author" gorm:"size:255"`
	Published bool        `json:"published" gorm:"default:false;index"`
	HeroImage ImageRef    `json:"hero_image" gorm:"embedded;embeddedPrefix:hero_image_"`
	Sections  SectionList `json:"sections" gorm:"serializer:json;type:json"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (p *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// AllImages returns every reference the post owns, hero first.
func (p *BlogPost) AllImages() []ImageRef {
	refs := make([]ImageRef, 0, 1)
	if !p.HeroImage.IsZero() {
		refs = append(refs, p.HeroImage)
	}
	return append(refs, p.Sections.ImageRefs()...)
}
