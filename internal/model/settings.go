package model

import "time"

// The settings records are singletons keyed by a fixed well-known ID and
// lazily created with defaults on first read. No process-wide mutable state.
const SingletonID uint = 1

// SiteSettings holds sitewide presentation fields.
type SiteSettings struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	SiteName  string    `json:"site_name" gorm:"size:255"`
	Tagline   string    `json:"tagline" gorm:"size:512"`
	Facebook  string    `json:"facebook" gorm:"size:255"`
	Instagram string    `json:"instagram" gorm:"size:255"`
	Pinterest string    `json:"pinterest" gorm:"size:255"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AboutContent holds the about-page copy and its hero image.
type AboutContent struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	Heading   string    `json:"heading" gorm:"size:255"`
	Body      string    `json:"body" gorm:"type:text"`
	TeamBlurb string    `json:"team_blurb" gorm:"type:text"`
	HeroImage ImageRef  `json:"hero_image" gorm:"embedded;embeddedPrefix:hero_image_"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContactSettings holds the contact-page details.
type ContactSettings struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"size:255"`
	Phone     string    `json:"phone" gorm:"size:50"`
	Address   string    `json:"address" gorm:"size:512"`
	MapsEmbed string    `json:"maps_embed" gorm:"type:text"`
	Hours     string    `json:"hours" gorm:"size:255"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}
