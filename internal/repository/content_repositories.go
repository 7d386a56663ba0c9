package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"atelier/internal/model"
)

// TestimonialRepository defines persistence operations for testimonials.
type TestimonialRepository interface {
	Create(ctx context.Context, t *model.Testimonial) error
	Save(ctx context.Context, t *model.Testimonial) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Testimonial, error)
	List(ctx context.Context, approvedOnly bool) ([]model.Testimonial, error)
}

type testimonialRepository struct {
	db *gorm.DB
}

// NewTestimonialRepository builds a GORM-backed repository.
func NewTestimonialRepository(db *gorm.DB) TestimonialRepository {
	return &testimonialRepository{db: db}
}

func (r *testimonialRepository) Create(ctx context.Context, t *model.Testimonial) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *testimonialRepository) Save(ctx context.Context, t *model.Testimonial) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *testimonialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Testimonial{}, "id = ?", id).Error
}

func (r *testimonialRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Testimonial, error) {
	var t model.Testimonial
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &t, nil
}

func (r *testimonialRepository) List(ctx context.Context, approvedOnly bool) ([]model.Testimonial, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if approvedOnly {
		q = q.Where("approved = ?", true)
	}
	var ts []model.Testimonial
	if err := q.Find(&ts).Error; err != nil {
		return nil, err
	}
	return ts, nil
}

// GalleryRepository defines persistence operations for gallery images.
type GalleryRepository interface {
	Create(ctx context.Context, g *model.GalleryImage) error
	Save(ctx context.Context, g *model.GalleryImage) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.GalleryImage, error)
	List(ctx context.Context, category string) ([]model.GalleryImage, error)
}

type galleryRepository struct {
	db *gorm.DB
}

// NewGalleryRepository builds a GORM-backed repository.
func NewGalleryRepository(db *gorm.DB) GalleryRepository {
	return &galleryRepository{db: db}
}

func (r *galleryRepository) Create(ctx context.Context, g *model.GalleryImage) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *galleryRepository) Save(ctx context.Context, g *model.GalleryImage) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *galleryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.GalleryImage{}, "id = ?", id).Error
}

func (r *galleryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.GalleryImage, error) {
	var g model.GalleryImage
	if err := r.db.WithContext(ctx).First(&g, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &g, nil
}

func (r *galleryRepository) List(ctx context.Context, category string) ([]model.GalleryImage, error) {
	q := r.db.WithContext(ctx).Order("sort_order ASC, created_at DESC")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var gs []model.GalleryImage
	if err := q.Find(&gs).Error; err != nil {
		return nil, err
	}
	return gs, nil
}

// OfferingRepository defines persistence operations for service offerings.
type OfferingRepository interface {
	Create(ctx context.Context, o *model.ServiceOffering) error
	Save(ctx context.Context, o *model.ServiceOffering) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ServiceOffering, error)
	List(ctx context.Context) ([]model.ServiceOffering, error)
}

type offeringRepository struct {
	db *gorm.DB
}

// NewOfferingRepository builds a GORM-backed repository.
func NewOfferingRepository(db *gorm.DB) OfferingRepository {
	return &offeringRepository{db: db}
}

func (r *offeringRepository) Create(ctx context.Context, o *model.ServiceOffering) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *offeringRepository) Save(ctx context.Context, o *model.ServiceOffering) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *offeringRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ServiceOffering{}, "id = ?", id).Error
}

func (r *offeringRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ServiceOffering, error) {
	var o model.ServiceOffering
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &o, nil
}

func (r *offeringRepository) List(ctx context.Context) ([]model.ServiceOffering, error) {
	var os []model.ServiceOffering
	if err := r.db.WithContext(ctx).Order("sort_order ASC, created_at ASC").Find(&os).Error; err != nil {
		return nil, err
	}
	return os, nil
}

// InquiryRepository defines persistence operations for visitor inquiries.
type InquiryRepository interface {
	Create(ctx context.Context, i *model.Inquiry) error
	Save(ctx context.Context, i *model.Inquiry) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Inquiry, error)
	List(ctx context.Context) ([]model.Inquiry, error)
}

type inquiryRepository struct {
	db *gorm.DB
}

// NewInquiryRepository builds a GORM-backed repository.
func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

func (r *inquiryRepository) Create(ctx context.Context, i *model.Inquiry) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *inquiryRepository) Save(ctx context.Context, i *model.Inquiry) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *inquiryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Inquiry{}, "id = ?", id).Error
}

func (r *inquiryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Inquiry, error) {
	var i model.Inquiry
	if err := r.db.WithContext(ctx).First(&i, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &i, nil
}

func (r *inquiryRepository) List(ctx context.Context) ([]model.Inquiry, error) {
	var is []model.Inquiry
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&is).Error; err != nil {
		return nil, err
	}
	return is, nil
}
