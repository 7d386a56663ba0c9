package service

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"

	apperrors "atelier/internal/errors"
	"atelier/internal/model"
	"atelier/internal/repository"
	"atelier/internal/storage"
	"atelier/internal/upload"
)

const testimonialFolder = "atelier/testimonials"

// TestimonialInput carries the scalar fields of a create/update request.
type TestimonialInput struct {
	ClientName *string
	Quote      *string
	Rating     *int
	ProjectID  *uuid.UUID
	Approved   *bool
}

// TestimonialService manages client testimonials.
type TestimonialService interface {
	Create(ctx context.Context, in TestimonialInput, photo *multipart.FileHeader) (*model.Testimonial, error)
	Update(ctx context.Context, id string, in TestimonialInput, photo *multipart.FileHeader, removePhoto bool) (*model.Testimonial, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*model.Testimonial, error)
	List(ctx context.Context, approvedOnly bool) ([]model.Testimonial, error)
}

type testimonialService struct {
	testimonials repository.TestimonialRepository
	uploads      *upload.Pipeline
	store        storage.Client
}

// NewTestimonialService creates a new testimonial service.
func NewTestimonialService(testimonials repository.TestimonialRepository, uploads *upload.Pipeline, store storage.Client) TestimonialService {
	return &testimonialService{testimonials: testimonials, uploads: uploads, store: store}
}

func (s *testimonialService) Create(ctx context.Context, in TestimonialInput, photo *multipart.FileHeader) (*model.Testimonial, error) {
	t := &model.Testimonial{Rating: 5}
	applyTestimonialInput(t, in)
	if t.ClientName == "" || t.Quote == "" {
		return nil, fmt.Errorf("client name and quote are required")
	}

	ref, err := s.uploads.Single(ctx, photo, testimonialFolder)
	if err != nil {
		return nil, err
	}
	t.ClientPhoto = ref

	if err := s.testimonials.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create testimonial: %w", err)
	}
	return t, nil
}

func (s *testimonialService) Update(ctx context.Context, id string, in TestimonialInput, photo *multipart.FileHeader, removePhoto bool) (*model.Testimonial, error) {
	tid, err := parseID(id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	t, err := s.testimonials.FindByID(ctx, tid)
	if err != nil {
		return nil, err
	}

	newPhoto := model.ImageRef{}
	if photo != nil {
		if newPhoto, err = s.uploads.Single(ctx, photo, testimonialFolder); err != nil {
			return nil, err
		}
	}

	oldPhoto := t.ClientPhoto
	applyTestimonialInput(t, in)
	switch {
	case photo != nil:
		t.ClientPhoto = newPhoto
	case removePhoto:
		t.ClientPhoto = model.ImageRef{}
	}

	if err := s.testimonials.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("save testimonial: %w", err)
	}

	if oldPhoto.PublicID != "" && oldPhoto.PublicID != t.ClientPhoto.PublicID {
		discardImages(s.store, oldPhoto)
	}
	return t, nil
}

func (s *testimonialService) Delete(ctx context.Context, id string) error {
	tid, err := parseID(id)
	if err != nil {
		return apperrors.ErrNotFound
	}
	t, err := s.testimonials.FindByID(ctx, tid)
	if err != nil {
		return err
	}
	if err := s.testimonials.Delete(ctx, tid); err != nil {
		return fmt.Errorf("delete testimonial: %w", err)
	}
	if !t.ClientPhoto.IsZero() {
		discardImages(s.store, t.ClientPhoto)
	}
	return nil
}

func (s *testimonialService) Get(ctx context.Context, id string) (*model.Testimonial, error) {
	tid, err := parseID(id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	return s.testimonials.FindByID(ctx, tid)
}

func (s *testimonialService) List(ctx context.Context, approvedOnly bool) ([]model.Testimonial, error) {
	return s.testimonials.List(ctx, approvedOnly)
}

func applyTestimonialInput(t *model.Testimonial, in TestimonialInput) {
	if in.ClientName != nil {
		t.ClientName = *in.ClientName
	}
	if in.Quote != nil {
		t.Quote = *in.Quote
	}
	if in.Rating != nil {
		t.Rating = *in.Rating
	}
	if in.ProjectID != nil {
		t.ProjectID = in.ProjectID
	}
	if in.Approved != nil {
		t.Approved = *in.Approved
	}
}
