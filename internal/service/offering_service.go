package service

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/shopspring/decimal"

	apperrors "atelier/internal/errors"
	"atelier/internal/model"
	"atelier/internal/repository"
	"atelier/internal/storage"
	"atelier/internal/upload"
)

const offeringFolder = "atelier/services"

// OfferingInput carries the scalar fields of a create/update request.
type OfferingInput struct {
	Name      *string
	Summary   *string
	Body      *string
	PriceFrom *decimal.Decimal
	SortOrder *int
}

// OfferingService manages the studio's advertised services.
type OfferingService interface {
	Create(ctx context.Context, in OfferingInput, image *multipart.FileHeader) (*model.ServiceOffering, error)
	Update(ctx context.Context, id string, in OfferingInput, image *multipart.FileHeader, removeImage bool) (*model.ServiceOffering, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*model.ServiceOffering, error)
	List(ctx context.Context) ([]model.ServiceOffering, error)
}

type offeringService struct {
	offerings repository.OfferingRepository
	uploads   *upload.Pipeline
	store     storage.Client
}

// NewOfferingService creates a new offering service.
func NewOfferingService(offerings repository.OfferingRepository, uploads *upload.Pipeline, store storage.Client) OfferingService {
	return &offeringService{offerings: offerings, uploads: uploads, store: store}
}

func (s *offeringService) Create(ctx context.Context, in OfferingInput, image *multipart.FileHeader) (*model.ServiceOffering, error) {
	o := &model.ServiceOffering{}
	applyOfferingInput(o, in)
	if o.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	ref, err := s.uploads.Single(ctx, image, offeringFolder)
	if err != nil {
		return nil, err
	}
	o.Image = ref

	if err := s.offerings.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create offering: %w", err)
	}
	return o, nil
}

func (s *offeringService) Update(ctx context.Context, id string, in OfferingInput, image *multipart.FileHeader, removeImage bool) (*model.ServiceOffering, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	o, err := s.offerings.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	newImage := model.ImageRef{}
	if image != nil {
		if newImage, err = s.uploads.Single(ctx, image, offeringFolder); err != nil {
			return nil, err
		}
	}

	oldImage := o.Image
	applyOfferingInput(o, in)
	switch {
	case image != nil:
		o.Image = newImage
	case removeImage:
		o.Image = model.ImageRef{}
	}

	if err := s.offerings.Save(ctx, o); err != nil {
		return nil, fmt.Errorf("save offering: %w", err)
	}

	if oldImage.PublicID != "" && oldImage.PublicID != o.Image.PublicID {
		discardImages(s.store, oldImage)
	}
	return o, nil
}

func (s *offeringService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return apperrors.ErrNotFound
	}
	o, err := s.offerings.FindByID(ctx, oid)
	if err != nil {
		return err
	}
	if err := s.offerings.Delete(ctx, oid); err != nil {
		return fmt.Errorf("delete offering: %w", err)
	}
	if !o.Image.IsZero() {
		discardImages(s.store, o.Image)
	}
	return nil
}

func (s *offeringService) Get(ctx context.Context, id string) (*model.ServiceOffering, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	return s.offerings.FindByID(ctx, oid)
}

func (s *offeringService) List(ctx context.Context) ([]model.ServiceOffering, error) {
	return s.offerings.List(ctx)
}

func applyOfferingInput(o *model.ServiceOffering, in OfferingInput) {
	if in.Name != nil {
		o.Name = *in.Name
	}
	if in.Summary != nil {
		o.Summary = *in.Summary
	}
	if in.Body != nil {
		o.Body = *in.Body
	}
	if in.PriceFrom != nil {
		o.PriceFrom = *in.PriceFrom
	}
	if in.SortOrder != nil {
		o.SortOrder = *in.SortOrder
	}
}
