package service

import (
	"context"
	"fmt"
	"mime/multipart"

	apperrors "atelier/internal/errors"
	"atelier/internal/model"
	"atelier/internal/repository"
	"atelier/internal/storage"
	"atelier/internal/upload"
)

const galleryFolder = "atelier/gallery"

// GalleryInput carries the scalar fields of a create/update request.
type GalleryInput struct {
	Caption   *string
	Category  *string
	SortOrder *int
}

// GalleryService manages the inspiration gallery. A gallery item's image is
// required: the item exists to show it.
type GalleryService interface {
	Create(ctx context.Context, in GalleryInput, image *multipart.FileHeader) (*model.GalleryImage, error)
	Update(ctx context.Context, id string, in GalleryInput, image *multipart.FileHeader) (*model.GalleryImage, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*model.GalleryImage, error)
	List(ctx context.Context, category string) ([]model.GalleryImage, error)
}

type galleryService struct {
	gallery repository.GalleryRepository
	uploads *upload.Pipeline
	store   storage.Client
}

// NewGalleryService creates a new gallery service.
func NewGalleryService(gallery repository.GalleryRepository, uploads *upload.Pipeline, store storage.Client) GalleryService {
	return &galleryService{gallery: gallery, uploads: uploads, store: store}
}

func (s *galleryService) Create(ctx context.Context, in GalleryInput, image *multipart.FileHeader) (*model.GalleryImage, error) {
	if image == nil {
		return nil, fmt.Errorf("%w: gallery item requires an image", apperrors.ErrUploadFailed)
	}

	ref, err := s.uploads.Single(ctx, image, galleryFolder)
	if err != nil {
		return nil, err
	}

	g := &model.GalleryImage{Image: ref}
	applyGalleryInput(g, in)
	if err := s.gallery.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("create gallery image: %w", err)
	}
	return g, nil
}

func (s *galleryService) Update(ctx context.Context, id string, in GalleryInput, image *multipart.FileHeader) (*model.GalleryImage, error) {
	gid, err := parseID(id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	g, err := s.gallery.FindByID(ctx, gid)
	if err != nil {
		return nil, err
	}

	newImage := model.ImageRef{}
	if image != nil {
		if newImage, err = s.uploads.Single(ctx, image, galleryFolder); err != nil {
			return nil, err
		}
	}

	oldImage := g.Image
	applyGalleryInput(g, in)
	if image != nil {
		g.Image = newImage
	}

	if err := s.gallery.Save(ctx, g); err != nil {
		return nil, fmt.Errorf("save gallery image: %w", err)
	}

	if image != nil && oldImage.PublicID != "" && oldImage.PublicID != g.Image.PublicID {
		discardImages(s.store, oldImage)
	}
	return g, nil
}

func (s *galleryService) Delete(ctx context.Context, id string) error {
	gid, err := parseID(id)
	if err != nil {
		return apperrors.ErrNotFound
	}
	g, err := s.gallery.FindByID(ctx, gid)
	if err != nil {
		return err
	}
	if err := s.gallery.Delete(ctx, gid); err != nil {
		return fmt.Errorf("delete gallery image: %w", err)
	}
	discardImages(s.store, g.Image)
	return nil
}

func (s *galleryService) Get(ctx context.Context, id string) (*model.GalleryImage, error) {
	gid, err := parseID(id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	return s.gallery.FindByID(ctx, gid)
}

func (s *galleryService) List(ctx context.Context, category string) ([]model.GalleryImage, error) {
	return s.gallery.List(ctx, category)
}

func applyGalleryInput(g *model.GalleryImage, in GalleryInput) {
	if in.Caption != nil {
		g.Caption = *in.Caption
	}
	if in.Category != nil {
		g.Category = *in.Category
	}
	if in.SortOrder != nil {
		g.SortOrder = *in.SortOrder
	}
}
