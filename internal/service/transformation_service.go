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

const transformationFolder = "atelier/transformations"

// TransformationInput carries the scalar fields of a create/update request.
type TransformationInput struct {
	Title       *string
	Description *string
}

// TransformationService manages before/after showcases. At most one showcase
// is active at a time.
type TransformationService interface {
	Create(ctx context.Context, in TransformationInput, before, after *multipart.FileHeader) (*model.Transformation, error)
	Update(ctx context.Context, id string, in TransformationInput, before, after *multipart.FileHeader) (*model.Transformation, error)
	SetActive(ctx context.Context, id string) (*model.Transformation, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*model.Transformation, error)
	GetActive(ctx context.Context) (*model.Transformation, error)
	List(ctx context.Context) ([]model.Transformation, error)
}

type transformationService struct {
	transformations repository.TransformationRepository
	uploads         *upload.Pipeline
	store           storage.Client
}

// NewTransformationService creates a new transformation service.
func NewTransformationService(transformations repository.TransformationRepository, uploads *upload.Pipeline, store storage.Client) TransformationService {
	return &transformationService{transformations: transformations, uploads: uploads, store: store}
}

// Create requires both the before and the after image: a showcase without
// either side is meaningless.
func (s *transformationService) Create(ctx context.Context, in TransformationInput, before, after *multipart.FileHeader) (*model.Transformation, error) {
	t := &model.Transformation{}
	applyTransformationInput(t, in)
	if t.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if before == nil || after == nil {
		return nil, fmt.Errorf("%w: both before and after images are required", apperrors.ErrUploadFailed)
	}

	beforeRef, err := s.uploads.Single(ctx, before, transformationFolder)
	if err != nil {
		return nil, err
	}
	afterRef, err := s.uploads.Single(ctx, after, transformationFolder)
	if err != nil {
		// nothing references the before blob yet; reclaim it best-effort
		discardImages(s.store, beforeRef)
		return nil, err
	}

	t.BeforeImage = beforeRef
	t.AfterImage = afterRef
	if err := s.transformations.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create transformation: %w", err)
	}
	return t, nil
}

// Update replaces either side independently under the replacement protocol.
func (s *transformationService) Update(ctx context.Context, id string, in TransformationInput, before, after *multipart.FileHeader) (*model.Transformation, error) {
	tid, err := parseID(id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	t, err := s.transformations.FindByID(ctx, tid)
	if err != nil {
		return nil, err
	}

	newBefore, newAfter := model.ImageRef{}, model.ImageRef{}
	if before != nil {
		if newBefore, err = s.uploads.Single(ctx, before, transformationFolder); err != nil {
			return nil, err
		}
	}
	if after != nil {
		if newAfter, err = s.uploads.Single(ctx, after, transformationFolder); err != nil {
			// nothing references the new before blob yet; reclaim it best-effort
			discardImages(s.store, newBefore)
			return nil, err
		}
	}

	oldBefore, oldAfter := t.BeforeImage, t.AfterImage
	applyTransformationInput(t, in)
	if before != nil {
		t.BeforeImage = newBefore
	}
	if after != nil {
		t.AfterImage = newAfter
	}

	if err := s.transformations.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("save transformation: %w", err)
	}

	var stale []model.ImageRef
	if before != nil && oldBefore.PublicID != "" && oldBefore.PublicID != t.BeforeImage.PublicID {
		stale = append(stale, oldBefore)
	}
	if after != nil && oldAfter.PublicID != "" && oldAfter.PublicID != t.AfterImage.PublicID {
		stale = append(stale, oldAfter)
	}
	discardImages(s.store, stale...)
	return t, nil
}

// SetActive flips the exclusive-active flag to the target via the
// repository's single-transaction swap, so no committed read ever sees two
// active showcases.
func (s *transformationService) SetActive(ctx context.Context, id string) (*model.Transformation, error) {
	tid, err := parseID(id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	if err := s.transformations.SetActive(ctx, tid); err != nil {
		return nil, err
	}
	return s.transformations.FindByID(ctx, tid)
}

func (s *transformationService) Delete(ctx context.Context, id string) error {
	tid, err := parseID(id)
	if err != nil {
		return apperrors.ErrNotFound
	}
	t, err := s.transformations.FindByID(ctx, tid)
	if err != nil {
		return err
	}
	if err := s.transformations.Delete(ctx, tid); err != nil {
		return fmt.Errorf("delete transformation: %w", err)
	}
	discardImages(s.store, t.AllImages()...)
	return nil
}

func (s *transformationService) Get(ctx context.Context, id string) (*model.Transformation, error) {
	tid, err := parseID(id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	return s.transformations.FindByID(ctx, tid)
}

func (s *transformationService) GetActive(ctx context.Context) (*model.Transformation, error) {
	return s.transformations.FindActive(ctx)
}

func (s *transformationService) List(ctx context.Context) ([]model.Transformation, error) {
	return s.transformations.List(ctx)
}

func applyTransformationInput(t *model.Transformation, in TransformationInput) {
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
}
