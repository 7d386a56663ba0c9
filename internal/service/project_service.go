package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/shopspring/decimal"

	apperrors "atelier/internal/errors"
	"atelier/internal/model"
	"atelier/internal/repository"
	"atelier/internal/storage"
	"atelier/internal/upload"
)

const projectFolder = "atelier/projects"

// ProjectInput carries the scalar fields of a create/update request. Nil
// pointers on update mean "leave unchanged".
type ProjectInput struct {
	Title       *string
	Slug        *string
	Description *string
	Category    *string
	Location    *string
	Budget      *decimal.Decimal
	CompletedAt *time.Time
	Featured    *bool
}

// ProjectService manages portfolio projects and their image lifecycle.
type ProjectService interface {
	Create(ctx context.Context, in ProjectInput, hero *multipart.FileHeader, gallery []*multipart.FileHeader) (*model.Project, error)
	Update(ctx context.Context, id string, in ProjectInput, hero *multipart.FileHeader, gallery []*multipart.FileHeader, removeHero bool) (*model.Project, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*model.Project, error)
	GetBySlug(ctx context.Context, slug string) (*model.Project, error)
	List(ctx context.Context) ([]model.Project, error)
	ListFeatured(ctx context.Context) ([]model.Project, error)
}

type projectService struct {
	projects repository.ProjectRepository
	uploads  *upload.Pipeline
	store    storage.Client
}

// NewProjectService creates a new project service.
func NewProjectService(projects repository.ProjectRepository, uploads *upload.Pipeline, store storage.Client) ProjectService {
	return &projectService{projects: projects, uploads: uploads, store: store}
}

func (s *projectService) Create(ctx context.Context, in ProjectInput, hero *multipart.FileHeader, gallery []*multipart.FileHeader) (*model.Project, error) {
	project := &model.Project{}
	applyProjectInput(project, in)
	if project.Title == "" || project.Slug == "" {
		return nil, fmt.Errorf("title and slug are required")
	}

	heroRef, err := s.uploads.Single(ctx, hero, projectFolder)
	if err != nil {
		return nil, err
	}
	galleryRefs, err := s.uploads.Batch(ctx, gallery, projectFolder)
	if err != nil {
		// nothing references the hero blob yet; reclaim it best-effort
		discardImages(s.store, heroRef)
		return nil, err
	}

	project.HeroImage = heroRef
	project.ImageURLs = galleryRefs
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

// Update applies scalar changes and the image-replacement protocol: new
// blobs are stored first, the record is persisted with the swapped
// references, and only then are superseded blobs discarded best-effort. An
// upload failure aborts before any record mutation.
func (s *projectService) Update(ctx context.Context, id string, in ProjectInput, hero *multipart.FileHeader, gallery []*multipart.FileHeader, removeHero bool) (*model.Project, error) {
	pid, err := parseID(id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	project, err := s.projects.FindByID(ctx, pid)
	if err != nil {
		return nil, err
	}

	newHero := model.ImageRef{}
	if hero != nil {
		if newHero, err = s.uploads.Single(ctx, hero, projectFolder); err != nil {
			return nil, err
		}
	}
	var newGallery model.ImageList
	if len(gallery) > 0 {
		if newGallery, err = s.uploads.Batch(ctx, gallery, projectFolder); err != nil {
			// nothing references the new hero blob yet; reclaim it best-effort
			discardImages(s.store, newHero)
			return nil, err
		}
	}

	oldHero := project.HeroImage
	oldGallery := project.ImageURLs

	applyProjectInput(project, in)
	switch {
	case hero != nil:
		project.HeroImage = newHero
	case removeHero:
		project.HeroImage = model.ImageRef{}
	}
	if len(gallery) > 0 {
		project.ImageURLs = newGallery
	}

	if err := s.projects.Save(ctx, project); err != nil {
		return nil, fmt.Errorf("save project: %w", err)
	}

	var stale []model.ImageRef
	if oldHero.PublicID != "" && oldHero.PublicID != project.HeroImage.PublicID {
		stale = append(stale, oldHero)
	}
	if len(gallery) > 0 {
		stale = append(stale, droppedImages(oldGallery, newGallery)...)
	}
	discardImages(s.store, stale...)
	return project, nil
}

// Delete removes the record, then best-effort deletes every owned blob. The
// record is the authoritative existence check; blob deletion failures never
// resurrect it.
func (s *projectService) Delete(ctx context.Context, id string) error {
	pid, err := parseID(id)
	if err != nil {
		return apperrors.ErrNotFound
	}
	project, err := s.projects.FindByID(ctx, pid)
	if err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, pid); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	discardImages(s.store, project.AllImages()...)
	return nil
}

func (s *projectService) Get(ctx context.Context, id string) (*model.Project, error) {
	pid, err := parseID(id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	return s.projects.FindByID(ctx, pid)
}

func (s *projectService) GetBySlug(ctx context.Context, slug string) (*model.Project, error) {
	return s.projects.FindBySlug(ctx, slug)
}

func (s *projectService) List(ctx context.Context) ([]model.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) ListFeatured(ctx context.Context) ([]model.Project, error) {
	return s.projects.ListFeatured(ctx)
}

func applyProjectInput(p *model.Project, in ProjectInput) {
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Slug != nil {
		p.Slug = *in.Slug
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Location != nil {
		p.Location = *in.Location
	}
	if in.Budget != nil {
		p.Budget = *in.Budget
	}
	if in.CompletedAt != nil {
		p.CompletedAt = in.CompletedAt
	}
	if in.Featured != nil {
		p.Featured = *in.Featured
	}
}
