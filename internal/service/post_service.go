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

const postFolder = "atelier/posts"

// PostInput carries the scalar fields of a create/update request. Sections,
// when non-nil, replace the whole section list; image sections with a nil
// Image are filled in order from the uploaded sectionImages files.
type PostInput struct {
	Title     *string
	Slug      *string
	Excerpt   *string
	Author    *string
	Published *bool
	Sections  *model.SectionList
}

// PostService manages blog posts, including per-section image ownership.
type PostService interface {
	Create(ctx context.Context, in PostInput, hero *multipart.FileHeader, sectionImages []*multipart.FileHeader) (*model.BlogPost, error)
	Update(ctx context.Context, id string, in PostInput, hero *multipart.FileHeader, sectionImages []*multipart.FileHeader, removeHero bool) (*model.BlogPost, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*model.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
	List(ctx context.Context, publishedOnly bool) ([]model.BlogPost, error)
}

type postService struct {
	posts   repository.PostRepository
	uploads *upload.Pipeline
	store   storage.Client
}

// NewPostService creates a new blog post service.
func NewPostService(posts repository.PostRepository, uploads *upload.Pipeline, store storage.Client) PostService {
	return &postService{posts: posts, uploads: uploads, store: store}
}

func (s *postService) Create(ctx context.Context, in PostInput, hero *multipart.FileHeader, sectionImages []*multipart.FileHeader) (*model.BlogPost, error) {
	post := &model.BlogPost{}
	applyPostScalars(post, in)
	if post.Title == "" || post.Slug == "" {
		return nil, fmt.Errorf("title and slug are required")
	}

	heroRef, err := s.uploads.Single(ctx, hero, postFolder)
	if err != nil {
		return nil, err
	}

	sections := model.SectionList{}
	if in.Sections != nil {
		sections = *in.Sections
	}
	sections, err = s.fillSectionImages(ctx, sections, sectionImages)
	if err != nil {
		// nothing references the hero blob yet; reclaim it best-effort
		discardImages(s.store, heroRef)
		return nil, err
	}

	post.HeroImage = heroRef
	post.Sections = sections
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// Update follows the replacement protocol for the hero image and for every
// image section dropped by a section-list replacement: upload first, persist
// the swapped record, then best-effort delete what fell out of use.
func (s *postService) Update(ctx context.Context, id string, in PostInput, hero *multipart.FileHeader, sectionImages []*multipart.FileHeader, removeHero bool) (*model.BlogPost, error) {
	pid, err := parseID(id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	post, err := s.posts.FindByID(ctx, pid)
	if err != nil {
		return nil, err
	}

	newHero := model.ImageRef{}
	if hero != nil {
		if newHero, err = s.uploads.Single(ctx, hero, postFolder); err != nil {
			return nil, err
		}
	}
	var newSections model.SectionList
	if in.Sections != nil {
		newSections, err = s.fillSectionImages(ctx, *in.Sections, sectionImages)
		if err != nil {
			// nothing references the new hero blob yet; reclaim it best-effort
			discardImages(s.store, newHero)
			return nil, err
		}
	}

	oldHero := post.HeroImage
	oldSectionRefs := post.Sections.ImageRefs()

	applyPostScalars(post, in)
	switch {
	case hero != nil:
		post.HeroImage = newHero
	case removeHero:
		post.HeroImage = model.ImageRef{}
	}
	if in.Sections != nil {
		post.Sections = newSections
	}

	if err := s.posts.Save(ctx, post); err != nil {
		return nil, fmt.Errorf("save post: %w", err)
	}

	var stale []model.ImageRef
	if oldHero.PublicID != "" && oldHero.PublicID != post.HeroImage.PublicID {
		stale = append(stale, oldHero)
	}
	if in.Sections != nil {
		stale = append(stale, droppedImages(oldSectionRefs, post.Sections.ImageRefs())...)
	}
	discardImages(s.store, stale...)
	return post, nil
}

func (s *postService) Delete(ctx context.Context, id string) error {
	pid, err := parseID(id)
	if err != nil {
		return apperrors.ErrNotFound
	}
	post, err := s.posts.FindByID(ctx, pid)
	if err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, pid); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	discardImages(s.store, post.AllImages()...)
	return nil
}

func (s *postService) Get(ctx context.Context, id string) (*model.BlogPost, error) {
	pid, err := parseID(id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	return s.posts.FindByID(ctx, pid)
}

func (s *postService) GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	return s.posts.FindBySlug(ctx, slug)
}

func (s *postService) List(ctx context.Context, publishedOnly bool) ([]model.BlogPost, error) {
	return s.posts.List(ctx, publishedOnly)
}

// fillSectionImages uploads the attached files and slots them, in order,
// into image sections that arrived without a reference. Image sections that
// carry a reference keep it (an existing image being reordered or recaptioned).
func (s *postService) fillSectionImages(ctx context.Context, sections model.SectionList, files []*multipart.FileHeader) (model.SectionList, error) {
	var pending int
	for _, sec := range sections {
		if sec.Kind == model.SectionImage && (sec.Image == nil || sec.Image.IsZero()) {
			pending++
		}
	}
	if pending != len(files) {
		return nil, fmt.Errorf("%w: %d image sections await a file, %d files attached", apperrors.ErrUploadFailed, pending, len(files))
	}
	if pending == 0 {
		return sections, nil
	}

	refs, err := s.uploads.Batch(ctx, files, postFolder)
	if err != nil {
		return nil, err
	}

	out := make(model.SectionList, len(sections))
	copy(out, sections)
	next := 0
	for i := range out {
		if out[i].Kind == model.SectionImage && (out[i].Image == nil || out[i].Image.IsZero()) {
			ref := refs[next]
			out[i].Image = &ref
			next++
		}
	}
	return out, nil
}

func applyPostScalars(p *model.BlogPost, in PostInput) {
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Slug != nil {
		p.Slug = *in.Slug
	}
	if in.Excerpt != nil {
		p.Excerpt = *in.Excerpt
	}
	if in.Author != nil {
		p.Author = *in.Author
	}
	if in.Published != nil {
		p.Published = *in.Published
	}
}
