package service

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "atelier/internal/errors"
	"atelier/internal/model"
	"atelier/internal/upload"
)

// MockPostRepository is a mock implementation of PostRepository.
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *model.BlogPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Save(ctx context.Context, post *model.BlogPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.BlogPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlogPost), args.Error(1)
}

func (m *MockPostRepository) FindBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlogPost), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, publishedOnly bool) ([]model.BlogPost, error) {
	args := m.Called(ctx, publishedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BlogPost), args.Error(1)
}

func sectionsPtr(l model.SectionList) *model.SectionList { return &l }

func TestPostService_Create_SlotsFilesIntoImageSections(t *testing.T) {
	mockRepo := new(MockPostRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.BlogPost")).Return(nil)

	store := new(MockStorage)
	store.On("Store", mock.Anything, mock.Anything, "fig1.png", postFolder).
		Return(model.ImageRef{URL: "https://cdn/fig1.png", PublicID: "atelier/posts/fig1"}, nil)

	svc := NewPostService(mockRepo, upload.New(store, 0), store)
	in := PostInput{
		Title: strp("Lighting a Loft"),
		Slug:  strp("lighting-a-loft"),
		Sections: sectionsPtr(model.SectionList{
			{Kind: model.SectionText, Content: "Start with the windows."},
			{Kind: model.SectionImage, Caption: "Before the rework"},
			{Kind: model.SectionText, Content: "Then layer the fixtures."},
		}),
	}

	post, err := svc.Create(context.Background(), in, nil, []*multipart.FileHeader{pngFileHeader(t, "fig1.png", 64)})

	assert.NoError(t, err)
	require.Len(t, post.Sections, 3)
	require.NotNil(t, post.Sections[1].Image)
	assert.Equal(t, "atelier/posts/fig1", post.Sections[1].Image.PublicID)
	assert.Equal(t, "Before the rework", post.Sections[1].Caption)
	assert.Nil(t, post.Sections[0].Image)
	mockRepo.AssertExpectations(t)
}

func TestPostService_Create_FileCountMismatch(t *testing.T) {
	mockRepo := new(MockPostRepository)
	store := new(MockStorage)

	svc := NewPostService(mockRepo, upload.New(store, 0), store)
	in := PostInput{
		Title: strp("Lighting a Loft"),
		Slug:  strp("lighting-a-loft"),
		Sections: sectionsPtr(model.SectionList{
			{Kind: model.SectionImage},
			{Kind: model.SectionImage},
		}),
	}

	_, err := svc.Create(context.Background(), in, nil, []*multipart.FileHeader{pngFileHeader(t, "fig1.png", 64)})

	assert.ErrorIs(t, err, apperrors.ErrUploadFailed)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPostService_Update_SectionReplaceDiscardsDroppedImages(t *testing.T) {
	keptRef := model.ImageRef{URL: "https://cdn/keep.png", PublicID: "atelier/posts/keep"}
	droppedRef := model.ImageRef{URL: "https://cdn/drop.png", PublicID: "atelier/posts/drop"}
	existing := &model.BlogPost{
		ID:    uuid.New(),
		Title: "Lighting a Loft",
		Slug:  "lighting-a-loft",
		Sections: model.SectionList{
			{Kind: model.SectionImage, Image: &keptRef},
			{Kind: model.SectionImage, Image: &droppedRef},
		},
	}

	mockRepo := new(MockPostRepository)
	mockRepo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	mockRepo.On("Save", mock.Anything, existing).Return(nil)

	store := new(MockStorage)
	store.On("Delete", mock.Anything, "atelier/posts/drop").Return(nil).Once()

	svc := NewPostService(mockRepo, upload.New(store, 0), store)
	// the kept section arrives with its reference intact; the other is gone
	in := PostInput{
		Sections: sectionsPtr(model.SectionList{
			{Kind: model.SectionImage, Image: &keptRef, Caption: "Recaptioned"},
			{Kind: model.SectionText, Content: "The second image was cut."},
		}),
	}

	updated, err := svc.Update(context.Background(), existing.ID.String(), in, nil, nil, false)

	assert.NoError(t, err)
	require.Len(t, updated.Sections, 2)
	assert.Equal(t, "atelier/posts/keep", updated.Sections[0].Image.PublicID)
	store.AssertExpectations(t)
	store.AssertNumberOfCalls(t, "Delete", 1)
}

func TestPostService_Update_SectionUploadFailureReclaimsNewHero(t *testing.T) {
	existing := &model.BlogPost{
		ID:        uuid.New(),
		Title:     "Lighting a Loft",
		Slug:      "lighting-a-loft",
		HeroImage: model.ImageRef{URL: "https://cdn/old.png", PublicID: "atelier/posts/old"},
	}

	mockRepo := new(MockPostRepository)
	mockRepo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)

	store := new(MockStorage)
	store.On("Store", mock.Anything, mock.Anything, "new-hero.png", postFolder).
		Return(model.ImageRef{URL: "https://cdn/new-hero.png", PublicID: "atelier/posts/new-hero"}, nil)
	store.On("Store", mock.Anything, mock.Anything, "fig1.png", postFolder).
		Return(model.ImageRef{}, assert.AnError)
	store.On("Delete", mock.Anything, "atelier/posts/new-hero").Return(nil).Once()

	svc := NewPostService(mockRepo, upload.New(store, 0), store)
	in := PostInput{Sections: sectionsPtr(model.SectionList{{Kind: model.SectionImage}})}
	_, err := svc.Update(context.Background(), existing.ID.String(), in,
		pngFileHeader(t, "new-hero.png", 64), []*multipart.FileHeader{pngFileHeader(t, "fig1.png", 64)}, false)

	assert.ErrorIs(t, err, apperrors.ErrUploadFailed)
	// the record is untouched and the stored-but-unreferenced hero is reclaimed
	assert.Equal(t, "atelier/posts/old", existing.HeroImage.PublicID)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestPostService_Update_ScalarsOnlyLeavesSectionsAlone(t *testing.T) {
	ref := model.ImageRef{URL: "https://cdn/fig.png", PublicID: "atelier/posts/fig"}
	existing := &model.BlogPost{
		ID:       uuid.New(),
		Title:    "Lighting a Loft",
		Slug:     "lighting-a-loft",
		Sections: model.SectionList{{Kind: model.SectionImage, Image: &ref}},
	}

	mockRepo := new(MockPostRepository)
	mockRepo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	mockRepo.On("Save", mock.Anything, existing).Return(nil)

	store := new(MockStorage)

	svc := NewPostService(mockRepo, upload.New(store, 0), store)
	updated, err := svc.Update(context.Background(), existing.ID.String(), PostInput{Published: boolp(true)}, nil, nil, false)

	assert.NoError(t, err)
	assert.True(t, updated.Published)
	require.Len(t, updated.Sections, 1)
	assert.Equal(t, "atelier/posts/fig", updated.Sections[0].Image.PublicID)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPostService_Delete_DiscardsHeroAndSectionImages(t *testing.T) {
	ref := model.ImageRef{URL: "https://cdn/fig.png", PublicID: "atelier/posts/fig"}
	existing := &model.BlogPost{
		ID:        uuid.New(),
		HeroImage: model.ImageRef{URL: "https://cdn/h.png", PublicID: "atelier/posts/h"},
		Sections:  model.SectionList{{Kind: model.SectionImage, Image: &ref}},
	}

	mockRepo := new(MockPostRepository)
	mockRepo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	mockRepo.On("Delete", mock.Anything, existing.ID).Return(nil)

	store := new(MockStorage)
	store.On("Delete", mock.Anything, "atelier/posts/h").Return(nil).Once()
	store.On("Delete", mock.Anything, "atelier/posts/fig").Return(nil).Once()

	svc := NewPostService(mockRepo, upload.New(store, 0), store)

	assert.NoError(t, svc.Delete(context.Background(), existing.ID.String()))
	mockRepo.AssertExpectations(t)
	store.AssertExpectations(t)
}
