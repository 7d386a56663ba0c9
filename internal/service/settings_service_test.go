package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"atelier/internal/model"
	"atelier/internal/upload"
)

// MockSettingsRepository is a mock implementation of SettingsRepository.
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Site(ctx context.Context) (*model.SiteSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SiteSettings), args.Error(1)
}

func (m *MockSettingsRepository) SaveSite(ctx context.Context, s *model.SiteSettings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSettingsRepository) About(ctx context.Context) (*model.AboutContent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AboutContent), args.Error(1)
}

func (m *MockSettingsRepository) SaveAbout(ctx context.Context, a *model.AboutContent) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockSettingsRepository) Contact(ctx context.Context) (*model.ContactSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContactSettings), args.Error(1)
}

func (m *MockSettingsRepository) SaveContact(ctx context.Context, c *model.ContactSettings) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// settings tests run with a nil cache client, which behaves as an always-miss
// cache, so the repository path is exercised directly.

func TestSettingsService_UpdateSite_PartialInput(t *testing.T) {
	existing := &model.SiteSettings{
		ID:       model.SingletonID,
		SiteName: "Atelier Interior Design",
		Tagline:  "Considered spaces",
	}

	mockRepo := new(MockSettingsRepository)
	mockRepo.On("Site", mock.Anything).Return(existing, nil)
	mockRepo.On("SaveSite", mock.Anything, existing).Return(nil)

	store := new(MockStorage)
	svc := NewSettingsService(mockRepo, nil, upload.New(store, 0), store)

	updated, err := svc.UpdateSite(context.Background(), SiteSettingsInput{Tagline: strp("Rooms that breathe")})

	assert.NoError(t, err)
	assert.Equal(t, "Atelier Interior Design", updated.SiteName)
	assert.Equal(t, "Rooms that breathe", updated.Tagline)
	mockRepo.AssertExpectations(t)
}

func TestSettingsService_UpdateAbout_ReplacesHero(t *testing.T) {
	existing := &model.AboutContent{
		ID:        model.SingletonID,
		Heading:   "About the studio",
		HeroImage: model.ImageRef{URL: "https://cdn/old.png", PublicID: "atelier/about/old"},
	}

	mockRepo := new(MockSettingsRepository)
	mockRepo.On("About", mock.Anything).Return(existing, nil)
	mockRepo.On("SaveAbout", mock.Anything, existing).Return(nil)

	store := new(MockStorage)
	store.On("Store", mock.Anything, mock.Anything, "new.png", aboutFolder).
		Return(model.ImageRef{URL: "https://cdn/new.png", PublicID: "atelier/about/new"}, nil)
	store.On("Delete", mock.Anything, "atelier/about/old").Return(nil).Once()

	svc := NewSettingsService(mockRepo, nil, upload.New(store, 0), store)
	updated, err := svc.UpdateAbout(context.Background(), AboutInput{}, pngFileHeader(t, "new.png", 128), false)

	assert.NoError(t, err)
	assert.Equal(t, "atelier/about/new", updated.HeroImage.PublicID)
	store.AssertExpectations(t)
	store.AssertNumberOfCalls(t, "Delete", 1)
}

func TestSettingsService_UpdateAbout_UploadFailureAbortsSave(t *testing.T) {
	existing := &model.AboutContent{
		ID:        model.SingletonID,
		HeroImage: model.ImageRef{URL: "https://cdn/old.png", PublicID: "atelier/about/old"},
	}

	mockRepo := new(MockSettingsRepository)
	mockRepo.On("About", mock.Anything).Return(existing, nil)

	store := new(MockStorage)
	store.On("Store", mock.Anything, mock.Anything, "new.png", aboutFolder).
		Return(model.ImageRef{}, assert.AnError)

	svc := NewSettingsService(mockRepo, nil, upload.New(store, 0), store)
	_, err := svc.UpdateAbout(context.Background(), AboutInput{Heading: strp("Changed")}, pngFileHeader(t, "new.png", 128), false)

	assert.Error(t, err)
	assert.Equal(t, "atelier/about/old", existing.HeroImage.PublicID)
	mockRepo.AssertNotCalled(t, "SaveAbout", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestSettingsService_UpdateContact(t *testing.T) {
	existing := &model.ContactSettings{ID: model.SingletonID, Email: "old@x.com"}

	mockRepo := new(MockSettingsRepository)
	mockRepo.On("Contact", mock.Anything).Return(existing, nil)
	mockRepo.On("SaveContact", mock.Anything, existing).Return(nil)

	store := new(MockStorage)
	svc := NewSettingsService(mockRepo, nil, upload.New(store, 0), store)

	updated, err := svc.UpdateContact(context.Background(), ContactInput{Email: strp("studio@x.com")})

	assert.NoError(t, err)
	assert.Equal(t, "studio@x.com", updated.Email)
	mockRepo.AssertExpectations(t)
}
