package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "atelier/internal/errors"
	"atelier/internal/model"
	"atelier/internal/upload"
)

// fakeTransformationRepository is an in-memory TransformationRepository whose
// SetActive mirrors the transactional clear-then-set swap.
type fakeTransformationRepository struct {
	mu    sync.Mutex
	items map[uuid.UUID]*model.Transformation
}

func newFakeTransformationRepository() *fakeTransformationRepository {
	return &fakeTransformationRepository{items: make(map[uuid.UUID]*model.Transformation)}
}

func (f *fakeTransformationRepository) Create(_ context.Context, t *model.Transformation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	cp := *t
	f.items[t.ID] = &cp
	return nil
}

func (f *fakeTransformationRepository) Save(_ context.Context, t *model.Transformation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *t
	f.items[t.ID] = &cp
	return nil
}

func (f *fakeTransformationRepository) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeTransformationRepository) FindByID(_ context.Context, id uuid.UUID) (*model.Transformation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTransformationRepository) FindActive(_ context.Context) (*model.Transformation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.items {
		if t.Active {
			cp := *t
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeTransformationRepository) List(_ context.Context) ([]model.Transformation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Transformation, 0, len(f.items))
	for _, t := range f.items {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTransformationRepository) SetActive(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	target, ok := f.items[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	for _, t := range f.items {
		t.Active = false
	}
	target.Active = true
	return nil
}

func (f *fakeTransformationRepository) activeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.items {
		if t.Active {
			n++
		}
	}
	return n
}

func TestTransformationService_SetActive_IsExclusive(t *testing.T) {
	repo := newFakeTransformationRepository()
	first := &model.Transformation{Title: "Attic Studio"}
	second := &model.Transformation{Title: "Garden Room"}
	require.NoError(t, repo.Create(context.Background(), first))
	require.NoError(t, repo.Create(context.Background(), second))

	store := new(MockStorage)
	svc := NewTransformationService(repo, upload.New(store, 0), store)

	activated, err := svc.SetActive(context.Background(), first.ID.String())
	assert.NoError(t, err)
	assert.True(t, activated.Active)
	assert.Equal(t, 1, repo.activeCount())

	activated, err = svc.SetActive(context.Background(), second.ID.String())
	assert.NoError(t, err)
	assert.True(t, activated.Active)
	assert.Equal(t, 1, repo.activeCount())

	demoted, err := svc.Get(context.Background(), first.ID.String())
	assert.NoError(t, err)
	assert.False(t, demoted.Active)

	active, err := svc.GetActive(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)
}

func TestTransformationService_SetActive_UnknownID(t *testing.T) {
	repo := newFakeTransformationRepository()
	existing := &model.Transformation{Title: "Attic Studio", Active: true}
	require.NoError(t, repo.Create(context.Background(), existing))
	require.NoError(t, repo.SetActive(context.Background(), existing.ID))

	store := new(MockStorage)
	svc := NewTransformationService(repo, upload.New(store, 0), store)

	_, err := svc.SetActive(context.Background(), uuid.New().String())

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	// the previous active selection is untouched
	assert.Equal(t, 1, repo.activeCount())
	active, _ := repo.FindActive(context.Background())
	assert.Equal(t, existing.ID, active.ID)
}

func TestTransformationService_Create_RequiresBothImages(t *testing.T) {
	repo := newFakeTransformationRepository()
	store := new(MockStorage)
	svc := NewTransformationService(repo, upload.New(store, 0), store)

	_, err := svc.Create(context.Background(), TransformationInput{Title: strp("Attic Studio")}, pngFileHeader(t, "before.png", 64), nil)

	assert.ErrorIs(t, err, apperrors.ErrUploadFailed)
	assert.Empty(t, repo.items)
}

func TestTransformationService_Create_AfterUploadFailureReclaimsBefore(t *testing.T) {
	repo := newFakeTransformationRepository()

	store := new(MockStorage)
	store.On("Store", mock.Anything, mock.Anything, "before.png", transformationFolder).
		Return(model.ImageRef{URL: "https://cdn/b.png", PublicID: "atelier/transformations/b"}, nil)
	store.On("Store", mock.Anything, mock.Anything, "after.png", transformationFolder).
		Return(model.ImageRef{}, assert.AnError)
	store.On("Delete", mock.Anything, "atelier/transformations/b").Return(nil).Once()

	svc := NewTransformationService(repo, upload.New(store, 0), store)
	_, err := svc.Create(context.Background(), TransformationInput{Title: strp("Attic Studio")},
		pngFileHeader(t, "before.png", 64), pngFileHeader(t, "after.png", 64))

	assert.ErrorIs(t, err, apperrors.ErrUploadFailed)
	assert.Empty(t, repo.items)
	store.AssertExpectations(t)
}

func TestTransformationService_Update_AfterFailureReclaimsNewBefore(t *testing.T) {
	repo := newFakeTransformationRepository()
	existing := &model.Transformation{
		Title:       "Attic Studio",
		BeforeImage: model.ImageRef{URL: "https://cdn/b.png", PublicID: "atelier/transformations/b"},
		AfterImage:  model.ImageRef{URL: "https://cdn/a.png", PublicID: "atelier/transformations/a"},
	}
	require.NoError(t, repo.Create(context.Background(), existing))

	store := new(MockStorage)
	store.On("Store", mock.Anything, mock.Anything, "b2.png", transformationFolder).
		Return(model.ImageRef{URL: "https://cdn/b2.png", PublicID: "atelier/transformations/b2"}, nil)
	store.On("Store", mock.Anything, mock.Anything, "a2.png", transformationFolder).
		Return(model.ImageRef{}, assert.AnError)
	store.On("Delete", mock.Anything, "atelier/transformations/b2").Return(nil).Once()

	svc := NewTransformationService(repo, upload.New(store, 0), store)
	_, err := svc.Update(context.Background(), existing.ID.String(), TransformationInput{},
		pngFileHeader(t, "b2.png", 64), pngFileHeader(t, "a2.png", 64))

	assert.ErrorIs(t, err, apperrors.ErrUploadFailed)
	// the record keeps both original references
	unchanged, findErr := repo.FindByID(context.Background(), existing.ID)
	require.NoError(t, findErr)
	assert.Equal(t, "atelier/transformations/b", unchanged.BeforeImage.PublicID)
	assert.Equal(t, "atelier/transformations/a", unchanged.AfterImage.PublicID)
	store.AssertExpectations(t)
}

func TestTransformationService_Update_ReplacesOneSideOnly(t *testing.T) {
	repo := newFakeTransformationRepository()
	existing := &model.Transformation{
		Title:       "Attic Studio",
		BeforeImage: model.ImageRef{URL: "https://cdn/b.png", PublicID: "atelier/transformations/b"},
		AfterImage:  model.ImageRef{URL: "https://cdn/a.png", PublicID: "atelier/transformations/a"},
	}
	require.NoError(t, repo.Create(context.Background(), existing))

	store := new(MockStorage)
	store.On("Store", mock.Anything, mock.Anything, "after2.png", transformationFolder).
		Return(model.ImageRef{URL: "https://cdn/a2.png", PublicID: "atelier/transformations/a2"}, nil)
	store.On("Delete", mock.Anything, "atelier/transformations/a").Return(nil).Once()

	svc := NewTransformationService(repo, upload.New(store, 0), store)
	updated, err := svc.Update(context.Background(), existing.ID.String(), TransformationInput{}, nil, pngFileHeader(t, "after2.png", 64))

	assert.NoError(t, err)
	assert.Equal(t, "atelier/transformations/b", updated.BeforeImage.PublicID)
	assert.Equal(t, "atelier/transformations/a2", updated.AfterImage.PublicID)
	store.AssertExpectations(t)
	store.AssertNumberOfCalls(t, "Delete", 1)
}
