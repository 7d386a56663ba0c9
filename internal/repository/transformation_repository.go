package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"atelier/internal/model"
)

// TransformationRepository defines persistence operations for before/after
// showcases, including the exclusive-active swap.
type TransformationRepository interface {
	Create(ctx context.Context, t *model.Transformation) error
	Save(ctx context.Context, t *model.Transformation) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Transformation, error)
	FindActive(ctx context.Context) (*model.Transformation, error)
	List(ctx context.Context) ([]model.Transformation, error)
	SetActive(ctx context.Context, id uuid.UUID) error
}

type transformationRepository struct {
	db *gorm.DB
}

// NewTransformationRepository builds a GORM-backed repository.
func NewTransformationRepository(db *gorm.DB) TransformationRepository {
	return &transformationRepository{db: db}
}

func (r *transformationRepository) Create(ctx context.Context, t *model.Transformation) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *transformationRepository) Save(ctx context.Context, t *model.Transformation) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *transformationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Transformation{}, "id = ?", id).Error
}

func (r *transformationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Transformation, error) {
	var t model.Transformation
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &t, nil
}

func (r *transformationRepository) FindActive(ctx context.Context) (*model.Transformation, error) {
	var t model.Transformation
	if err := r.db.WithContext(ctx).Where("active = ?", true).First(&t).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &t, nil
}

func (r *transformationRepository) List(ctx context.Context) ([]model.Transformation, error) {
	var ts []model.Transformation
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&ts).Error; err != nil {
		return nil, err
	}
	return ts, nil
}

// SetActive clears every other active flag and sets the target's, in one
// transaction. A committed read can observe zero active rows mid-swap but
// never two.
func (r *transformationRepository) SetActive(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Transformation{}).
			Where("active = ? AND id <> ?", true, id).
			Update("active", false).Error; err != nil {
			return err
		}

		res := tx.Model(&model.Transformation{}).
			Where("id = ?", id).
			Update("active", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return mapNotFound(gorm.ErrRecordNotFound)
		}
		return nil
	})
}
