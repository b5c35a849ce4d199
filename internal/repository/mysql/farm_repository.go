package mysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mamadbah2/agrilink/internal/domain/models"
)

// FarmRepository persists farms.
type FarmRepository interface {
	Create(ctx context.Context, farm *models.Farm) error
	GetByID(ctx context.Context, id uint) (*models.Farm, error)
	List(ctx context.Context) ([]models.Farm, error)
	ListByFarmer(ctx context.Context, farmerID uint) ([]models.Farm, error)
	Update(ctx context.Context, farm *models.Farm) error
	Delete(ctx context.Context, id uint) error
}

type farmRepository struct {
	db *gorm.DB
}

// NewFarmRepository builds the gorm-backed farm repository.
func NewFarmRepository(db *gorm.DB) FarmRepository {
	return &farmRepository{db: db}
}

func (r *farmRepository) Create(ctx context.Context, farm *models.Farm) error {
	if farm.ProductIDs == nil {
		farm.ProductIDs = models.IDList{}
	}
	return models.NewStorageError("create farm", r.db.WithContext(ctx).Create(farm).Error)
}

func (r *farmRepository) GetByID(ctx context.Context, id uint) (*models.Farm, error) {
	var farm models.Farm
	err := r.db.WithContext(ctx).First(&farm, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("farm %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, models.NewStorageError("get farm", err)
	}
	return &farm, nil
}

func (r *farmRepository) List(ctx context.Context) ([]models.Farm, error) {
	var farms []models.Farm
	err := r.db.WithContext(ctx).Order("name").Find(&farms).Error
	if err != nil {
		return nil, models.NewStorageError("list farms", err)
	}
	return farms, nil
}

func (r *farmRepository) ListByFarmer(ctx context.Context, farmerID uint) ([]models.Farm, error) {
	var farms []models.Farm
	err := r.db.WithContext(ctx).Where("farmer_id = ?", farmerID).Order("name").Find(&farms).Error
	if err != nil {
		return nil, models.NewStorageError("list farms by farmer", err)
	}
	return farms, nil
}

func (r *farmRepository) Update(ctx context.Context, farm *models.Farm) error {
	res := r.db.WithContext(ctx).Model(&models.Farm{}).
		Where("id = ?", farm.ID).
		Select("name", "location", "area_total", "farmer_id").
		Updates(farm)
	if res.Error != nil {
		return models.NewStorageError("update farm", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("farm %d: %w", farm.ID, models.ErrNotFound)
	}
	return nil
}

func (r *farmRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Farm{}, id)
	if res.Error != nil {
		return models.NewStorageError("delete farm", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("farm %d: %w", id, models.ErrNotFound)
	}
	return nil
}
