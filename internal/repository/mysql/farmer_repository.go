package mysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mamadbah2/agrilink/internal/domain/models"
)

// FarmerRepository persists farmers.
type FarmerRepository interface {
	Create(ctx context.Context, farmer *models.Farmer) error
	GetByID(ctx context.Context, id uint) (*models.Farmer, error)
	List(ctx context.Context) ([]models.Farmer, error)
	Update(ctx context.Context, farmer *models.Farmer) error
	Delete(ctx context.Context, id uint) error
}

type farmerRepository struct {
	db *gorm.DB
}

// NewFarmerRepository builds the gorm-backed farmer repository.
func NewFarmerRepository(db *gorm.DB) FarmerRepository {
	return &farmerRepository{db: db}
}

func (r *farmerRepository) Create(ctx context.Context, farmer *models.Farmer) error {
	return models.NewStorageError("create farmer", r.db.WithContext(ctx).Create(farmer).Error)
}

func (r *farmerRepository) GetByID(ctx context.Context, id uint) (*models.Farmer, error) {
	var farmer models.Farmer
	err := r.db.WithContext(ctx).First(&farmer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("farmer %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, models.NewStorageError("get farmer", err)
	}
	return &farmer, nil
}

func (r *farmerRepository) List(ctx context.Context) ([]models.Farmer, error) {
	var farmers []models.Farmer
	err := r.db.WithContext(ctx).Order("last_name, first_name").Find(&farmers).Error
	if err != nil {
		return nil, models.NewStorageError("list farmers", err)
	}
	return farmers, nil
}

func (r *farmerRepository) Update(ctx context.Context, farmer *models.Farmer) error {
	res := r.db.WithContext(ctx).Model(&models.Farmer{}).
		Where("id = ?", farmer.ID).
		Select("first_name", "last_name", "phone", "association_id", "sector_id").
		Updates(farmer)
	if res.Error != nil {
		return models.NewStorageError("update farmer", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("farmer %d: %w", farmer.ID, models.ErrNotFound)
	}
	return nil
}

func (r *farmerRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Farmer{}, id)
	if res.Error != nil {
		return models.NewStorageError("delete farmer", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("farmer %d: %w", id, models.ErrNotFound)
	}
	return nil
}
