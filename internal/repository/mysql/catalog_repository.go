package mysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mamadbah2/agrilink/internal/domain/models"
)

// CatalogRepository persists the shared reference entities: products,
// sectors and associations.
type CatalogRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uint) error

	CreateSector(ctx context.Context, sector *models.Sector) error
	GetSector(ctx context.Context, id uint) (*models.Sector, error)
	ListSectors(ctx context.Context) ([]models.Sector, error)
	UpdateSector(ctx context.Context, sector *models.Sector) error
	DeleteSector(ctx context.Context, id uint) error

	CreateAssociation(ctx context.Context, association *models.Association) error
	GetAssociation(ctx context.Context, id uint) (*models.Association, error)
	ListAssociations(ctx context.Context) ([]models.Association, error)
	UpdateAssociation(ctx context.Context, association *models.Association) error
	DeleteAssociation(ctx context.Context, id uint) error
}

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository builds the gorm-backed catalog repository.
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	return models.NewStorageError("create product", r.db.WithContext(ctx).Create(product).Error)
}

func (r *catalogRepository) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, models.NewStorageError("get product", err)
	}
	return &product, nil
}

func (r *catalogRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Order("name").Find(&products).Error; err != nil {
		return nil, models.NewStorageError("list products", err)
	}
	return products, nil
}

func (r *catalogRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", product.ID).
		Select("name", "sector_id", "unit").
		Updates(product)
	if res.Error != nil {
		return models.NewStorageError("update product", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", product.ID, models.ErrNotFound)
	}
	return nil
}

func (r *catalogRepository) DeleteProduct(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return models.NewStorageError("delete product", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", id, models.ErrNotFound)
	}
	return nil
}

func (r *catalogRepository) CreateSector(ctx context.Context, sector *models.Sector) error {
	return models.NewStorageError("create sector", r.db.WithContext(ctx).Create(sector).Error)
}

func (r *catalogRepository) GetSector(ctx context.Context, id uint) (*models.Sector, error) {
	var sector models.Sector
	err := r.db.WithContext(ctx).First(&sector, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("sector %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, models.NewStorageError("get sector", err)
	}
	return &sector, nil
}

func (r *catalogRepository) ListSectors(ctx context.Context) ([]models.Sector, error) {
	var sectors []models.Sector
	if err := r.db.WithContext(ctx).Order("name").Find(&sectors).Error; err != nil {
		return nil, models.NewStorageError("list sectors", err)
	}
	return sectors, nil
}

func (r *catalogRepository) UpdateSector(ctx context.Context, sector *models.Sector) error {
	res := r.db.WithContext(ctx).Model(&models.Sector{}).
		Where("id = ?", sector.ID).
		Select("name").
		Updates(sector)
	if res.Error != nil {
		return models.NewStorageError("update sector", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("sector %d: %w", sector.ID, models.ErrNotFound)
	}
	return nil
}

func (r *catalogRepository) DeleteSector(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Sector{}, id)
	if res.Error != nil {
		return models.NewStorageError("delete sector", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("sector %d: %w", id, models.ErrNotFound)
	}
	return nil
}

func (r *catalogRepository) CreateAssociation(ctx context.Context, association *models.Association) error {
	return models.NewStorageError("create association", r.db.WithContext(ctx).Create(association).Error)
}

func (r *catalogRepository) GetAssociation(ctx context.Context, id uint) (*models.Association, error) {
	var association models.Association
	err := r.db.WithContext(ctx).First(&association, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("association %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, models.NewStorageError("get association", err)
	}
	return &association, nil
}

func (r *catalogRepository) ListAssociations(ctx context.Context) ([]models.Association, error) {
	var associations []models.Association
	if err := r.db.WithContext(ctx).Order("name").Find(&associations).Error; err != nil {
		return nil, models.NewStorageError("list associations", err)
	}
	return associations, nil
}

func (r *catalogRepository) UpdateAssociation(ctx context.Context, association *models.Association) error {
	res := r.db.WithContext(ctx).Model(&models.Association{}).
		Where("id = ?", association.ID).
		Select("name", "region").
		Updates(association)
	if res.Error != nil {
		return models.NewStorageError("update association", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("association %d: %w", association.ID, models.ErrNotFound)
	}
	return nil
}

func (r *catalogRepository) DeleteAssociation(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Association{}, id)
	if res.Error != nil {
		return models.NewStorageError("delete association", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("association %d: %w", id, models.ErrNotFound)
	}
	return nil
}
