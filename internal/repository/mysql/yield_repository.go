package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mamadbah2/agrilink/internal/domain/models"
)

// YieldRepository defines the persistence operations for yield records and
// their archive. Multi-row invariants (farm product index sync, archival)
// are kept transactional inside the implementation.
type YieldRepository interface {
	// Create inserts a yield record and, in the same transaction, appends
	// the product to the owning farm's product index when missing.
	// Returns models.ErrNotFound when the farm does not exist.
	Create(ctx context.Context, rec *models.YieldRecord) error
	GetByID(ctx context.Context, id uint) (*models.YieldRecord, error)
	GetDetail(ctx context.Context, id uint) (*models.YieldDetail, error)
	Update(ctx context.Context, rec *models.YieldRecord) error
	// ArchiveAndDelete copies the record into the archive with a deletion
	// timestamp, removes the live row, and prunes the product id from the
	// farm index when no sibling references the same (farm, product) pair.
	ArchiveAndDelete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]models.YieldDetail, error)
	ListIDsByFarmer(ctx context.Context, farmerID uint) ([]uint, error)
	ListIDsByFarm(ctx context.Context, farmID uint) ([]uint, error)
	ListIDsByProduct(ctx context.Context, productID uint) ([]uint, error)
}

type yieldRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewYieldRepository builds the gorm-backed yield repository.
func NewYieldRepository(db *gorm.DB) YieldRepository {
	return &yieldRepository{db: db, now: time.Now}
}

func (r *yieldRepository) Create(ctx context.Context, rec *models.YieldRecord) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		farm, err := lockFarm(tx, rec.FarmID)
		if err != nil {
			return err
		}

		if !farm.ProductIDs.Contains(rec.ProductID) {
			updated := append(farm.ProductIDs, rec.ProductID)
			if err := tx.Model(&models.Farm{}).Where("id = ?", farm.ID).
				Update("products", updated).Error; err != nil {
				return fmt.Errorf("sync farm product index: %w", err)
			}
		}

		if err := tx.Create(rec).Error; err != nil {
			return fmt.Errorf("insert yield: %w", err)
		}
		return nil
	})
	return models.NewStorageError("create yield", err)
}

func (r *yieldRepository) GetByID(ctx context.Context, id uint) (*models.YieldRecord, error) {
	var rec models.YieldRecord
	err := r.db.WithContext(ctx).First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("yield %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, models.NewStorageError("get yield", err)
	}
	return &rec, nil
}

func (r *yieldRepository) GetDetail(ctx context.Context, id uint) (*models.YieldDetail, error) {
	rec, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail, err := r.buildDetail(r.db.WithContext(ctx), *rec)
	if err != nil {
		return nil, models.NewStorageError("join yield detail", err)
	}
	return detail, nil
}

func (r *yieldRepository) Update(ctx context.Context, rec *models.YieldRecord) error {
	res := r.db.WithContext(ctx).Model(&models.YieldRecord{}).
		Where("id = ?", rec.ID).
		Select("farmer_id", "product_id", "farm_id", "harvest_date", "volume",
			"area_harvested", "Value", "notes", "images", "status", "updated_at").
		Updates(rec)
	if res.Error != nil {
		return models.NewStorageError("update yield", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("yield %d: %w", rec.ID, models.ErrNotFound)
	}
	return nil
}

func (r *yieldRepository) ArchiveAndDelete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec models.YieldRecord
		if err := tx.First(&rec, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("yield %d: %w", id, models.ErrNotFound)
			}
			return err
		}

		detail, err := r.buildDetail(tx, rec)
		if err != nil {
			return fmt.Errorf("resolve display names: %w", err)
		}

		archive := models.YieldArchive{
			YieldID:       rec.ID,
			FarmerID:      rec.FarmerID,
			ProductID:     rec.ProductID,
			FarmID:        rec.FarmID,
			FarmerName:    detail.FarmerName,
			ProductName:   detail.ProductName,
			FarmName:      detail.FarmName,
			HarvestDate:   rec.HarvestDate,
			Volume:        rec.Volume,
			AreaHarvested: rec.AreaHarvested,
			Value:         rec.Value,
			Notes:         rec.Notes,
			Images:        rec.Images,
			Status:        rec.Status,
			DeleteDate:    r.now().UTC(),
		}
		if err := tx.Create(&archive).Error; err != nil {
			return fmt.Errorf("insert archive: %w", err)
		}

		if err := tx.Delete(&models.YieldRecord{}, rec.ID).Error; err != nil {
			return fmt.Errorf("delete yield: %w", err)
		}

		var siblings int64
		if err := tx.Model(&models.YieldRecord{}).
			Where("farm_id = ? AND product_id = ?", rec.FarmID, rec.ProductID).
			Count(&siblings).Error; err != nil {
			return fmt.Errorf("count siblings: %w", err)
		}
		if siblings > 0 {
			return nil
		}

		farm, err := lockFarm(tx, rec.FarmID)
		if err != nil {
			// The owning farm may already be gone mid-cascade.
			if errors.Is(err, models.ErrNotFound) {
				return nil
			}
			return err
		}
		if farm.ProductIDs.Contains(rec.ProductID) {
			if err := tx.Model(&models.Farm{}).Where("id = ?", farm.ID).
				Update("products", farm.ProductIDs.Without(rec.ProductID)).Error; err != nil {
				return fmt.Errorf("prune farm product index: %w", err)
			}
		}
		return nil
	})
	return models.NewStorageError("archive yield", err)
}

func (r *yieldRepository) List(ctx context.Context) ([]models.YieldDetail, error) {
	var recs []models.YieldRecord
	if err := r.db.WithContext(ctx).Order("harvest_date DESC").Find(&recs).Error; err != nil {
		return nil, models.NewStorageError("list yields", err)
	}

	details := make([]models.YieldDetail, 0, len(recs))
	for _, rec := range recs {
		detail, err := r.buildDetail(r.db.WithContext(ctx), rec)
		if err != nil {
			return nil, models.NewStorageError("join yield detail", err)
		}
		details = append(details, *detail)
	}
	return details, nil
}

func (r *yieldRepository) ListIDsByFarmer(ctx context.Context, farmerID uint) ([]uint, error) {
	return r.listIDs(ctx, "farmer_id = ?", farmerID)
}

func (r *yieldRepository) ListIDsByFarm(ctx context.Context, farmID uint) ([]uint, error) {
	return r.listIDs(ctx, "farm_id = ?", farmID)
}

func (r *yieldRepository) ListIDsByProduct(ctx context.Context, productID uint) ([]uint, error) {
	return r.listIDs(ctx, "product_id = ?", productID)
}

func (r *yieldRepository) listIDs(ctx context.Context, cond string, arg uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.YieldRecord{}).
		Where(cond, arg).Order("id").Pluck("id", &ids).Error
	if err != nil {
		return nil, models.NewStorageError("list yield ids", err)
	}
	return ids, nil
}

// buildDetail resolves display names with point lookups instead of a joined
// select so the same code runs on MySQL and the sqlite test driver.
func (r *yieldRepository) buildDetail(tx *gorm.DB, rec models.YieldRecord) (*models.YieldDetail, error) {
	detail := models.YieldDetail{YieldRecord: rec}

	var farmer models.Farmer
	if err := tx.First(&farmer, rec.FarmerID).Error; err == nil {
		detail.FarmerName = farmer.FullName()
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var product models.Product
	if err := tx.First(&product, rec.ProductID).Error; err == nil {
		detail.ProductName = product.Name
		var sector models.Sector
		if err := tx.First(&sector, product.SectorID).Error; err == nil {
			detail.SectorName = sector.Name
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var farm models.Farm
	if err := tx.First(&farm, rec.FarmID).Error; err == nil {
		detail.FarmName = farm.Name
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return &detail, nil
}

// lockFarm fetches a farm row, holding a row lock for the duration of the
// transaction on drivers that support it. Serializes concurrent writers of
// the same farm's product index.
func lockFarm(tx *gorm.DB, farmID uint) (*models.Farm, error) {
	q := tx.Session(&gorm.Session{})
	if tx.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var farm models.Farm
	if err := q.First(&farm, farmID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("farm %d: %w", farmID, models.ErrNotFound)
		}
		return nil, err
	}
	return &farm, nil
}
