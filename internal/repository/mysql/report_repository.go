package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mamadbah2/agrilink/internal/domain/models"
)

// ReportRepository runs the read-only grouped queries behind dashboards
// and the daily snapshot job.
type ReportRepository interface {
	VolumeBySector(ctx context.Context) ([]models.SectorVolume, error)
	VolumeByProduct(ctx context.Context) ([]models.ProductVolume, error)
	VolumeByAssociation(ctx context.Context) ([]models.AssociationVolume, error)
	StatusBreakdown(ctx context.Context) ([]models.StatusCount, error)
	PendingQueue(ctx context.Context) ([]models.YieldRecord, error)
	CountRecordedSince(ctx context.Context, since time.Time) (int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository builds the gorm-backed report repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) VolumeBySector(ctx context.Context) ([]models.SectorVolume, error) {
	var rows []models.SectorVolume
	err := r.db.WithContext(ctx).Table("yields").
		Select("sectors.id AS sector_id, sectors.name AS sector_name, SUM(yields.volume) AS volume, COUNT(yields.id) AS records").
		Joins("JOIN products ON products.id = yields.product_id").
		Joins("JOIN sectors ON sectors.id = products.sector_id").
		Where("yields.status = ?", models.YieldStatusAccepted).
		Group("sectors.id, sectors.name").
		Order("volume DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewStorageError("volume by sector", err)
	}
	return rows, nil
}

func (r *reportRepository) VolumeByProduct(ctx context.Context) ([]models.ProductVolume, error) {
	var rows []models.ProductVolume
	err := r.db.WithContext(ctx).Table("yields").
		Select("products.id AS product_id, products.name AS product_name, SUM(yields.volume) AS volume, COUNT(yields.id) AS records").
		Joins("JOIN products ON products.id = yields.product_id").
		Where("yields.status = ?", models.YieldStatusAccepted).
		Group("products.id, products.name").
		Order("volume DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewStorageError("volume by product", err)
	}
	return rows, nil
}

func (r *reportRepository) VolumeByAssociation(ctx context.Context) ([]models.AssociationVolume, error) {
	var rows []models.AssociationVolume
	err := r.db.WithContext(ctx).Table("yields").
		Select("associations.id AS association_id, associations.name AS association_name, SUM(yields.volume) AS volume, COUNT(yields.id) AS records").
		Joins("JOIN farmers ON farmers.id = yields.farmer_id").
		Joins("JOIN associations ON associations.id = farmers.association_id").
		Where("yields.status = ?", models.YieldStatusAccepted).
		Group("associations.id, associations.name").
		Order("volume DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewStorageError("volume by association", err)
	}
	return rows, nil
}

func (r *reportRepository) StatusBreakdown(ctx context.Context) ([]models.StatusCount, error) {
	var rows []models.StatusCount
	err := r.db.WithContext(ctx).Table("yields").
		Select("status, COUNT(id) AS records, SUM(volume) AS volume").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewStorageError("status breakdown", err)
	}
	return rows, nil
}

func (r *reportRepository) PendingQueue(ctx context.Context) ([]models.YieldRecord, error) {
	var rows []models.YieldRecord
	err := r.db.WithContext(ctx).
		Where("status = ?", models.YieldStatusPending).
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		return nil, models.NewStorageError("pending queue", err)
	}
	return rows, nil
}

func (r *reportRepository) CountRecordedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.YieldRecord{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, models.NewStorageError("count recorded since", err)
	}
	return count, nil
}
