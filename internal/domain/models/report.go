package models

import "time"

// SectorVolume aggregates accepted yield volume for one sector.
type SectorVolume struct {
	SectorID   uint    `gorm:"column:sector_id" json:"sector_id"`
	SectorName string  `gorm:"column:sector_name" json:"sector_name"`
	Volume     float64 `gorm:"column:volume" json:"volume"`
	Records    int64   `gorm:"column:records" json:"records"`
}

// ProductVolume aggregates accepted yield volume for one product.
type ProductVolume struct {
	ProductID   uint    `gorm:"column:product_id" json:"product_id"`
	ProductName string  `gorm:"column:product_name" json:"product_name"`
	Volume      float64 `gorm:"column:volume" json:"volume"`
	Records     int64   `gorm:"column:records" json:"records"`
}

// AssociationVolume aggregates accepted yield volume per association.
type AssociationVolume struct {
	AssociationID   uint    `gorm:"column:association_id" json:"association_id"`
	AssociationName string  `gorm:"column:association_name" json:"association_name"`
	Volume          float64 `gorm:"column:volume" json:"volume"`
	Records         int64   `gorm:"column:records" json:"records"`
}

// StatusCount is the number of yield records currently in one status.
type StatusCount struct {
	Status  YieldStatus `gorm:"column:status" json:"status"`
	Records int64       `gorm:"column:records" json:"records"`
	Volume  float64     `gorm:"column:volume" json:"volume"`
}

// DailySnapshot is the aggregated picture of a single day, persisted to the
// snapshot store by the scheduler for dashboard history.
type DailySnapshot struct {
	Date           time.Time     `bson:"date" json:"date"`
	YieldsRecorded int64         `bson:"yields_recorded" json:"yields_recorded"`
	PendingReview  int64         `bson:"pending_review" json:"pending_review"`
	StatusCounts   []StatusCount `bson:"status_counts" json:"status_counts"`
	VolumeBySector []SectorVolume `bson:"volume_by_sector" json:"volume_by_sector"`
	CreatedAt      time.Time     `bson:"created_at" json:"created_at"`
}
