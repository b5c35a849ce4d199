package models

import (
	"strings"
	"time"
)

// YieldStatus enumerates the review states of a harvest declaration.
type YieldStatus string

const (
	YieldStatusPending  YieldStatus = "Pending"
	YieldStatusAccepted YieldStatus = "Accepted"
	YieldStatusRejected YieldStatus = "Rejected"
)

// NormalizeYieldStatus maps a free-form status string onto the canonical
// enumeration values. Unknown inputs are returned trimmed but otherwise
// untouched so callers can still compare them.
func NormalizeYieldStatus(s string) YieldStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return YieldStatusPending
	case "accepted":
		return YieldStatusAccepted
	case "rejected":
		return YieldStatusRejected
	default:
		return YieldStatus(strings.TrimSpace(s))
	}
}

// Equals compares two statuses case-insensitively.
func (s YieldStatus) Equals(other YieldStatus) bool {
	return strings.EqualFold(string(s), string(other))
}

// YieldRecord is one harvest event tying a farmer, farm and product to a
// volume, value and date. Column names follow the established schema.
type YieldRecord struct {
	ID            uint        `gorm:"primaryKey;column:id" json:"id"`
	FarmerID      uint        `gorm:"column:farmer_id;index" json:"farmer_id"`
	ProductID     uint        `gorm:"column:product_id;index" json:"product_id"`
	FarmID        uint        `gorm:"column:farm_id;index" json:"farm_id"`
	HarvestDate   time.Time   `gorm:"column:harvest_date" json:"harvest_date"`
	Volume        float64     `gorm:"column:volume" json:"volume"`
	AreaHarvested float64     `gorm:"column:area_harvested" json:"area_harvested"`
	Value         *float64    `gorm:"column:Value" json:"value,omitempty"`
	Notes         string      `gorm:"column:notes;type:text" json:"notes,omitempty"`
	Images        ImageList   `gorm:"column:images;type:text" json:"images,omitempty"`
	Status        YieldStatus `gorm:"column:status;size:16;index" json:"status"`
	CreatedAt     time.Time   `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"column:updated_at" json:"updated_at"`
}

// TableName pins the table name regardless of gorm pluralization rules.
func (YieldRecord) TableName() string { return "yields" }

// YieldDetail is a YieldRecord joined with the display names callers expect
// in responses.
type YieldDetail struct {
	YieldRecord
	FarmerName  string `gorm:"column:farmer_name" json:"farmer_name"`
	ProductName string `gorm:"column:product_name" json:"product_name"`
	FarmName    string `gorm:"column:farm_name" json:"farm_name"`
	SectorName  string `gorm:"column:sector_name" json:"sector_name"`
}

// YieldArchive is the append-only copy of a deleted yield record. Rows are
// written once during deletion and never updated.
type YieldArchive struct {
	ID            uint        `gorm:"primaryKey;column:id" json:"id"`
	YieldID       uint        `gorm:"column:yield_id;index" json:"yield_id"`
	FarmerID      uint        `gorm:"column:farmer_id" json:"farmer_id"`
	ProductID     uint        `gorm:"column:product_id" json:"product_id"`
	FarmID        uint        `gorm:"column:farm_id" json:"farm_id"`
	FarmerName    string      `gorm:"column:farmer_name" json:"farmer_name"`
	ProductName   string      `gorm:"column:product_name" json:"product_name"`
	FarmName      string      `gorm:"column:farm_name" json:"farm_name"`
	HarvestDate   time.Time   `gorm:"column:harvest_date" json:"harvest_date"`
	Volume        float64     `gorm:"column:volume" json:"volume"`
	AreaHarvested float64     `gorm:"column:area_harvested" json:"area_harvested"`
	Value         *float64    `gorm:"column:Value" json:"value,omitempty"`
	Notes         string      `gorm:"column:notes;type:text" json:"notes,omitempty"`
	Images        ImageList   `gorm:"column:images;type:text" json:"images,omitempty"`
	Status        YieldStatus `gorm:"column:status;size:16" json:"status"`
	DeleteDate    time.Time   `gorm:"column:delete_date" json:"delete_date"`
}

func (YieldArchive) TableName() string { return "yield_archives" }
