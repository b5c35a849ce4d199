package models

import "time"

// Sector is a farming domain category such as rice or livestock. Products
// are grouped under a sector.
type Sector struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	Name      string    `gorm:"column:name;size:120" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Sector) TableName() string { return "sectors" }

// Product is a crop or good that yields are declared against.
type Product struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	Name      string    `gorm:"column:name;size:120" json:"name"`
	SectorID  uint      `gorm:"column:sector_id;index" json:"sector_id"`
	Unit      string    `gorm:"column:unit;size:16" json:"unit,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Product) TableName() string { return "products" }
