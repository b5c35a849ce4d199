package models

import "time"

// Farm is a production site owned by a farmer. ProductIDs is a denormalized
// index of products known to be grown there, kept in sync by the yield
// service on every yield create and delete.
type Farm struct {
	ID         uint      `gorm:"primaryKey;column:id" json:"id"`
	Name       string    `gorm:"column:name;size:120" json:"name"`
	Location   string    `gorm:"column:location;size:200" json:"location,omitempty"`
	AreaTotal  float64   `gorm:"column:area_total" json:"area_total,omitempty"`
	FarmerID   uint      `gorm:"column:farmer_id;index" json:"farmer_id"`
	ProductIDs IDList    `gorm:"column:products;type:text" json:"product_ids"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Farm) TableName() string { return "farms" }
