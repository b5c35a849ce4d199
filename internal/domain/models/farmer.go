package models

import "time"

// Farmer is a registered producer. Farmers belong to at most one
// association and declare yields against their farms.
type Farmer struct {
	ID            uint      `gorm:"primaryKey;column:id" json:"id"`
	FirstName     string    `gorm:"column:first_name;size:80" json:"first_name"`
	LastName      string    `gorm:"column:last_name;size:80" json:"last_name"`
	Phone         string    `gorm:"column:phone;size:32" json:"phone,omitempty"`
	AssociationID *uint     `gorm:"column:association_id;index" json:"association_id,omitempty"`
	SectorID      *uint     `gorm:"column:sector_id;index" json:"sector_id,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Farmer) TableName() string { return "farmers" }

// FullName joins the farmer's names for display in announcements and
// archive rows.
func (f Farmer) FullName() string {
	if f.FirstName == "" {
		return f.LastName
	}
	if f.LastName == "" {
		return f.FirstName
	}
	return f.FirstName + " " + f.LastName
}

// Association groups farmers by cooperative or region.
type Association struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	Name      string    `gorm:"column:name;size:120" json:"name"`
	Region    string    `gorm:"column:region;size:120" json:"region,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Association) TableName() string { return "associations" }
