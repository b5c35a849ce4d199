package models

import (
	"strings"
	"time"
)

// Role classifies what an authenticated caller may do.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleStaff  Role = "staff"
	RoleFarmer Role = "farmer"
	RoleOther  Role = "other"
)

// ParseRole maps a stored role string onto the known set, defaulting to
// RoleOther.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin
	case "staff":
		return RoleStaff
	case "farmer":
		return RoleFarmer
	default:
		return RoleOther
	}
}

// Privileged reports whether the role may act on behalf of the platform,
// which makes yield submissions trusted on creation.
func (r Role) Privileged() bool {
	return r == RoleAdmin || r == RoleStaff
}

// User is an authenticated account. FarmerID links farmer accounts to
// their producer record.
type User struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	Email     string    `gorm:"column:email;size:160;uniqueIndex" json:"email"`
	Name      string    `gorm:"column:name;size:120" json:"name,omitempty"`
	Role      Role      `gorm:"column:role;size:16" json:"role"`
	FarmerID  *uint     `gorm:"column:farmer_id;index" json:"farmer_id,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string { return "users" }
