package models

import "time"

// AnnouncementAudience scopes who an announcement is addressed to.
type AnnouncementAudience string

const (
	// AudienceFarmer targets a single farmer. The only audience the yield
	// workflow produces.
	AudienceFarmer AnnouncementAudience = "farmer"
)

// Announcement is a farmer-facing message derived from a yield status
// transition.
type Announcement struct {
	ID        uint                 `gorm:"primaryKey;column:id" json:"id"`
	Title     string               `gorm:"column:title;size:160" json:"title"`
	Message   string               `gorm:"column:message;type:text" json:"message"`
	Audience  AnnouncementAudience `gorm:"column:audience;size:16" json:"audience"`
	FarmerID  uint                 `gorm:"column:farmer_id;index" json:"farmer_id"`
	Delivered bool                 `gorm:"column:delivered" json:"delivered"`
	CreatedAt time.Time            `gorm:"column:created_at" json:"created_at"`
}

func (Announcement) TableName() string { return "announcements" }

// Notification links a farmer to an announcement with a read marker.
// Created 1:1 with each announcement the yield workflow emits.
type Notification struct {
	ID             uint      `gorm:"primaryKey;column:id" json:"id"`
	FarmerID       uint      `gorm:"column:farmer_id;index" json:"farmer_id"`
	AnnouncementID uint      `gorm:"column:announcement_id;index" json:"announcement_id"`
	Read           bool      `gorm:"column:is_read" json:"is_read"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

// NotificationItem is a notification joined with its announcement content
// for the farmer feed.
type NotificationItem struct {
	ID             uint      `gorm:"column:id" json:"id"`
	AnnouncementID uint      `gorm:"column:announcement_id" json:"announcement_id"`
	Title          string    `gorm:"column:title" json:"title"`
	Message        string    `gorm:"column:message" json:"message"`
	Read           bool      `gorm:"column:is_read" json:"is_read"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
}
