package mysql

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mamadbah2/agrilink/internal/domain/models"
)

// AnnouncementRepository persists announcements and their per-farmer
// notification markers.
type AnnouncementRepository interface {
	// CreateWithNotification inserts the announcement and its 1:1
	// notification row in one transaction.
	CreateWithNotification(ctx context.Context, ann *models.Announcement) error
	ListByFarmer(ctx context.Context, farmerID uint) ([]models.NotificationItem, error)
	MarkRead(ctx context.Context, farmerID, notificationID uint) error
}

type announcementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository builds the gorm-backed announcement repository.
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) CreateWithNotification(ctx context.Context, ann *models.Announcement) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ann).Error; err != nil {
			return fmt.Errorf("insert announcement: %w", err)
		}
		notif := models.Notification{
			FarmerID:       ann.FarmerID,
			AnnouncementID: ann.ID,
		}
		if err := tx.Create(&notif).Error; err != nil {
			return fmt.Errorf("insert notification: %w", err)
		}
		return nil
	})
	return models.NewStorageError("create announcement", err)
}

func (r *announcementRepository) ListByFarmer(ctx context.Context, farmerID uint) ([]models.NotificationItem, error) {
	var items []models.NotificationItem
	err := r.db.WithContext(ctx).Table("notifications").
		Select("notifications.id, notifications.announcement_id, announcements.title, announcements.message, notifications.is_read, notifications.created_at").
		Joins("JOIN announcements ON announcements.id = notifications.announcement_id").
		Where("notifications.farmer_id = ?", farmerID).
		Order("notifications.created_at DESC").
		Scan(&items).Error
	if err != nil {
		return nil, models.NewStorageError("list notifications", err)
	}
	return items, nil
}

func (r *announcementRepository) MarkRead(ctx context.Context, farmerID, notificationID uint) error {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND farmer_id = ?", notificationID, farmerID).
		Update("is_read", true)
	if res.Error != nil {
		return models.NewStorageError("mark notification read", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("notification %d: %w", notificationID, models.ErrNotFound)
	}
	return nil
}
