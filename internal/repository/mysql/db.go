package mysql

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mamadbah2/agrilink/internal/domain/models"
)

// Open connects to the MySQL instance described by dsn and verifies the
// connection before returning.
func Open(ctx context.Context, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("failed to ping mysql: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the schema for every entity the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Sector{},
		&models.Association{},
		&models.Farmer{},
		&models.Farm{},
		&models.Product{},
		&models.YieldRecord{},
		&models.YieldArchive{},
		&models.Announcement{},
		&models.Notification{},
		&models.User{},
	)
}
