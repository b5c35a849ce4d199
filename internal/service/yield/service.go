package yield

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/agrilink/internal/domain/models"
	repo "github.com/mamadbah2/agrilink/internal/repository/mysql"
)

// Service owns the yield record lifecycle: creation with trust-based
// status assignment, full-field update with transition-driven announcement
// emission, and deletion with archival.
type Service struct {
	yields        repo.YieldRepository
	announcements repo.AnnouncementRepository
	logger        *zap.Logger
}

// NewService wires a yield service instance.
func NewService(yields repo.YieldRepository, announcements repo.AnnouncementRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		yields:        yields,
		announcements: announcements,
		logger:        logger,
	}
}

// CreateInput carries the fields of a new harvest declaration.
type CreateInput struct {
	FarmerID      uint      `json:"farmer_id"`
	ProductID     uint      `json:"product_id"`
	FarmID        uint      `json:"farm_id"`
	HarvestDate   time.Time `json:"harvest_date"`
	Volume        float64   `json:"volume"`
	AreaHarvested float64   `json:"area_harvested"`
	Value         *float64  `json:"value"`
	Notes         string    `json:"notes"`
	Images        []string  `json:"images"`
}

// UpdateInput carries the full mutable field set of an existing record,
// including its (possibly changed) status.
type UpdateInput struct {
	FarmerID      uint      `json:"farmer_id"`
	ProductID     uint      `json:"product_id"`
	FarmID        uint      `json:"farm_id"`
	HarvestDate   time.Time `json:"harvest_date"`
	Volume        float64   `json:"volume"`
	AreaHarvested float64   `json:"area_harvested"`
	Value         *float64  `json:"value"`
	Notes         string    `json:"notes"`
	Images        []string  `json:"images"`
	Status        string    `json:"status"`
}

// Create persists a new yield record. Submissions from admin or staff
// callers are trusted and land directly in Accepted; everything else waits
// in Pending for review. The owning farm's product index is updated in the
// same transaction as the insert.
func (s *Service) Create(ctx context.Context, in CreateInput, callerRole models.Role) (*models.YieldDetail, error) {
	if in.Volume < 0 {
		return nil, fmt.Errorf("volume must not be negative: %w", models.ErrInvalidArgument)
	}
	if in.AreaHarvested != 0 && !validArea(in.AreaHarvested) {
		return nil, fmt.Errorf("area harvested must be a positive number: %w", models.ErrInvalidArgument)
	}

	status := models.YieldStatusPending
	if callerRole.Privileged() {
		status = models.YieldStatusAccepted
	}

	rec := models.YieldRecord{
		FarmerID:      in.FarmerID,
		ProductID:     in.ProductID,
		FarmID:        in.FarmID,
		HarvestDate:   in.HarvestDate,
		Volume:        in.Volume,
		AreaHarvested: in.AreaHarvested,
		Value:         in.Value,
		Notes:         in.Notes,
		Images:        models.ImageList(in.Images),
		Status:        status,
	}

	if err := s.yields.Create(ctx, &rec); err != nil {
		return nil, err
	}

	s.logger.Info("yield created",
		zap.Uint("yield_id", rec.ID),
		zap.Uint("farmer_id", rec.FarmerID),
		zap.String("status", string(rec.Status)))

	return s.yields.GetDetail(ctx, rec.ID)
}

// Update overwrites every mutable field of the record. When the status
// changes in a way the announcement rules cover, an announcement and a
// notification row are written best-effort: their failure is logged and
// never fails the update itself.
func (s *Service) Update(ctx context.Context, id uint, in UpdateInput) (*models.YieldDetail, error) {
	// Validated before any read so a rejected update touches nothing.
	if !validArea(in.AreaHarvested) {
		return nil, fmt.Errorf("area harvested must be a positive number: %w", models.ErrInvalidArgument)
	}

	prior, err := s.yields.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rec := models.YieldRecord{
		ID:            id,
		FarmerID:      in.FarmerID,
		ProductID:     in.ProductID,
		FarmID:        in.FarmID,
		HarvestDate:   in.HarvestDate,
		Volume:        in.Volume,
		AreaHarvested: in.AreaHarvested,
		Value:         in.Value,
		Notes:         in.Notes,
		Images:        models.ImageList(in.Images),
		Status:        models.NormalizeYieldStatus(in.Status),
	}

	if err := s.yields.Update(ctx, &rec); err != nil {
		return nil, err
	}

	detail, err := s.yields.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	s.emitTransitionAnnouncement(ctx, prior.Status, detail)
	return detail, nil
}

// emitTransitionAnnouncement derives and persists the announcement for a
// status change. Best-effort only.
func (s *Service) emitTransitionAnnouncement(ctx context.Context, oldStatus models.YieldStatus, detail *models.YieldDetail) {
	content := DeriveAnnouncement(oldStatus, detail.Status,
		detail.FarmerName, detail.ProductName, detail.Volume, detail.AreaHarvested)
	if content == nil {
		return
	}

	ann := models.Announcement{
		Title:    content.Title,
		Message:  content.Message,
		Audience: models.AudienceFarmer,
		FarmerID: detail.FarmerID,
	}
	if err := s.announcements.CreateWithNotification(ctx, &ann); err != nil {
		s.logger.Warn("failed to record status announcement",
			zap.Uint("yield_id", detail.ID),
			zap.String("old_status", string(oldStatus)),
			zap.String("new_status", string(detail.Status)),
			zap.Error(err))
		return
	}

	s.logger.Info("status announcement recorded",
		zap.Uint("yield_id", detail.ID),
		zap.Uint("announcement_id", ann.ID),
		zap.String("title", ann.Title))
}

// Delete archives the record and removes the live row. Returns the number
// of records archived (always 1 on success).
func (s *Service) Delete(ctx context.Context, id uint) (int, error) {
	if err := s.yields.ArchiveAndDelete(ctx, id); err != nil {
		return 0, err
	}
	s.logger.Info("yield archived and deleted", zap.Uint("yield_id", id))
	return 1, nil
}

// DeleteByFarmer archives and deletes every yield record owned by the
// farmer. Partial progress is kept on failure; the count reflects records
// archived before the error.
func (s *Service) DeleteByFarmer(ctx context.Context, farmerID uint) (int, error) {
	ids, err := s.yields.ListIDsByFarmer(ctx, farmerID)
	if err != nil {
		return 0, err
	}
	return s.deleteAll(ctx, ids)
}

// DeleteByFarm archives and deletes every yield record declared on the farm.
func (s *Service) DeleteByFarm(ctx context.Context, farmID uint) (int, error) {
	ids, err := s.yields.ListIDsByFarm(ctx, farmID)
	if err != nil {
		return 0, err
	}
	return s.deleteAll(ctx, ids)
}

// DeleteByProduct archives and deletes every yield record declaring the
// product.
func (s *Service) DeleteByProduct(ctx context.Context, productID uint) (int, error) {
	ids, err := s.yields.ListIDsByProduct(ctx, productID)
	if err != nil {
		return 0, err
	}
	return s.deleteAll(ctx, ids)
}

func (s *Service) deleteAll(ctx context.Context, ids []uint) (int, error) {
	archived := 0
	for _, id := range ids {
		if err := s.yields.ArchiveAndDelete(ctx, id); err != nil {
			return archived, fmt.Errorf("cascade stopped at yield %d after %d archived: %w", id, archived, err)
		}
		archived++
	}
	return archived, nil
}

// Get returns one record joined with its display names.
func (s *Service) Get(ctx context.Context, id uint) (*models.YieldDetail, error) {
	return s.yields.GetDetail(ctx, id)
}

// List returns every record joined with display names, newest harvest first.
func (s *Service) List(ctx context.Context) ([]models.YieldDetail, error) {
	return s.yields.List(ctx)
}

func validArea(area float64) bool {
	return area > 0 && !math.IsInf(area, 0) && !math.IsNaN(area)
}
