package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/agrilink/internal/domain/models"
	"github.com/mamadbah2/agrilink/internal/repository/mongodb"
	repo "github.com/mamadbah2/agrilink/internal/repository/mysql"
)

const dateLayout = "2006-01-02"

// Service exposes the read-only aggregates behind dashboards and builds
// the daily snapshot the scheduler persists.
type Service struct {
	reports   repo.ReportRepository
	snapshots mongodb.SnapshotStore
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a reporting service instance. The snapshot store may be
// nil when snapshot history is disabled.
func NewService(reports repo.ReportRepository, snapshots mongodb.SnapshotStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		reports:   reports,
		snapshots: snapshots,
		logger:    logger,
		now:       time.Now,
	}
}

// VolumeBySector returns accepted volume grouped by sector.
func (s *Service) VolumeBySector(ctx context.Context) ([]models.SectorVolume, error) {
	return s.reports.VolumeBySector(ctx)
}

// VolumeByProduct returns accepted volume grouped by product.
func (s *Service) VolumeByProduct(ctx context.Context) ([]models.ProductVolume, error) {
	return s.reports.VolumeByProduct(ctx)
}

// VolumeByAssociation returns accepted volume grouped by association.
func (s *Service) VolumeByAssociation(ctx context.Context) ([]models.AssociationVolume, error) {
	return s.reports.VolumeByAssociation(ctx)
}

// StatusBreakdown returns record counts and volume per yield status.
func (s *Service) StatusBreakdown(ctx context.Context) ([]models.StatusCount, error) {
	return s.reports.StatusBreakdown(ctx)
}

// PendingQueue returns the yields awaiting review, oldest first.
func (s *Service) PendingQueue(ctx context.Context) ([]models.YieldRecord, error) {
	return s.reports.PendingQueue(ctx)
}

// SnapshotHistory returns the last persisted daily snapshots.
func (s *Service) SnapshotHistory(ctx context.Context, limit int64) ([]models.DailySnapshot, error) {
	if s.snapshots == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 30
	}
	return s.snapshots.LatestSnapshots(ctx, limit)
}

// CaptureDailySnapshot aggregates the current day and persists it to the
// snapshot store. Called by the scheduler.
func (s *Service) CaptureDailySnapshot(ctx context.Context) (*models.DailySnapshot, error) {
	day := s.now().UTC().Truncate(24 * time.Hour)

	recorded, err := s.reports.CountRecordedSince(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("count day's yields: %w", err)
	}

	statuses, err := s.reports.StatusBreakdown(ctx)
	if err != nil {
		return nil, fmt.Errorf("status breakdown: %w", err)
	}

	sectors, err := s.reports.VolumeBySector(ctx)
	if err != nil {
		return nil, fmt.Errorf("volume by sector: %w", err)
	}

	var pending int64
	for _, st := range statuses {
		if st.Status.Equals(models.YieldStatusPending) {
			pending = st.Records
		}
	}

	snapshot := models.DailySnapshot{
		Date:           day,
		YieldsRecorded: recorded,
		PendingReview:  pending,
		StatusCounts:   statuses,
		VolumeBySector: sectors,
		CreatedAt:      s.now().UTC(),
	}

	if s.snapshots != nil {
		if err := s.snapshots.SaveDailySnapshot(ctx, snapshot); err != nil {
			return nil, fmt.Errorf("persist snapshot: %w", err)
		}
	}

	s.logger.Info("daily snapshot captured",
		zap.String("date", day.Format(dateLayout)),
		zap.Int64("yields_recorded", recorded),
		zap.Int64("pending_review", pending))
	return &snapshot, nil
}

// SummaryText renders the current aggregates as plain text for the AI
// summary prompt.
func (s *Service) SummaryText(ctx context.Context) (string, error) {
	statuses, err := s.reports.StatusBreakdown(ctx)
	if err != nil {
		return "", err
	}
	sectors, err := s.reports.VolumeBySector(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Yield records by status:\n")
	if len(statuses) == 0 {
		b.WriteString("  none recorded yet\n")
	}
	for _, st := range statuses {
		fmt.Fprintf(&b, "  %s: %d records, %.2f kg\n", st.Status, st.Records, st.Volume)
	}
	b.WriteString("Accepted volume by sector:\n")
	if len(sectors) == 0 {
		b.WriteString("  none accepted yet\n")
	}
	for _, sec := range sectors {
		fmt.Fprintf(&b, "  %s: %.2f kg across %d records\n", sec.SectorName, sec.Volume, sec.Records)
	}
	return b.String(), nil
}
