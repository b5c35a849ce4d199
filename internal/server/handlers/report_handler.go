package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	reportingsvc "github.com/mamadbah2/agrilink/internal/service/reporting"
)

// ReportHandler exposes the dashboard aggregates.
type ReportHandler struct {
	svc    *reportingsvc.Service
	logger *zap.Logger
}

// NewReportHandler constructs the HTTP adapter for reports.
func NewReportHandler(svc *reportingsvc.Service, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger}
}

// VolumeBySector returns accepted volume grouped by sector.
func (h *ReportHandler) VolumeBySector(c *gin.Context) {
	rows, err := h.svc.VolumeBySector(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "volume by sector", rows)
}

// VolumeByProduct returns accepted volume grouped by product.
func (h *ReportHandler) VolumeByProduct(c *gin.Context) {
	rows, err := h.svc.VolumeByProduct(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "volume by product", rows)
}

// VolumeByAssociation returns accepted volume grouped by association.
func (h *ReportHandler) VolumeByAssociation(c *gin.Context) {
	rows, err := h.svc.VolumeByAssociation(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "volume by association", rows)
}

// StatusBreakdown returns record counts per status.
func (h *ReportHandler) StatusBreakdown(c *gin.Context) {
	rows, err := h.svc.StatusBreakdown(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "status breakdown", rows)
}

// PendingQueue returns the review backlog, oldest first.
func (h *ReportHandler) PendingQueue(c *gin.Context) {
	rows, err := h.svc.PendingQueue(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "pending review queue", rows)
}

// SnapshotHistory returns the persisted daily snapshots.
func (h *ReportHandler) SnapshotHistory(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "30"), 10, 64)
	snapshots, err := h.svc.SnapshotHistory(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "snapshot history", snapshots)
}
