package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/agrilink/internal/domain/models"
	"github.com/mamadbah2/agrilink/internal/server/middleware"
	yieldsvc "github.com/mamadbah2/agrilink/internal/service/yield"
)

// YieldHandler exposes the yield record lifecycle over HTTP.
type YieldHandler struct {
	svc    *yieldsvc.Service
	logger *zap.Logger
}

// NewYieldHandler constructs the HTTP adapter for yields.
func NewYieldHandler(svc *yieldsvc.Service, logger *zap.Logger) *YieldHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &YieldHandler{svc: svc, logger: logger}
}

type yieldRequest struct {
	FarmerID      uint     `json:"farmer_id" binding:"required"`
	ProductID     uint     `json:"product_id" binding:"required"`
	FarmID        uint     `json:"farm_id" binding:"required"`
	HarvestDate   string   `json:"harvest_date" binding:"required"`
	Volume        float64  `json:"volume"`
	AreaHarvested float64  `json:"area_harvested"`
	Value         *float64 `json:"value"`
	Notes         string   `json:"notes"`
	Images        []string `json:"images"`
	Status        string   `json:"status"`
}

// List returns every yield record with display names.
func (h *YieldHandler) List(c *gin.Context) {
	details, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "yields retrieved", details)
}

// Get returns one yield record.
func (h *YieldHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	detail, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "yield retrieved", detail)
}

// Create declares a new harvest. The caller's role decides the initial
// status.
func (h *YieldHandler) Create(c *gin.Context) {
	var req yieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid yield payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid_argument", "message": "invalid request body"})
		return
	}

	harvestDate, err := parseHarvestDate(req.HarvestDate)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized", "message": "caller not resolved"})
		return
	}

	detail, err := h.svc.Create(c.Request.Context(), yieldsvc.CreateInput{
		FarmerID:      req.FarmerID,
		ProductID:     req.ProductID,
		FarmID:        req.FarmID,
		HarvestDate:   harvestDate,
		Volume:        req.Volume,
		AreaHarvested: req.AreaHarvested,
		Value:         req.Value,
		Notes:         req.Notes,
		Images:        req.Images,
	}, caller.Role)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusCreated, "yield created", detail)
}

// Update overwrites every mutable field of the record, possibly changing
// its status.
func (h *YieldHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req yieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid yield payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid_argument", "message": "invalid request body"})
		return
	}

	harvestDate, err := parseHarvestDate(req.HarvestDate)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	detail, err := h.svc.Update(c.Request.Context(), id, yieldsvc.UpdateInput{
		FarmerID:      req.FarmerID,
		ProductID:     req.ProductID,
		FarmID:        req.FarmID,
		HarvestDate:   harvestDate,
		Volume:        req.Volume,
		AreaHarvested: req.AreaHarvested,
		Value:         req.Value,
		Notes:         req.Notes,
		Images:        req.Images,
		Status:        req.Status,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "yield updated", detail)
}

// Delete archives the record and removes the live row.
func (h *YieldHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	archived, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "yield archived", gin.H{"archived_count": archived})
}

func parseHarvestDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("harvest_date %q not in YYYY-MM-DD or RFC3339: %w", raw, models.ErrInvalidArgument)
}
