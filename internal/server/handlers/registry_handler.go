package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/agrilink/internal/domain/models"
	registrysvc "github.com/mamadbah2/agrilink/internal/service/registry"
)

// RegistryHandler exposes farmer and farm CRUD over HTTP.
type RegistryHandler struct {
	svc    *registrysvc.Service
	logger *zap.Logger
}

// NewRegistryHandler constructs the HTTP adapter for farmers and farms.
func NewRegistryHandler(svc *registrysvc.Service, logger *zap.Logger) *RegistryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistryHandler{svc: svc, logger: logger}
}

type farmerRequest struct {
	FirstName     string `json:"first_name" binding:"required"`
	LastName      string `json:"last_name" binding:"required"`
	Phone         string `json:"phone"`
	AssociationID *uint  `json:"association_id"`
	SectorID      *uint  `json:"sector_id"`
}

// ListFarmers returns all farmers.
func (h *RegistryHandler) ListFarmers(c *gin.Context) {
	farmers, err := h.svc.ListFarmers(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "farmers retrieved", farmers)
}

// GetFarmer returns one farmer.
func (h *RegistryHandler) GetFarmer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	farmer, err := h.svc.GetFarmer(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "farmer retrieved", farmer)
}

// CreateFarmer registers a producer.
func (h *RegistryHandler) CreateFarmer(c *gin.Context) {
	var req farmerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid farmer payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid_argument", "message": "invalid request body"})
		return
	}

	farmer := models.Farmer{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		AssociationID: req.AssociationID,
		SectorID:      req.SectorID,
	}
	if err := h.svc.CreateFarmer(c.Request.Context(), &farmer); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusCreated, "farmer created", farmer)
}

// UpdateFarmer overwrites the farmer's fields.
func (h *RegistryHandler) UpdateFarmer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req farmerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid farmer payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid_argument", "message": "invalid request body"})
		return
	}

	farmer := models.Farmer{
		ID:            id,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		AssociationID: req.AssociationID,
		SectorID:      req.SectorID,
	}
	if err := h.svc.UpdateFarmer(c.Request.Context(), &farmer); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "farmer updated", farmer)
}

// DeleteFarmer removes a farmer after archiving their harvest history.
func (h *RegistryHandler) DeleteFarmer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	archived, err := h.svc.DeleteFarmer(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "farmer deleted", gin.H{"archived_count": archived})
}

type farmRequest struct {
	Name      string  `json:"name" binding:"required"`
	Location  string  `json:"location"`
	AreaTotal float64 `json:"area_total"`
	FarmerID  uint    `json:"farmer_id" binding:"required"`
}

// ListFarms returns all farms.
func (h *RegistryHandler) ListFarms(c *gin.Context) {
	farms, err := h.svc.ListFarms(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "farms retrieved", farms)
}

// GetFarm returns one farm.
func (h *RegistryHandler) GetFarm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	farm, err := h.svc.GetFarm(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "farm retrieved", farm)
}

// CreateFarm registers a production site.
func (h *RegistryHandler) CreateFarm(c *gin.Context) {
	var req farmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid farm payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid_argument", "message": "invalid request body"})
		return
	}

	farm := models.Farm{
		Name:      req.Name,
		Location:  req.Location,
		AreaTotal: req.AreaTotal,
		FarmerID:  req.FarmerID,
	}
	if err := h.svc.CreateFarm(c.Request.Context(), &farm); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusCreated, "farm created", farm)
}

// UpdateFarm overwrites the farm's fields.
func (h *RegistryHandler) UpdateFarm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req farmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid farm payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid_argument", "message": "invalid request body"})
		return
	}

	farm := models.Farm{
		ID:        id,
		Name:      req.Name,
		Location:  req.Location,
		AreaTotal: req.AreaTotal,
		FarmerID:  req.FarmerID,
	}
	if err := h.svc.UpdateFarm(c.Request.Context(), &farm); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "farm updated", farm)
}

// DeleteFarm removes a farm after archiving its harvest history.
func (h *RegistryHandler) DeleteFarm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	archived, err := h.svc.DeleteFarm(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "farm deleted", gin.H{"archived_count": archived})
}
