package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/agrilink/internal/domain/models"
	registrysvc "github.com/mamadbah2/agrilink/internal/service/registry"
)

// CatalogHandler exposes product, sector and association CRUD.
type CatalogHandler struct {
	svc    *registrysvc.Service
	logger *zap.Logger
}

// NewCatalogHandler constructs the HTTP adapter for the catalog entities.
func NewCatalogHandler(svc *registrysvc.Service, logger *zap.Logger) *CatalogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler{svc: svc, logger: logger}
}

type productRequest struct {
	Name     string `json:"name" binding:"required"`
	SectorID uint   `json:"sector_id" binding:"required"`
	Unit     string `json:"unit"`
}

// ListProducts returns all products.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.svc.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "products retrieved", products)
}

// GetProduct returns one product.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	product, err := h.svc.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "product retrieved", product)
}

// CreateProduct registers a product under a sector.
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid product payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid_argument", "message": "invalid request body"})
		return
	}

	product := models.Product{Name: req.Name, SectorID: req.SectorID, Unit: req.Unit}
	if err := h.svc.CreateProduct(c.Request.Context(), &product); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusCreated, "product created", product)
}

// UpdateProduct overwrites the product's fields.
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid product payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid_argument", "message": "invalid request body"})
		return
	}

	product := models.Product{ID: id, Name: req.Name, SectorID: req.SectorID, Unit: req.Unit}
	if err := h.svc.UpdateProduct(c.Request.Context(), &product); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "product updated", product)
}

// DeleteProduct removes a product after archiving the yields declaring it.
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	archived, err := h.svc.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "product deleted", gin.H{"archived_count": archived})
}

type namedRequest struct {
	Name   string `json:"name" binding:"required"`
	Region string `json:"region"`
}

// ListSectors returns all sectors.
func (h *CatalogHandler) ListSectors(c *gin.Context) {
	sectors, err := h.svc.ListSectors(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "sectors retrieved", sectors)
}

// CreateSector registers a sector.
func (h *CatalogHandler) CreateSector(c *gin.Context) {
	var req namedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid_argument", "message": "invalid request body"})
		return
	}
	sector := models.Sector{Name: req.Name}
	if err := h.svc.CreateSector(c.Request.Context(), &sector); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusCreated, "sector created", sector)
}

// UpdateSector renames a sector.
func (h *CatalogHandler) UpdateSector(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req namedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid_argument", "message": "invalid request body"})
		return
	}
	sector := models.Sector{ID: id, Name: req.Name}
	if err := h.svc.UpdateSector(c.Request.Context(), &sector); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "sector updated", sector)
}

// DeleteSector removes a sector.
func (h *CatalogHandler) DeleteSector(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteSector(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "sector deleted", nil)
}

// ListAssociations returns all associations.
func (h *CatalogHandler) ListAssociations(c *gin.Context) {
	associations, err := h.svc.ListAssociations(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "associations retrieved", associations)
}

// CreateAssociation registers an association.
func (h *CatalogHandler) CreateAssociation(c *gin.Context) {
	var req namedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid_argument", "message": "invalid request body"})
		return
	}
	association := models.Association{Name: req.Name, Region: req.Region}
	if err := h.svc.CreateAssociation(c.Request.Context(), &association); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusCreated, "association created", association)
}

// UpdateAssociation overwrites an association's fields.
func (h *CatalogHandler) UpdateAssociation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req namedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid_argument", "message": "invalid request body"})
		return
	}
	association := models.Association{ID: id, Name: req.Name, Region: req.Region}
	if err := h.svc.UpdateAssociation(c.Request.Context(), &association); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "association updated", association)
}

// DeleteAssociation removes an association.
func (h *CatalogHandler) DeleteAssociation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteAssociation(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "association deleted", nil)
}
