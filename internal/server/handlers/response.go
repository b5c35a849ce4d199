package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/agrilink/internal/domain/models"
)

// respondOK writes the standard success envelope.
func respondOK(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// respondError maps an error onto the taxonomy and writes the failure
// envelope. Driver details stay in the logs.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var storageErr *models.StorageError
	var depErr *models.DependencyError

	switch {
	case errors.Is(err, models.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false, "error": "invalid_argument", "message": err.Error(),
		})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false, "error": "not_found", "message": err.Error(),
		})
	case errors.As(err, &depErr):
		logger.Error("dependency failure", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false, "error": "dependency_error",
			"message": "an external dependency failed",
		})
	case errors.As(err, &storageErr):
		logger.Error("storage failure", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false, "error": "storage_error",
			"message": "the operation could not be persisted",
		})
	default:
		logger.Error("unexpected failure", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false, "error": "internal", "message": "unexpected error",
		})
	}
}

// pathID parses the :id path parameter.
func pathID(c *gin.Context) (uint, bool) {
	value, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || value == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false, "error": "invalid_argument", "message": "id must be a positive integer",
		})
		return 0, false
	}
	return uint(value), true
}
