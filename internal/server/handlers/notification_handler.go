package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	repo "github.com/mamadbah2/agrilink/internal/repository/mysql"
	"github.com/mamadbah2/agrilink/internal/server/middleware"
)

// NotificationHandler serves the farmer-facing notification feed fed by
// yield status transitions.
type NotificationHandler struct {
	announcements repo.AnnouncementRepository
	logger        *zap.Logger
}

// NewNotificationHandler constructs the HTTP adapter for notifications.
func NewNotificationHandler(announcements repo.AnnouncementRepository, logger *zap.Logger) *NotificationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationHandler{announcements: announcements, logger: logger}
}

// List returns the caller's notifications, newest first. Farmer accounts
// see their own feed.
func (h *NotificationHandler) List(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok || caller.FarmerID == nil {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "forbidden", "message": "no farmer profile linked to this account"})
		return
	}

	items, err := h.announcements.ListByFarmer(c.Request.Context(), *caller.FarmerID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "notifications retrieved", items)
}

// MarkRead flags one of the caller's notifications as read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok || caller.FarmerID == nil {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "forbidden", "message": "no farmer profile linked to this account"})
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.announcements.MarkRead(c.Request.Context(), *caller.FarmerID, id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "notification marked read", nil)
}
