package yield

import (
	"fmt"

	"github.com/mamadbah2/agrilink/internal/domain/models"
)

// AnnouncementContent is the farmer-facing message derived from a status
// transition.
type AnnouncementContent struct {
	Title   string
	Message string
}

// DeriveAnnouncement decides whether a yield status transition should
// produce a farmer-facing announcement, and composes it. Returns nil when
// the transition carries no message. Pure: no I/O, no side effects.
//
// Statuses are compared case-insensitively. Identity transitions and any
// transition not listed below stay silent.
func DeriveAnnouncement(oldStatus, newStatus models.YieldStatus, farmerName, productName string, volume, area float64) *AnnouncementContent {
	if oldStatus.Equals(newStatus) {
		return nil
	}

	from := models.NormalizeYieldStatus(string(oldStatus))
	to := models.NormalizeYieldStatus(string(newStatus))

	switch to {
	case models.YieldStatusPending:
		// Only a rejected declaration coming back for review is worth a
		// message. Initial creation never reaches this path.
		if from != models.YieldStatusRejected {
			return nil
		}
		return &AnnouncementContent{
			Title: "Harvest Resubmitted",
			Message: fmt.Sprintf(
				"Hello %s, your %s harvest declaration has been resubmitted and is back in the review queue.",
				farmerName, productName),
		}

	case models.YieldStatusAccepted:
		switch from {
		case models.YieldStatusPending:
			return &AnnouncementContent{
				Title: "Harvest Accepted! ✅",
				Message: fmt.Sprintf(
					"Hello %s, your %s harvest has been accepted: %.2f kg over %.2f ha.",
					farmerName, productName, volume, area),
			}
		case models.YieldStatusRejected:
			return &AnnouncementContent{
				Title: "Harvest Accepted! ✅",
				Message: fmt.Sprintf(
					"Hello %s, after a second review your %s harvest was accepted: %.2f kg over %.2f ha.",
					farmerName, productName, volume, area),
			}
		}
		return nil

	case models.YieldStatusRejected:
		if from != models.YieldStatusPending && from != models.YieldStatusAccepted {
			return nil
		}
		return &AnnouncementContent{
			Title: "Harvest Status Updated",
			Message: fmt.Sprintf(
				"Hello %s, your %s harvest declaration was rejected. Please contact support or resubmit it with corrections.",
				farmerName, productName),
		}
	}

	return nil
}
