package visit

import (
	"time"

	"github.com/BruksfildServices01/salon-queue/internal/httperr"
	"github.com/BruksfildServices01/salon-queue/internal/models"
)

// PointsPerVisit is the fixed loyalty award for a completed visit.
const PointsPerVisit = 10

// FromCompletedEntry builds the billing record for a completed queue entry.
// A missing service bills zero.
func FromCompletedEntry(e *models.QueueEntry, svc *models.Service, now time.Time) models.Visit {
	amount := 0
	if svc != nil {
		amount = svc.Price
	}

	return models.Visit{
		ID:           models.NewID(),
		UserID:       e.UserID,
		SalonID:      e.SalonID,
		ServiceID:    e.ServiceID,
		QueueID:      e.ID,
		TotalAmount:  amount,
		PointsEarned: PointsPerVisit,
		VisitDate:    now,
	}
}

func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return httperr.ErrInvalidInput
	}
	return nil
}
