package visit

import (
	"context"

	"github.com/BruksfildServices01/salon-queue/internal/models"
)

type Totals struct {
	Count   int
	Revenue int
}

type Repository interface {
	ListVisitsByUser(ctx context.Context, userID string) ([]models.Visit, error)
	GetVisit(ctx context.Context, id string) (*models.Visit, error)
	SetVisitRating(ctx context.Context, id string, rating int) (*models.Visit, error)
	SalonVisitTotals(ctx context.Context, salonID string) (Totals, error)
}
