package offer

import (
	"context"

	"github.com/BruksfildServices01/salon-queue/internal/models"
)

type Repository interface {
	ListActiveOffers(ctx context.Context, salonID string) ([]models.Offer, error)
	GetOffer(ctx context.Context, id string) (*models.Offer, error)
	CreateOffer(ctx context.Context, o *models.Offer) error
	UpdateOffer(ctx context.Context, o *models.Offer) error
	DeleteOffer(ctx context.Context, id string) (bool, error)

	// RecordClick adds one click. No bound, no decay.
	RecordClick(ctx context.Context, id string) error
	SumOfferClicks(ctx context.Context, salonID string) (int, error)
}
