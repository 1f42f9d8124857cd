package salon

import (
	"context"

	"github.com/BruksfildServices01/salon-queue/internal/models"
)

type Repository interface {
	// -------- Salon --------
	ListSalons(ctx context.Context) ([]models.Salon, error)
	GetSalon(ctx context.Context, id string) (*models.Salon, error)
	ListSalonsByOwner(ctx context.Context, ownerID string) ([]models.Salon, error)
	CreateSalon(ctx context.Context, s *models.Salon) error
	UpdateSalon(ctx context.Context, s *models.Salon) error

	// -------- Service --------
	ListServices(ctx context.Context, salonID string) ([]models.Service, error)
	GetService(ctx context.Context, salonID, serviceID string) (*models.Service, error)
	// FirstService is the oldest service of the salon.
	FirstService(ctx context.Context, salonID string) (*models.Service, error)
	CreateService(ctx context.Context, s *models.Service) error
}
