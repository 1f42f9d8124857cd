package queue

import (
	"context"

	domain "github.com/BruksfildServices01/salon-queue/internal/domain/queue"
	"github.com/BruksfildServices01/salon-queue/internal/domain/salon"
	"github.com/BruksfildServices01/salon-queue/internal/dto"
	"github.com/BruksfildServices01/salon-queue/internal/httperr"
)

// GetQueueStatus answers "where am I in line?" for a signed-in customer.
type GetQueueStatus struct {
	store  domain.Store
	salons salon.Repository
}

func NewGetQueueStatus(store domain.Store, salons salon.Repository) *GetQueueStatus {
	return &GetQueueStatus{store: store, salons: salons}
}

// Execute returns nil when the user is not waiting at the salon.
func (uc *GetQueueStatus) Execute(
	ctx context.Context,
	userID string,
	salonID string,
) (*dto.QueueStatusDTO, error) {

	if salonID == "" {
		return nil, httperr.ErrInvalidInput
	}

	e, err := uc.store.PositionOf(ctx, userID, salonID)
	if err != nil || e == nil {
		return nil, err
	}

	duration := domain.DefaultServiceDuration
	if svc, err := uc.salons.GetService(ctx, e.SalonID, e.ServiceID); err == nil {
		duration = svc.Duration
	}

	wait := domain.EstimatedWait(e.Position, duration)
	return &dto.QueueStatusDTO{
		QueueEntry:           *e,
		EstimatedWaitMinutes: wait.Minutes,
		IsNext:               wait.IsNext,
	}, nil
}
