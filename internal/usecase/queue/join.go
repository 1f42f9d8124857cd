package queue

import (
	"context"

	zlog "github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/salon-queue/internal/audit"
	"github.com/BruksfildServices01/salon-queue/internal/clock"
	domain "github.com/BruksfildServices01/salon-queue/internal/domain/queue"
	"github.com/BruksfildServices01/salon-queue/internal/domain/salon"
	"github.com/BruksfildServices01/salon-queue/internal/httperr"
	"github.com/BruksfildServices01/salon-queue/internal/infra/cache"
	"github.com/BruksfildServices01/salon-queue/internal/metrics"
	"github.com/BruksfildServices01/salon-queue/internal/models"
)

type JoinQueue struct {
	store  domain.Store
	salons salon.Repository
	cache  cache.QueueCache
	audit  *audit.Dispatcher
	clock  clock.Clock
}

func NewJoinQueue(
	store domain.Store,
	salons salon.Repository,
	cache cache.QueueCache,
	audit *audit.Dispatcher,
	clock clock.Clock,
) *JoinQueue {
	return &JoinQueue{
		store:  store,
		salons: salons,
		cache:  cache,
		audit:  audit,
		clock:  clock,
	}
}

func (uc *JoinQueue) Execute(
	ctx context.Context,
	in domain.JoinInput,
) (*models.QueueEntry, error) {

	// --------------------------------------------------
	// Input
	// --------------------------------------------------
	in, err := in.Normalize()
	if err != nil {
		return nil, err
	}

	if _, err := uc.salons.GetSalon(ctx, in.SalonID); err != nil {
		return nil, err
	}

	serviceID, err := uc.resolveService(ctx, in)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Insert (position assigned by the store)
	// --------------------------------------------------
	e, err := domain.NewEntry(in.SalonID, in.UserID, serviceID, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := uc.store.Join(ctx, e); err != nil {
		outcome := "error"
		if httperr.IsBusiness(err, httperr.CodeDuplicateEntry) {
			outcome = "duplicate"
		}
		metrics.QueueJoins.WithLabelValues(outcome).Inc()
		return nil, err
	}

	metrics.QueueJoins.WithLabelValues("ok").Inc()
	uc.cache.Invalidate(ctx, e.SalonID)

	uc.audit.Dispatch(audit.Event{
		SalonID:  e.SalonID,
		UserID:   e.UserID,
		Action:   "queue_joined",
		Entity:   "queue_entry",
		EntityID: &e.ID,
		Metadata: map[string]any{"position": e.Position, "serviceId": e.ServiceID},
	})

	zlog.Debug().
		Str("salon_id", e.SalonID).
		Str("entry_id", e.ID).
		Int("position", e.Position).
		Msg("queue joined")

	return e, nil
}

// resolveService picks the requested service or, for the sentinel, the
// salon's oldest one. A service of another salon is invalid input.
func (uc *JoinQueue) resolveService(ctx context.Context, in domain.JoinInput) (string, error) {
	var (
		svc *models.Service
		err error
	)
	if in.WantsDefaultService() {
		svc, err = uc.salons.FirstService(ctx, in.SalonID)
	} else {
		svc, err = uc.salons.GetService(ctx, in.SalonID, in.ServiceID)
	}

	if httperr.IsBusiness(err, httperr.CodeServiceNotFound) {
		return "", httperr.ErrInvalidInput
	}
	if err != nil {
		return "", err
	}
	return svc.ID, nil
}
