package queue

import (
	"context"

	"github.com/BruksfildServices01/salon-queue/internal/audit"
	domain "github.com/BruksfildServices01/salon-queue/internal/domain/queue"
	"github.com/BruksfildServices01/salon-queue/internal/domain/salon"
	"github.com/BruksfildServices01/salon-queue/internal/domain/user"
	"github.com/BruksfildServices01/salon-queue/internal/httperr"
	"github.com/BruksfildServices01/salon-queue/internal/infra/cache"
)

// RemoveEntry lets a customer leave the line, or an owner drop an entry.
type RemoveEntry struct {
	store  domain.Store
	salons salon.Repository
	cache  cache.QueueCache
	audit  *audit.Dispatcher
}

func NewRemoveEntry(
	store domain.Store,
	salons salon.Repository,
	cache cache.QueueCache,
	audit *audit.Dispatcher,
) *RemoveEntry {
	return &RemoveEntry{
		store:  store,
		salons: salons,
		cache:  cache,
		audit:  audit,
	}
}

func (uc *RemoveEntry) Execute(
	ctx context.Context,
	entryID string,
	actor user.Actor,
) error {

	e, err := uc.store.Get(ctx, entryID)
	if err != nil {
		return err
	}

	if !e.BelongsTo(actor.ID) {
		shop, err := uc.salons.GetSalon(ctx, e.SalonID)
		if err != nil {
			return err
		}
		if err := actor.RequireManage(shop); err != nil {
			return err
		}
	}

	removed, err := uc.store.Remove(ctx, entryID)
	if err != nil {
		return err
	}
	if !removed {
		return httperr.ErrQueueEntryNotFound
	}

	uc.cache.Invalidate(ctx, e.SalonID)

	uc.audit.Dispatch(audit.Event{
		SalonID:  e.SalonID,
		UserID:   &actor.ID,
		Action:   "queue_removed",
		Entity:   "queue_entry",
		EntityID: &e.ID,
		Metadata: map[string]any{"status": e.Status},
	})

	return nil
}
