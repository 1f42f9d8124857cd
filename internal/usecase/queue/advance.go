package queue

import (
	"context"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/salon-queue/internal/audit"
	"github.com/BruksfildServices01/salon-queue/internal/clock"
	domain "github.com/BruksfildServices01/salon-queue/internal/domain/queue"
	"github.com/BruksfildServices01/salon-queue/internal/domain/salon"
	"github.com/BruksfildServices01/salon-queue/internal/domain/user"
	"github.com/BruksfildServices01/salon-queue/internal/infra/cache"
	"github.com/BruksfildServices01/salon-queue/internal/metrics"
	"github.com/BruksfildServices01/salon-queue/internal/models"
	"github.com/BruksfildServices01/salon-queue/internal/notify"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type AdvanceInput struct {
	EntryID string
	Target  domain.Status
	Actor   user.Actor
}

type AdvanceResult struct {
	Entry models.QueueEntry
	// set when completed
	Visit *models.Visit
	// set when called
	Notification *notify.Notification
}

// ======================================================
// USE CASE
// ======================================================

// AdvanceEntry moves an entry through call, completion or no-show.
type AdvanceEntry struct {
	store     domain.Store
	salons    salon.Repository
	users     user.Repository
	publisher notify.Publisher
	cache     cache.QueueCache
	audit     *audit.Dispatcher
	clock     clock.Clock
}

func NewAdvanceEntry(
	store domain.Store,
	salons salon.Repository,
	users user.Repository,
	publisher notify.Publisher,
	cache cache.QueueCache,
	audit *audit.Dispatcher,
	clock clock.Clock,
) *AdvanceEntry {
	return &AdvanceEntry{
		store:     store,
		salons:    salons,
		users:     users,
		publisher: publisher,
		cache:     cache,
		audit:     audit,
		clock:     clock,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *AdvanceEntry) Execute(
	ctx context.Context,
	in AdvanceInput,
) (*AdvanceResult, error) {

	// --------------------------------------------------
	// Ownership
	// --------------------------------------------------
	current, err := uc.store.Get(ctx, in.EntryID)
	if err != nil {
		return nil, err
	}

	shop, err := uc.salons.GetSalon(ctx, current.SalonID)
	if err != nil {
		return nil, err
	}
	if err := in.Actor.RequireManage(shop); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Transition (+ visit and points on completion)
	// --------------------------------------------------
	now := uc.clock.Now()
	res, err := uc.store.Advance(ctx, in.EntryID, in.Target, now)
	if err != nil {
		return nil, err
	}

	metrics.QueueTransitions.WithLabelValues(string(in.Target)).Inc()
	if res.Credited && res.Visit != nil {
		metrics.LoyaltyPointsAwarded.Add(float64(res.Visit.PointsEarned))
	}
	uc.cache.Invalidate(ctx, res.Entry.SalonID)

	out := &AdvanceResult{Entry: res.Entry, Visit: res.Visit}

	// --------------------------------------------------
	// Side effects
	// --------------------------------------------------
	if in.Target == domain.StatusInProgress {
		n := uc.buildNotification(ctx, &res.Entry, shop, now)
		out.Notification = &n
		uc.publish(ctx, n)
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  res.Entry.SalonID,
		UserID:   &in.Actor.ID,
		Action:   auditAction(in.Target),
		Entity:   "queue_entry",
		EntityID: &res.Entry.ID,
	})

	return out, nil
}

func (uc *AdvanceEntry) buildNotification(
	ctx context.Context,
	e *models.QueueEntry,
	shop *models.Salon,
	now time.Time,
) notify.Notification {

	var customer *models.User
	if e.UserID != nil {
		u, err := uc.users.GetUser(ctx, *e.UserID)
		if err == nil {
			customer = u
		}
	}
	return notify.Build(e, customer, shop, now)
}

// publish never fails the call; delivery is best effort.
func (uc *AdvanceEntry) publish(ctx context.Context, n notify.Notification) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()

	if err := uc.publisher.Publish(pubCtx, n); err != nil {
		zlog.Warn().Err(err).Str("entry_id", n.EntryID).Msg("notification publish failed")
	}
}

func auditAction(target domain.Status) string {
	switch target {
	case domain.StatusInProgress:
		return "queue_called"
	case domain.StatusCompleted:
		return "queue_completed"
	case domain.StatusNoShow:
		return "queue_no_show"
	default:
		return "queue_advanced"
	}
}
