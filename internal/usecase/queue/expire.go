package queue

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	zlog "github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/salon-queue/internal/audit"
	"github.com/BruksfildServices01/salon-queue/internal/clock"
	domain "github.com/BruksfildServices01/salon-queue/internal/domain/queue"
	"github.com/BruksfildServices01/salon-queue/internal/infra/cache"
	"github.com/BruksfildServices01/salon-queue/internal/metrics"
)

// ExpireStale marks entries that waited longer than ttl as no-show.
type ExpireStale struct {
	store domain.Store
	cache cache.QueueCache
	audit *audit.Dispatcher
	clock clock.Clock
	ttl   time.Duration
}

func NewExpireStale(
	store domain.Store,
	cache cache.QueueCache,
	audit *audit.Dispatcher,
	clock clock.Clock,
	ttl time.Duration,
) *ExpireStale {
	return &ExpireStale{
		store: store,
		cache: cache,
		audit: audit,
		clock: clock,
		ttl:   ttl,
	}
}

func (uc *ExpireStale) Execute(ctx context.Context) (int, error) {
	now := uc.clock.Now()

	expired, err := uc.store.ExpireWaiting(ctx, now.Add(-uc.ttl), now)

	touched := make(map[string]bool)
	for i := range expired {
		e := expired[i]
		touched[e.SalonID] = true
		uc.audit.Dispatch(audit.Event{
			SalonID:  e.SalonID,
			Action:   "queue_expired",
			Entity:   "queue_entry",
			EntityID: &e.ID,
		})
	}
	for salonID := range touched {
		uc.cache.Invalidate(ctx, salonID)
	}

	metrics.QueueExpired.Add(float64(len(expired)))
	return len(expired), err
}

// StartSweeper runs uc on schedule (cron spec or "@every 5m").
func StartSweeper(schedule string, uc *ExpireStale) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := uc.Execute(ctx)
		if err != nil {
			zlog.Error().Err(err).Int("expired", n).Msg("queue sweep failed")
			return
		}
		if n > 0 {
			zlog.Info().Int("expired", n).Msg("stale queue entries marked no-show")
		}
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}
