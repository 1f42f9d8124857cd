package queue

import (
	"context"
	"encoding/json"

	zlog "github.com/rs/zerolog/log"

	domain "github.com/BruksfildServices01/salon-queue/internal/domain/queue"
	"github.com/BruksfildServices01/salon-queue/internal/domain/salon"
	"github.com/BruksfildServices01/salon-queue/internal/domain/user"
	"github.com/BruksfildServices01/salon-queue/internal/dto"
	"github.com/BruksfildServices01/salon-queue/internal/infra/cache"
	"github.com/BruksfildServices01/salon-queue/internal/models"
)

const (
	anonymousName      = "Anonymous"
	unknownUserName    = "Unknown User"
	generalServiceName = "General Service"
)

// ListQueue renders a salon's board. Boards are polled, so the rendered
// snapshot is cached until the next mutation or the cache TTL.
type ListQueue struct {
	store  domain.Store
	salons salon.Repository
	users  user.Repository
	cache  cache.QueueCache
}

func NewListQueue(
	store domain.Store,
	salons salon.Repository,
	users user.Repository,
	cache cache.QueueCache,
) *ListQueue {
	return &ListQueue{
		store:  store,
		salons: salons,
		users:  users,
		cache:  cache,
	}
}

func (uc *ListQueue) Execute(ctx context.Context, salonID string) ([]dto.QueueEntryDTO, error) {
	if raw, ok := uc.cache.Get(ctx, salonID); ok {
		var cached []dto.QueueEntryDTO
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	}

	if _, err := uc.salons.GetSalon(ctx, salonID); err != nil {
		return nil, err
	}

	version, cacheable := uc.cache.Version(ctx, salonID)

	entries, err := uc.store.ListBySalon(ctx, salonID)
	if err != nil {
		return nil, err
	}

	services, err := uc.salons.ListServices(ctx, salonID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Service, len(services))
	for _, s := range services {
		byID[s.ID] = s
	}

	names := make(map[string]string)
	out := make([]dto.QueueEntryDTO, 0, len(entries))

	for _, e := range entries {
		row := dto.QueueEntryDTO{
			QueueEntry:  e,
			UserName:    uc.userName(ctx, e.UserID, names),
			ServiceName: generalServiceName,
		}

		duration := domain.DefaultServiceDuration
		if svc, ok := byID[e.ServiceID]; ok {
			row.ServiceName = svc.Name
			duration = svc.Duration
		}

		if domain.Status(e.Status) == domain.StatusWaiting {
			wait := domain.EstimatedWait(e.Position, duration)
			row.EstimatedWaitMinutes = &wait.Minutes
			row.IsNext = &wait.IsNext
		}

		out = append(out, row)
	}

	if !cacheable {
		return out, nil
	}
	if raw, err := json.Marshal(out); err == nil {
		uc.cache.Set(ctx, salonID, version, raw)
	} else {
		zlog.Warn().Err(err).Msg("queue snapshot not cached")
	}

	return out, nil
}

func (uc *ListQueue) userName(ctx context.Context, userID *string, seen map[string]string) string {
	if userID == nil {
		return unknownUserName
	}
	if name, ok := seen[*userID]; ok {
		return name
	}

	name := unknownUserName
	if u, err := uc.users.GetUser(ctx, *userID); err == nil {
		name = u.DisplayName()
		if name == "" {
			name = anonymousName
		}
	}
	seen[*userID] = name
	return name
}
