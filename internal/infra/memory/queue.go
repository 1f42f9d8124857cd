package memory

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-queue/internal/domain/queue"
	"github.com/BruksfildServices01/salon-queue/internal/domain/visit"
	"github.com/BruksfildServices01/salon-queue/internal/httperr"
	"github.com/BruksfildServices01/salon-queue/internal/models"
)

func (s *Store) Join(ctx context.Context, e *models.QueueEntry) error {
	if err := ctx.Err(); err != nil {
		return httperr.ErrStoreUnavailable
	}

	unlock := s.salonLocks.Lock(e.SalonID)
	defer unlock()

	s.mu.RLock()
	if e.UserID != nil {
		for _, other := range s.entries {
			if other.SalonID == e.SalonID &&
				other.Status == string(domain.StatusWaiting) &&
				other.BelongsTo(*e.UserID) {
				s.mu.RUnlock()
				return httperr.ErrDuplicateEntry
			}
		}
	}
	waiting := s.countWaitingLocked(e.SalonID)
	s.mu.RUnlock()

	e.Position = waiting + 1

	s.mu.Lock()
	cp := *e
	s.entries[cp.ID] = &cp
	s.track(cp.ID)
	s.mu.Unlock()

	return nil
}

func (s *Store) Advance(
	ctx context.Context,
	entryID string,
	target domain.Status,
	now time.Time,
) (*domain.Advanced, error) {
	if err := ctx.Err(); err != nil {
		return nil, httperr.ErrStoreUnavailable
	}

	salonID, err := s.salonOf(entryID)
	if err != nil {
		return nil, err
	}

	unlock := s.salonLocks.Lock(salonID)
	defer unlock()

	return s.advanceLocked(entryID, target, now)
}

// advanceLocked must be called with the salon lock of the entry held.
func (s *Store) advanceLocked(entryID string, target domain.Status, now time.Time) (*domain.Advanced, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.entries[entryID]
	if !ok {
		return nil, httperr.ErrQueueEntryNotFound
	}

	e := *stored
	oldPos := e.Position
	leftWaiting, err := domain.Advance(&e, target, now)
	if err != nil {
		return nil, err
	}

	out := &domain.Advanced{}

	if target == domain.StatusCompleted {
		var svc *models.Service
		if found, ok := s.services[e.ServiceID]; ok {
			svc = found
		}
		v := visit.FromCompletedEntry(&e, svc, now)
		s.visits[v.ID] = &v
		s.track(v.ID)

		if e.UserID != nil {
			if u, ok := s.users[*e.UserID]; ok {
				u.LoyaltyPoints += v.PointsEarned
				out.Credited = true
			}
		}
		vc := v
		out.Visit = &vc
	}

	*stored = e
	if leftWaiting {
		s.repackLocked(e.SalonID, oldPos)
	}

	out.Entry = *stored
	return out, nil
}

func (s *Store) Remove(ctx context.Context, entryID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, httperr.ErrStoreUnavailable
	}

	salonID, err := s.salonOf(entryID)
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeQueueEntryNotFound) {
			return false, nil
		}
		return false, err
	}

	unlock := s.salonLocks.Lock(salonID)
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[entryID]
	if !ok {
		return false, nil
	}
	delete(s.entries, entryID)
	delete(s.order, entryID)

	if e.Status == string(domain.StatusWaiting) {
		s.repackLocked(e.SalonID, e.Position)
	}
	return true, nil
}

func (s *Store) Get(ctx context.Context, entryID string) (*models.QueueEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[entryID]
	if !ok {
		return nil, httperr.ErrQueueEntryNotFound
	}
	cp := *e
	return &cp, nil
}

func (s *Store) PositionOf(ctx context.Context, userID, salonID string) (*models.QueueEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if e.SalonID == salonID && e.Status == string(domain.StatusWaiting) && e.BelongsTo(userID) {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *Store) ListBySalon(ctx context.Context, salonID string) ([]models.QueueEntry, error) {
	s.mu.RLock()
	out := make([]models.QueueEntry, 0)
	for _, e := range s.entries {
		if e.SalonID == salonID {
			out = append(out, *e)
		}
	}
	s.mu.RUnlock()

	domain.SortForDisplay(out)
	return out, nil
}

func (s *Store) CountWaiting(ctx context.Context, salonID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.countWaitingLocked(salonID), nil
}

func (s *Store) ExpireWaiting(ctx context.Context, cutoff time.Time, now time.Time) ([]models.QueueEntry, error) {
	s.mu.RLock()
	stale := make(map[string][]string)
	for _, e := range s.entries {
		if e.Status == string(domain.StatusWaiting) && e.JoinedAt.Before(cutoff) {
			stale[e.SalonID] = append(stale[e.SalonID], e.ID)
		}
	}
	s.mu.RUnlock()

	var expired []models.QueueEntry
	for salonID, ids := range stale {
		if err := ctx.Err(); err != nil {
			return expired, httperr.ErrStoreUnavailable
		}

		unlock := s.salonLocks.Lock(salonID)
		for _, id := range ids {
			res, err := s.advanceLocked(id, domain.StatusNoShow, now)
			if err != nil {
				// removed or called in the meantime
				continue
			}
			expired = append(expired, res.Entry)
		}
		unlock()
	}
	return expired, nil
}

func (s *Store) salonOf(entryID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[entryID]
	if !ok {
		return "", httperr.ErrQueueEntryNotFound
	}
	return e.SalonID, nil
}

func (s *Store) countWaitingLocked(salonID string) int {
	n := 0
	for _, e := range s.entries {
		if e.SalonID == salonID && e.Status == string(domain.StatusWaiting) {
			n++
		}
	}
	return n
}

// repackLocked closes the gap left by a waiting entry at position vacated.
func (s *Store) repackLocked(salonID string, vacated int) {
	for _, e := range s.entries {
		if e.SalonID == salonID && e.Status == string(domain.StatusWaiting) && e.Position > vacated {
			e.Position--
		}
	}
}
