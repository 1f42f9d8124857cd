package memory

import (
	"context"

	"github.com/BruksfildServices01/salon-queue/internal/domain/visit"
	"github.com/BruksfildServices01/salon-queue/internal/httperr"
	"github.com/BruksfildServices01/salon-queue/internal/models"
)

func (s *Store) ListVisitsByUser(ctx context.Context, userID string) ([]models.Visit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Visit, 0)
	for _, v := range s.visits {
		if v.UserID != nil && *v.UserID == userID {
			out = append(out, *v)
		}
	}
	// newest first
	s.sortByOrder(len(out), func(i int) string { return out[i].ID }, func(i, j int) { out[i], out[j] = out[j], out[i] })
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (s *Store) GetVisit(ctx context.Context, id string) (*models.Visit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.visits[id]
	if !ok {
		return nil, httperr.ErrVisitNotFound
	}
	cp := *v
	return &cp, nil
}

func (s *Store) SetVisitRating(ctx context.Context, id string, rating int) (*models.Visit, error) {
	if err := visit.ValidateRating(rating); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.visits[id]
	if !ok {
		return nil, httperr.ErrVisitNotFound
	}
	r := rating
	v.Rating = &r
	cp := *v
	return &cp, nil
}

func (s *Store) SalonVisitTotals(ctx context.Context, salonID string) (visit.Totals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var t visit.Totals
	for _, v := range s.visits {
		if v.SalonID == salonID {
			t.Count++
			t.Revenue += v.TotalAmount
		}
	}
	return t, nil
}
