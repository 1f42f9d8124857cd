package memory

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-queue/internal/httperr"
	"github.com/BruksfildServices01/salon-queue/internal/models"
)

func (s *Store) ListActiveOffers(ctx context.Context, salonID string) ([]models.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	out := make([]models.Offer, 0)
	for _, o := range s.offers {
		if o.SalonID != salonID || !o.IsActive {
			continue
		}
		if o.ValidUntil != nil && o.ValidUntil.Before(now) {
			continue
		}
		out = append(out, *o)
	}
	s.sortByOrder(len(out), func(i int) string { return out[i].ID }, func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out, nil
}

func (s *Store) GetOffer(ctx context.Context, id string) (*models.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.offers[id]
	if !ok {
		return nil, httperr.ErrOfferNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *Store) CreateOffer(ctx context.Context, o *models.Offer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o.ID == "" {
		o.ID = models.NewID()
	}
	cp := *o
	s.offers[cp.ID] = &cp
	s.track(cp.ID)
	return nil
}

func (s *Store) UpdateOffer(ctx context.Context, o *models.Offer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.offers[o.ID]
	if !ok {
		return httperr.ErrOfferNotFound
	}
	cp := *o
	// clicks only move through RecordClick
	cp.ClickCount = stored.ClickCount
	s.offers[cp.ID] = &cp
	return nil
}

func (s *Store) DeleteOffer(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.offers[id]; !ok {
		return false, nil
	}
	delete(s.offers, id)
	delete(s.order, id)
	return true, nil
}

func (s *Store) RecordClick(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.offers[id]
	if !ok {
		return httperr.ErrOfferNotFound
	}
	o.ClickCount++
	return nil
}

func (s *Store) SumOfferClicks(ctx context.Context, salonID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, o := range s.offers {
		if o.SalonID == salonID {
			total += o.ClickCount
		}
	}
	return total, nil
}
