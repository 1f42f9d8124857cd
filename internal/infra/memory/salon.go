package memory

import (
	"context"
	"sort"

	"github.com/BruksfildServices01/salon-queue/internal/httperr"
	"github.com/BruksfildServices01/salon-queue/internal/models"
)

// -------- Salon --------

func (s *Store) ListSalons(ctx context.Context) ([]models.Salon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Salon, 0, len(s.salons))
	for _, sl := range s.salons {
		out = append(out, *sl)
	}
	s.sortByOrder(len(out), func(i int) string { return out[i].ID }, func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out, nil
}

func (s *Store) GetSalon(ctx context.Context, id string) (*models.Salon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sl, ok := s.salons[id]
	if !ok {
		return nil, httperr.ErrSalonNotFound
	}
	cp := *sl
	return &cp, nil
}

func (s *Store) ListSalonsByOwner(ctx context.Context, ownerID string) ([]models.Salon, error) {
	all, err := s.ListSalons(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Salon, 0)
	for _, sl := range all {
		if sl.IsOwnedBy(ownerID) {
			out = append(out, sl)
		}
	}
	return out, nil
}

func (s *Store) CreateSalon(ctx context.Context, sl *models.Salon) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sl.ID == "" {
		sl.ID = models.NewID()
	}
	if sl.OperatingHours == "" {
		sl.OperatingHours = "9 AM - 7 PM"
	}
	cp := *sl
	s.salons[cp.ID] = &cp
	s.track(cp.ID)
	return nil
}

func (s *Store) UpdateSalon(ctx context.Context, sl *models.Salon) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.salons[sl.ID]; !ok {
		return httperr.ErrSalonNotFound
	}
	cp := *sl
	s.salons[cp.ID] = &cp
	return nil
}

// -------- Service --------

func (s *Store) ListServices(ctx context.Context, salonID string) ([]models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Service, 0)
	for _, svc := range s.services {
		if svc.SalonID == salonID {
			out = append(out, *svc)
		}
	}
	s.sortByOrder(len(out), func(i int) string { return out[i].ID }, func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out, nil
}

func (s *Store) GetService(ctx context.Context, salonID, serviceID string) (*models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	svc, ok := s.services[serviceID]
	if !ok || svc.SalonID != salonID {
		return nil, httperr.ErrServiceNotFound
	}
	cp := *svc
	return &cp, nil
}

func (s *Store) FirstService(ctx context.Context, salonID string) (*models.Service, error) {
	list, err := s.ListServices(ctx, salonID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, httperr.ErrServiceNotFound
	}
	return &list[0], nil
}

func (s *Store) CreateService(ctx context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.salons[svc.SalonID]; !ok {
		return httperr.ErrSalonNotFound
	}
	if svc.ID == "" {
		svc.ID = models.NewID()
	}
	cp := *svc
	s.services[cp.ID] = &cp
	s.track(cp.ID)
	return nil
}

// sortByOrder sorts a slice by insertion order. Must be called with mu held.
func (s *Store) sortByOrder(n int, id func(int) string, swap func(i, j int)) {
	sort.Sort(byOrder{n: n, id: id, swap: swap, order: s.order})
}

type byOrder struct {
	n     int
	id    func(int) string
	swap  func(i, j int)
	order map[string]int64
}

func (b byOrder) Len() int           { return b.n }
func (b byOrder) Less(i, j int) bool { return b.order[b.id(i)] < b.order[b.id(j)] }
func (b byOrder) Swap(i, j int)      { b.swap(i, j) }
